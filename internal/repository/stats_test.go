package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playgrid/tictactoe-engine/internal/entity"
	"github.com/playgrid/tictactoe-engine/testing/suite"
)

func TestStatsRepository_RecordResult(t *testing.T) {
	t.Run("RecordResult_Tallies", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		statsRepo := NewStatsRepository(st.Connection)

		// Given: a few finished games for one player
		require.NoError(t, statsRepo.RecordResult(ctx, "123", entity.ResultWin))
		require.NoError(t, statsRepo.RecordResult(ctx, "123", entity.ResultWin))
		require.NoError(t, statsRepo.RecordResult(ctx, "123", entity.ResultLoss))
		require.NoError(t, statsRepo.RecordResult(ctx, "123", entity.ResultDraw))

		// When: the tally is read back
		stats, err := statsRepo.GetByPlayerID(ctx, "123")

		// Then: every result landed in its own column
		require.NoError(t, err)
		assert.Equal(t, &entity.PlayerStats{PlayerID: "123", Wins: 2, Losses: 1, Draws: 1}, stats)
	})

	t.Run("RecordResult_UnknownResult", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		statsRepo := NewStatsRepository(st.Connection)

		// When: RecordResult is called with a result that is not win, loss or draw
		err := statsRepo.RecordResult(ctx, "123", "rage quit")

		// Then: an error should be returned, and nothing is stored
		require.Error(t, err)

		_, err = statsRepo.GetByPlayerID(ctx, "123")
		assert.Equal(t, ErrPlayerStatsNotFound, err)
	})
}

func TestStatsRepository_GetByPlayerID(t *testing.T) {
	t.Run("GetByPlayerID_NotFound", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		statsRepo := NewStatsRepository(st.Connection)

		nonExistentPlayerID := "9999999"

		// When: GetByPlayerID is called with non-existent ID
		stats, err := statsRepo.GetByPlayerID(ctx, nonExistentPlayerID)

		// Then: an ErrPlayerStatsNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrPlayerStatsNotFound, err)
		assert.Nil(t, stats)
	})
}
