package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playgrid/tictactoe-engine/internal/entity"
	"github.com/playgrid/tictactoe-engine/internal/repository"
)

type fakeStatsUseCase struct {
	stats *entity.PlayerStats
	err   error

	gotPlayerID string
}

func (that *fakeStatsUseCase) GetPlayerStats(_ context.Context, playerID string) (*entity.PlayerStats, error) {
	that.gotPlayerID = playerID

	return that.stats, that.err
}

func newTestServer(useCase statsUseCase) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, useCase)
}

func TestServer_Ping(t *testing.T) {
	t.Run("Answers pong", func(t *testing.T) {
		server := newTestServer(&fakeStatsUseCase{})

		// When: pinging the service
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/ping", nil)
		server.Router().ServeHTTP(recorder, request)

		// Then: the service answers pong
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "pong", recorder.Body.String())
	})
}

func TestServer_PlayerStats(t *testing.T) {
	t.Run("Returns the tallies as JSON", func(t *testing.T) {
		useCase := &fakeStatsUseCase{
			stats: &entity.PlayerStats{PlayerID: "p1", Wins: 3, Losses: 1, Draws: 2},
		}
		server := newTestServer(useCase)

		// When: requesting the tallies of a known player
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/stats/p1", nil)
		server.Router().ServeHTTP(recorder, request)

		// Then: the tallies come back as JSON
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "p1", useCase.gotPlayerID)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var stats entity.PlayerStats
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
		assert.Equal(t, *useCase.stats, stats)
	})

	t.Run("Unknown player is a 404", func(t *testing.T) {
		server := newTestServer(&fakeStatsUseCase{err: repository.ErrPlayerStatsNotFound})

		// When: requesting the tallies of an unknown player
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/stats/ghost", nil)
		server.Router().ServeHTTP(recorder, request)

		// Then: the player has no tallies
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Storage failure is a 500", func(t *testing.T) {
		server := newTestServer(&fakeStatsUseCase{err: errors.New("storage down")})

		// When: the tally store is down
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/stats/p1", nil)
		server.Router().ServeHTTP(recorder, request)

		// Then: the failure is not leaked to the client
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
