package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playgrid/tictactoe-engine/internal/entity"
)

var ErrPlayerStatsNotFound = errors.New("player stats not found")

type StatsRepository interface {
	RecordResult(ctx context.Context, playerID, result string) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type dbStats struct {
	conn *sql.DB
}

func NewStatsRepository(conn *sql.DB) StatsRepository {
	return &dbStats{
		conn: conn,
	}
}

func (that *dbStats) RecordResult(ctx context.Context, playerID, result string) error {
	var wins, losses, draws int

	switch result {
	case entity.ResultWin:
		wins = 1
	case entity.ResultLoss:
		losses = 1
	case entity.ResultDraw:
		draws = 1
	default:
		return fmt.Errorf("unknown game result %q", result)
	}

	query := `INSERT INTO player_stats (player_id, wins, losses, draws) VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			wins = wins + excluded.wins,
			losses = losses + excluded.losses,
			draws = draws + excluded.draws`

	_, err := that.conn.ExecContext(ctx, query, playerID, wins, losses, draws)
	if err != nil {
		return fmt.Errorf("can't record game result: %w", err)
	}

	return nil
}

func (that *dbStats) GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	query := `SELECT player_id, wins, losses, draws FROM player_stats WHERE player_id = ?`

	var stats entity.PlayerStats

	err := that.conn.QueryRowContext(ctx, query, playerID).
		Scan(&stats.PlayerID, &stats.Wins, &stats.Losses, &stats.Draws)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerStatsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't find player stats: %w", err)
	}

	return &stats, nil
}
