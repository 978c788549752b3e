package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/playgrid/tictactoe-engine/internal/engine"
	"github.com/playgrid/tictactoe-engine/internal/entity"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
	SuggestCell(game *entity.Game, mark string) (int, error)
}

type botService struct {
	logger   *slog.Logger
	searcher *engine.Searcher
}

// NewBotService - creates a bot that plays randomly on easy games and
// searches the game tree on hard ones.
func NewBotService(logger *slog.Logger, searchDepth int) BotService {
	return &botService{
		logger:   logger.With("component", "bot_service"),
		searcher: engine.NewSearcher(searchDepth),
	}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	log := that.logger.With("method", "MakeTurn")

	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	var (
		cell int
		err  error
	)

	if game.IsHardDifficulty() {
		cell, err = that.SuggestCell(game, botPlayer.Mark)
	} else {
		cell, err = that.randomCell(game)
	}
	if err != nil {
		return err
	}

	if err = game.MakeTurn(botPlayer.Mark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot made a turn", "game_id", game.ID, "cell", cell, "difficulty", game.Difficulty)

	return nil
}

// SuggestCell - picks the strongest cell for the given mark on the
// current board.
func (that *botService) SuggestCell(game *entity.Game, mark string) (int, error) {
	if game.IsFinished() {
		return 0, ErrNoAvailableMoves
	}

	board, err := game.Restore()
	if err != nil {
		return 0, fmt.Errorf("failed to restore board: %w", err)
	}

	move, ok := that.searcher.BestMove(board, mark)
	if !ok {
		return 0, ErrNoAvailableMoves
	}

	return move.Row*game.Size + move.Col, nil
}

func (that *botService) randomCell(game *entity.Game) (int, error) {
	availableCells := make([]int, 0, len(game.Board))
	for i, cell := range game.Board {
		if cell == entity.EmptyCell {
			availableCells = append(availableCells, i)
		}
	}

	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
}
