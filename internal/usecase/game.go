package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playgrid/tictactoe-engine/internal/apperror"
	"github.com/playgrid/tictactoe-engine/internal/entity"
	"github.com/playgrid/tictactoe-engine/internal/pkg"
	"github.com/playgrid/tictactoe-engine/internal/repository"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	GetOrCreateGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	SuggestMove(ctx context.Context, playerID string) (int, error)

	RestartGame(ctx context.Context, playerID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)

	GetPlayerStats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type playerRepoDep interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepoDep interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type statsRepoDep interface {
	RecordResult(ctx context.Context, playerID, result string) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type botServiceDep interface {
	MakeTurn(game *entity.Game) error
	SuggestCell(game *entity.Game, mark string) (int, error)
}

type gameUseCase struct {
	logger *slog.Logger

	playerRepo playerRepoDep
	gameRepo   gameRepoDep
	statsRepo  statsRepoDep
	botService botServiceDep

	boardSize int
	markA     string
	markB     string
}

func NewGameUseCase(logger *slog.Logger, playerRepo playerRepoDep, gameRepo gameRepoDep, statsRepo statsRepoDep, botService botServiceDep, boardSize int, markA, markB string) GameUseCase {
	return &gameUseCase{
		logger:     logger.With("component", "game_usecase"),
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		statsRepo:  statsRepo,
		botService: botService,
		boardSize:  boardSize,
		markA:      markA,
		markB:      markB,
	}
}

// GetOrCreatePlayer - resolves a player session. An empty ID gets a
// fresh identity; an unknown ID is re-registered under the same ID so
// clients survive a flushed session store.
func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		playerID = pkg.GeneratePlayerID()
	}

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err == nil {
		return player, nil
	}

	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	player = &entity.Player{ID: playerID}
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("could not create player: %w", err)
	}

	return player, nil
}

// GetOrCreateGame - returns the player's ongoing game, or creates a new
// one against the bot. A finished game is replaced: its session keys
// are cleaned up first.
func (that *gameUseCase) GetOrCreateGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID != "" {
		game, err := that.gameRepo.GetByID(ctx, player.GameID)

		switch {
		case err == nil && game.IsOngoing():
			return game, nil
		case err == nil:
			if err = that.cleanupGame(ctx, game); err != nil {
				return nil, err
			}
		case !errors.Is(err, repository.ErrGameNotFound):
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}
	}

	game, err := that.createGame(ctx, player, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) createGame(ctx context.Context, player *entity.Player, difficulty string) (*entity.Game, error) {
	switch difficulty {
	case "":
		difficulty = entity.HardDifficulty
	case entity.EasyDifficulty, entity.HardDifficulty:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}

	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := entity.NewGame(gameID, that.boardSize, that.markA, that.markB, difficulty)

	botPlayer := entity.NewBotPlayer(gameID)
	playerMark, botMark := game.GetRandomMarks()

	player.GameID = gameID
	player.Mark = playerMark
	botPlayer.Mark = botMark
	game.Players = []*entity.Player{player, botPlayer}

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.playerRepo.CreateOrUpdate(ctx, botPlayer); err != nil {
		return nil, fmt.Errorf("failed to update bot player: %w", err)
	}

	if botMark == game.Turn {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game from storage: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.activeGame(ctx, playerID)

	return game, err
}

// MakeTurn - applies the player's move and, while the game stays
// ongoing, lets the bot answer on the same request. On the transition
// into a finished state the tallies are recorded and the final game
// stays stored so the session can be rematched.
func (that *gameUseCase) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(player.Mark, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if botPlayer := game.BotPlayer(); game.IsOngoing() && botPlayer != nil && game.Turn == botPlayer.Mark {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if game.IsFinished() {
		that.recordResults(ctx, game)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// SuggestMove - asks the searcher for the strongest cell for the
// player on turn. Hints do not commit a move.
func (that *gameUseCase) SuggestMove(ctx context.Context, playerID string) (int, error) {
	player, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return 0, err
	}

	if game.Turn != player.Mark {
		return 0, apperror.ErrNotYourTurn
	}

	cell, err := that.botService.SuggestCell(game, player.Mark)
	if err != nil {
		return 0, fmt.Errorf("failed to suggest move: %w", err)
	}

	return cell, nil
}

// RestartGame - clears the board of the player's game for a rematch.
// Seats and difficulty stay; when the bot holds the opening mark it
// moves before the response goes out.
func (that *gameUseCase) RestartGame(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game.ResetBoard()

	if botPlayer := game.BotPlayer(); botPlayer != nil && game.Turn == botPlayer.Mark {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// LeaveGame - abandons the player's game. The session keys go away and
// the seats are cleared; an abandoned game records no tallies.
func (that *gameUseCase) LeaveGame(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = that.cleanupGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gameUseCase) GetPlayerStats(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	stats, err := that.statsRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	return stats, nil
}

// activeGame resolves the player and the game it is seated in.
func (that *gameUseCase) activeGame(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		// the seat points at a game that is gone
		return nil, nil, apperror.ErrNoActiveGames
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return player, game, nil
}

// recordResults writes one tally per human seat. Tally failures are
// logged and do not block the final game state from going out.
func (that *gameUseCase) recordResults(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResults", "game_id", game.ID)

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		result := game.ResultFor(player.Mark)
		if result == "" {
			continue
		}

		if err := that.statsRepo.RecordResult(ctx, player.ID, result); err != nil {
			log.Error("failed to record game result", "player_id", player.ID, "error", err)
		}
	}
}

// cleanupGame deletes the game key and detaches every seat. The marks
// stay on the in-memory players so the final payload still shows who
// played what.
func (that *gameUseCase) cleanupGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	for _, player := range game.Players {
		oldMark := player.Mark
		player.GameID = ""
		player.Mark = ""

		err := that.playerRepo.CreateOrUpdate(ctx, player)
		player.Mark = oldMark

		if err != nil {
			return fmt.Errorf("failed to update player %s: %w", player.ID, err)
		}
	}

	return nil
}
