package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/playgrid/tictactoe-engine/internal/apperror"
	"github.com/playgrid/tictactoe-engine/internal/engine"
	"github.com/playgrid/tictactoe-engine/internal/entity"
	"github.com/playgrid/tictactoe-engine/internal/service"
	"github.com/playgrid/tictactoe-engine/internal/usecase"
)

// gameStatusLeave is a display-only status for the final game:leave
// payload; it is never stored.
const gameStatusLeave = "leave"

func (that *Server) handleConnect(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload

	// a first-time client connects with an empty payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	if player.GameID != "" {
		return that.handleExistingGame(ctx, conn, msg, player)
	}

	payloadResp := Payload{Player: player}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player connected", "player_id", player.ID)

	return nil
}

// handleExistingGame answers a connect from a player already seated in
// a game.
func (that *Server) handleExistingGame(ctx context.Context, conn *websocket.Conn, msg *Message, player *entity.Player) error {
	log := that.logger.With("method", "handleExistingGame")

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		// the seat points at a game that is gone; reconnect as a free player
		payloadResp := Payload{Player: player}
		return that.sendMessage(conn, msg.Action, payloadResp)
	}

	if err != nil {
		log.Error("failed to get game", "game_id", player.GameID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
	}

	payloadResp := Payload{Player: player, Game: maskGameDetails(game)}

	return that.sendMessage(conn, msg.Action, payloadResp)
}

func (that *Server) handleNewGame(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	var difficulty string
	if payloadReq.Game != nil {
		difficulty = payloadReq.Game.Difficulty
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID, difficulty)
	if errors.Is(err, usecase.ErrUnknownDifficulty) {
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("unknown difficulty %q", difficulty))
	}

	if err != nil {
		log.Error("failed to get or create game", "player_id", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	player := humanPlayer(game)
	payloadResp := Payload{Player: player, Game: maskGameDetails(game)}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player got a game", "player_id", payloadReq.Player.ID, "game_id", game.ID)

	return nil
}

func (that *Server) handleGameState(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameState")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrNoActiveGames.Error())
	}

	if err != nil {
		log.Error("failed to get game", "player_id", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
	}

	player := humanPlayer(game)
	payloadResp := Payload{Player: player, Game: maskGameDetails(game)}

	return that.sendMessage(conn, msg.Action, payloadResp)
}

func (that *Server) handleGameTurn(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Cell is required")
	}

	log = log.With("player_id", payloadReq.Player.ID)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)

	switch {
	case errors.Is(err, apperror.ErrNoActiveGames):
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrNoActiveGames.Error())
	case errors.Is(err, apperror.ErrNotYourTurn):
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrNotYourTurn.Error())
	case errors.Is(err, engine.ErrGameFinished):
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", game.ID, engine.ErrGameFinished))
	case errors.Is(err, engine.ErrCellOccupied):
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", game.ID, engine.ErrCellOccupied))
	case errors.Is(err, engine.ErrOutOfBounds):
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", game.ID, engine.ErrOutOfBounds))
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to make a turn")
	}

	player := humanPlayer(game)
	payloadResp := Payload{Player: player, Game: maskGameDetails(game)}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player made a turn", "game_id", game.ID, "cell", *payloadReq.Cell)

	return nil
}

func (that *Server) handleGameHint(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameHint")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	cell, err := that.gameUseCase.SuggestMove(ctx, payloadReq.Player.ID)

	switch {
	case errors.Is(err, apperror.ErrNoActiveGames):
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrNoActiveGames.Error())
	case errors.Is(err, apperror.ErrNotYourTurn):
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrNotYourTurn.Error())
	case errors.Is(err, service.ErrNoAvailableMoves):
		return that.sendErrorResponse(conn, msg.Action, service.ErrNoAvailableMoves.Error())
	case err != nil:
		log.Error("failed to suggest move", "player_id", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to suggest a move")
	}

	payloadResp := Payload{Cell: &cell}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("suggested a move", "player_id", payloadReq.Player.ID, "cell", cell)

	return nil
}

func (that *Server) handleGameRestart(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameRestart")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.RestartGame(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrNoActiveGames.Error())
	}

	if err != nil {
		log.Error("failed to restart game", "player_id", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to restart the game")
	}

	player := humanPlayer(game)
	payloadResp := Payload{Player: player, Game: maskGameDetails(game)}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game restarted", "player_id", payloadReq.Player.ID, "game_id", game.ID)

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameLeave")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.LeaveGame(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrNoActiveGames.Error())
	}

	if err != nil {
		log.Error("failed to leave game", "player_id", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to leave the game")
	}

	player := humanPlayer(game)
	payloadResp := Payload{Player: player, Game: maskGameDetails(game)}
	payloadResp.Game.Status = gameStatusLeave

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player left the game", "player_id", payloadReq.Player.ID, "game_id", game.ID)

	return nil
}

// maskGameDetails hides the seat list from the game payload.
func maskGameDetails(game *entity.Game) *entity.Game {
	game.Players = nil

	return game
}

// humanPlayer returns the human seat of a bot game.
func humanPlayer(game *entity.Game) *entity.Player {
	for _, player := range game.Players {
		if !player.IsBot() {
			return player
		}
	}

	return nil
}
