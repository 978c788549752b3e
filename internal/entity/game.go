package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/playgrid/tictactoe-engine/internal/apperror"
	"github.com/playgrid/tictactoe-engine/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = engine.EmptyCell
)

const (
	EasyDifficulty = "easy"
	HardDifficulty = "hard"
)

var ErrMarksNotAssigned = errors.New("game marks are not assigned")

// Game is the session state stored between turns. The board is kept as
// a flat row-major snapshot; all board mechanics go through the engine.
type Game struct {
	ID          string    `json:"id"`
	Size        int       `json:"size"`
	Board       []string  `json:"board"`
	Marks       []string  `json:"marks"`
	Winner      string    `json:"winner,omitempty"`
	WinningLine []int     `json:"winning_line,omitempty"`
	Status      string    `json:"status"`
	Turn        string    `json:"player_turn"`
	Difficulty  string    `json:"difficulty"`
	Players     []*Player `json:"players,omitempty"`
}

// NewGame - creates an ongoing game; the first mark opens.
func NewGame(id string, size int, markA, markB, difficulty string) *Game {
	return &Game{
		ID:         id,
		Size:       size,
		Board:      make([]string, size*size),
		Marks:      []string{markA, markB},
		Turn:       markA,
		Status:     StatusOngoing,
		Difficulty: difficulty,
	}
}

// Restore - rebuilds the engine board from the stored snapshot.
func (that *Game) Restore() (*engine.Board, error) {
	if len(that.Marks) != 2 {
		return nil, fmt.Errorf("%w: game %s", ErrMarksNotAssigned, that.ID)
	}

	board, err := engine.Restore(that.Size, that.Marks[0], that.Marks[1], that.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}

	return board, nil
}

// MakeTurn - applies one player's move and refreshes the game state.
// Turn ownership is enforced here; everything below it (bounds,
// occupancy, terminal state) is the engine's call.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return engine.ErrGameFinished
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	board, err := that.Restore()
	if err != nil {
		return err
	}

	move := engine.Move{Row: cell / that.Size, Col: cell % that.Size, Mark: playerMark}
	if err = board.Apply(move); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.syncFromBoard(board)

	if that.IsOngoing() {
		that.Turn = that.OtherMark(playerMark)
	}

	return nil
}

// ResetBoard - clears the board for a rematch. Players, marks and
// difficulty stay; the first mark opens again.
func (that *Game) ResetBoard() {
	for i := range that.Board {
		that.Board[i] = EmptyCell
	}

	that.Winner = EmptyCell
	that.WinningLine = nil
	that.Status = StatusOngoing

	if len(that.Marks) > 0 {
		that.Turn = that.Marks[0]
	}
}

// syncFromBoard copies the cells back and derives winner, winning line
// and status from the engine outcome.
func (that *Game) syncFromBoard(board *engine.Board) {
	that.Board = board.Cells()

	switch outcome := board.Outcome(); outcome.Status {
	case engine.StatusWin:
		that.Winner = outcome.Winner
		that.WinningLine = comboToCells(that.Size, outcome.Combo)
		that.Status = StatusFinished
		that.Turn = EmptyCell
	case engine.StatusDraw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	default:
		that.Status = StatusOngoing
	}
}

func comboToCells(size int, combo []engine.Coord) []int {
	cells := make([]int, 0, len(combo))
	for _, cell := range combo {
		cells = append(cells, cell.Row*size+cell.Col)
	}

	return cells
}

// OtherMark - returns the opposing mark, or EmptyCell for a symbol the
// game does not know.
func (that *Game) OtherMark(mark string) string {
	if len(that.Marks) != 2 {
		return EmptyCell
	}

	switch mark {
	case that.Marks[0]:
		return that.Marks[1]
	case that.Marks[1]:
		return that.Marks[0]
	default:
		return EmptyCell
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsHardDifficulty() bool {
	return that.Difficulty == HardDifficulty
}

// BotPlayer - returns the automated player of the game, or nil when
// there is none.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

// ResultFor - maps the finished game to a tally result for the given
// mark. An unfinished game has no result yet.
func (that *Game) ResultFor(mark string) string {
	if !that.IsFinished() {
		return ""
	}

	switch that.Winner {
	case PlayerTie:
		return ResultDraw
	case mark:
		return ResultWin
	default:
		return ResultLoss
	}
}

// GetRandomMarks - deals the game's two marks in random order.
func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return that.Marks[0], that.Marks[1]
	}

	return that.Marks[1], that.Marks[0]
}
