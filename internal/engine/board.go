package engine

import (
	"errors"
	"fmt"
)

// EmptyCell marks an unoccupied board cell.
const EmptyCell = ""

const (
	StatusInProgress = "in_progress"
	StatusWin        = "win"
	StatusDraw       = "draw"
)

var (
	ErrBoardSize    = errors.New("unsupported board size")
	ErrPlayerMarks  = errors.New("player marks must be two distinct non-empty symbols")
	ErrOutOfBounds  = errors.New("cell is out of bounds")
	ErrCellOccupied = errors.New("cell is occupied")
	ErrGameFinished = errors.New("game is already finished")
	ErrUnknownMark  = errors.New("unknown player mark")
	ErrBadSnapshot  = errors.New("malformed board snapshot")
)

// Coord addresses a single cell, zero-indexed, row-major.
type Coord struct {
	Row int
	Col int
}

// Move is a pending placement of a mark into a cell.
type Move struct {
	Row  int
	Col  int
	Mark string
}

// Outcome is the derived terminal state of a board.
type Outcome struct {
	Status string
	Winner string
	Combo  []Coord
}

// Board holds the marks of one game session together with the fixed
// win-combination table for its size. The winner and winning combo are
// cached on the transition into a won state and cleared only on reset.
type Board struct {
	size   int
	markA  string
	markB  string
	cells  []string
	combos [][]Coord

	winner       string
	winningCombo []Coord
}

// NewBoard - creates an empty size×size board for the two given marks.
func NewBoard(size int, markA, markB string) (*Board, error) {
	if size < 3 {
		return nil, fmt.Errorf("%w: %d", ErrBoardSize, size)
	}

	if markA == EmptyCell || markB == EmptyCell || markA == markB {
		return nil, fmt.Errorf("%w: %q and %q", ErrPlayerMarks, markA, markB)
	}

	return &Board{
		size:   size,
		markA:  markA,
		markB:  markB,
		cells:  make([]string, size*size),
		combos: winCombos(size),
	}, nil
}

// Restore - rebuilds a board from a flat row-major snapshot and
// recomputes the cached outcome with the same combo scan Apply uses.
func Restore(size int, markA, markB string, cells []string) (*Board, error) {
	board, err := NewBoard(size, markA, markB)
	if err != nil {
		return nil, err
	}

	if len(cells) != size*size {
		return nil, fmt.Errorf("%w: %d cells for size %d", ErrBadSnapshot, len(cells), size)
	}

	for i, cell := range cells {
		if cell != EmptyCell && cell != markA && cell != markB {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMark, cell)
		}
		board.cells[i] = cell
	}

	board.scanForWinner()

	return board, nil
}

// winCombos builds the win-combination table in canonical order: rows,
// then columns, then the main diagonal, then the anti-diagonal.
func winCombos(size int) [][]Coord {
	combos := make([][]Coord, 0, 2*size+2)

	for row := 0; row < size; row++ {
		combo := make([]Coord, 0, size)
		for col := 0; col < size; col++ {
			combo = append(combo, Coord{Row: row, Col: col})
		}
		combos = append(combos, combo)
	}

	for col := 0; col < size; col++ {
		combo := make([]Coord, 0, size)
		for row := 0; row < size; row++ {
			combo = append(combo, Coord{Row: row, Col: col})
		}
		combos = append(combos, combo)
	}

	mainDiagonal := make([]Coord, 0, size)
	for i := 0; i < size; i++ {
		mainDiagonal = append(mainDiagonal, Coord{Row: i, Col: i})
	}
	combos = append(combos, mainDiagonal)

	antiDiagonal := make([]Coord, 0, size)
	for i := 0; i < size; i++ {
		antiDiagonal = append(antiDiagonal, Coord{Row: i, Col: size - 1 - i})
	}
	combos = append(combos, antiDiagonal)

	return combos
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) Marks() (string, string) {
	return that.markA, that.markB
}

// Opponent - returns the other of the board's two marks, or EmptyCell
// for a mark the board does not know.
func (that *Board) Opponent(mark string) string {
	switch mark {
	case that.markA:
		return that.markB
	case that.markB:
		return that.markA
	default:
		return EmptyCell
	}
}

// Cells returns a copy of the flat row-major cell snapshot.
func (that *Board) Cells() []string {
	cells := make([]string, len(that.cells))
	copy(cells, that.cells)

	return cells
}

// IsValidMove - reports whether the move targets an empty cell on a
// board still in progress. Turn ownership is the caller's concern and
// is not checked here.
func (that *Board) IsValidMove(move Move) bool {
	if !that.inBounds(move.Row, move.Col) {
		return false
	}

	if move.Mark != that.markA && move.Mark != that.markB {
		return false
	}

	if that.IsGameOver() {
		return false
	}

	return that.cells[that.index(move.Row, move.Col)] == EmptyCell
}

// Apply - validates the move, writes its mark and rescans the combo
// table. The first completed combo in canonical order wins, even when a
// single placement finishes more than one line.
func (that *Board) Apply(move Move) error {
	if !that.inBounds(move.Row, move.Col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, move.Row, move.Col)
	}

	if move.Mark != that.markA && move.Mark != that.markB {
		return fmt.Errorf("%w: %q", ErrUnknownMark, move.Mark)
	}

	if that.IsGameOver() {
		return ErrGameFinished
	}

	idx := that.index(move.Row, move.Col)
	if that.cells[idx] != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", ErrCellOccupied, move.Row, move.Col)
	}

	that.cells[idx] = move.Mark
	that.scanForWinner()

	return nil
}

func (that *Board) HasWinner() bool {
	return that.winner != EmptyCell
}

func (that *Board) Winner() string {
	return that.winner
}

// WinningCombo returns a copy of the combo that ended the game, or nil
// while no one has won.
func (that *Board) WinningCombo() []Coord {
	if that.winningCombo == nil {
		return nil
	}

	combo := make([]Coord, len(that.winningCombo))
	copy(combo, that.winningCombo)

	return combo
}

func (that *Board) IsTied() bool {
	return !that.HasWinner() && that.isFull()
}

func (that *Board) IsGameOver() bool {
	return that.HasWinner() || that.isFull()
}

// Outcome - derives the terminal state of the board.
func (that *Board) Outcome() Outcome {
	switch {
	case that.HasWinner():
		return Outcome{Status: StatusWin, Winner: that.winner, Combo: that.WinningCombo()}
	case that.isFull():
		return Outcome{Status: StatusDraw}
	default:
		return Outcome{Status: StatusInProgress}
	}
}

// Reset - clears every cell and the cached outcome; the board keeps its
// size, marks, combo table and allocation.
func (that *Board) Reset() {
	for i := range that.cells {
		that.cells[i] = EmptyCell
	}

	that.winner = EmptyCell
	that.winningCombo = nil
}

// LegalMoves - lists all empty cells in canonical row-major order.
func (that *Board) LegalMoves() []Coord {
	moves := make([]Coord, 0, len(that.cells))
	for idx, cell := range that.cells {
		if cell == EmptyCell {
			moves = append(moves, that.coord(idx))
		}
	}

	return moves
}

// scanForWinner walks the combo table in canonical order and caches the
// first completed combo.
func (that *Board) scanForWinner() {
	that.winner = EmptyCell
	that.winningCombo = nil

	for _, combo := range that.combos {
		if mark := that.comboWinner(combo); mark != EmptyCell {
			that.winner = mark
			that.winningCombo = combo

			return
		}
	}
}

// comboWinner returns the mark holding every cell of the combo, or
// EmptyCell when the combo is incomplete or mixed.
func (that *Board) comboWinner(combo []Coord) string {
	first := that.at(combo[0])
	if first == EmptyCell {
		return EmptyCell
	}

	for _, cell := range combo[1:] {
		if that.at(cell) != first {
			return EmptyCell
		}
	}

	return first
}

// hasLine reports whether the mark holds at least one full combo. The
// searcher uses it on speculative positions where the cached outcome is
// deliberately left untouched.
func (that *Board) hasLine(mark string) bool {
	for _, combo := range that.combos {
		if that.comboWinner(combo) == mark {
			return true
		}
	}

	return false
}

func (that *Board) isFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Board) inBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *Board) index(row, col int) int {
	return row*that.size + col
}

func (that *Board) coord(idx int) Coord {
	return Coord{Row: idx / that.size, Col: idx % that.size}
}

func (that *Board) at(cell Coord) string {
	return that.cells[that.index(cell.Row, cell.Col)]
}

// place and clear are the searcher's speculative write path. They skip
// validation and never touch the cached outcome, so a place followed by
// a clear leaves the board byte-for-byte unchanged.
func (that *Board) place(idx int, mark string) {
	that.cells[idx] = mark
}

func (that *Board) clear(idx int) {
	that.cells[idx] = EmptyCell
}
