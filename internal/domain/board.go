package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// The computer always plays X and moves first; the human plays O.
const (
	Computer = X
	Human    = O
)

// Opponent returns the other side's mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Size is the number of cells on the board.
const Size = 9

// Board is a fixed 3x3 board stored row-major.
type Board [Size]Cell

// Line is one of the winning triples of cell indices.
type Line [3]int

// Lines lists every winning triple in scan order.
var Lines = [8]Line{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// ErrIllegalMove is the kind shared by every rejected move.
var ErrIllegalMove = errors.New("illegal move")

// Errors returned by domain operations.
var (
	ErrOutOfBounds = fmt.Errorf("%w: out of bounds", ErrIllegalMove)
	ErrOccupied    = fmt.Errorf("%w: cell occupied", ErrIllegalMove)
	ErrInvalidMark = fmt.Errorf("%w: invalid mark", ErrIllegalMove)
	ErrGameOver    = fmt.Errorf("%w: game over", ErrIllegalMove)
	ErrNotYourTurn = fmt.Errorf("%w: not your turn", ErrIllegalMove)
)

// InBounds reports whether i addresses a cell.
func InBounds(i int) bool { return i >= 0 && i < Size }

// IsOccupied reports whether cell i holds a mark.
func (b Board) IsOccupied(i int) bool {
	return InBounds(i) && b[i] != Empty
}

// Place returns a copy of b with mark placed at i.
func (b Board) Place(i int, mark Cell) (Board, error) {
	if !InBounds(i) {
		return b, ErrOutOfBounds
	}
	if mark != X && mark != O {
		return b, ErrInvalidMark
	}
	if b[i] != Empty {
		return b, ErrOccupied
	}
	b[i] = mark
	return b, nil
}

// FindWinningLine returns the first completed line in Lines order and the
// mark that owns it.
func (b Board) FindWinningLine() (Line, Cell, bool) {
	for _, ln := range Lines {
		c := b[ln[0]]
		if c != Empty && b[ln[1]] == c && b[ln[2]] == c {
			return ln, c, true
		}
	}
	return Line{}, Empty, false
}

// HasWin reports whether side owns any completed line.
func (b Board) HasWin(side Cell) bool {
	if side == Empty {
		return false
	}
	for _, ln := range Lines {
		if b[ln[0]] == side && b[ln[1]] == side && b[ln[2]] == side {
			return true
		}
	}
	return false
}

// Winner returns the owner of the first completed line, or Empty.
func (b Board) Winner() Cell {
	_, c, _ := b.FindWinningLine()
	return c
}

// IsFull reports whether no cell is empty.
func (b Board) IsFull() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (b Board) Count() int {
	n := 0
	for _, c := range b {
		if c != Empty {
			n++
		}
	}
	return n
}

// EmptyCells lists the free cell indices in ascending order.
func (b Board) EmptyCells() []int {
	out := make([]int, 0, Size)
	for i, c := range b {
		if c == Empty {
			out = append(out, i)
		}
	}
	return out
}

// String renders the board as three rows, '.' for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sb.WriteString(b[r*3+c].String())
		}
		if r < 2 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard reads nine cells written as X, O or '.', ignoring whitespace.
func ParseBoard(s string) (Board, error) {
	var b Board
	n := 0
	for _, r := range s {
		var c Cell
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		case 'X', 'x':
			c = X
		case 'O', 'o':
			c = O
		case '.', '-', '_':
			c = Empty
		default:
			return Board{}, fmt.Errorf("parse board: unexpected %q", r)
		}
		if n == Size {
			return Board{}, fmt.Errorf("parse board: more than %d cells", Size)
		}
		b[n] = c
		n++
	}
	if n != Size {
		return Board{}, fmt.Errorf("parse board: got %d cells, want %d", n, Size)
	}
	return b, nil
}
