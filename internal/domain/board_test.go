package domain

import (
	"errors"
	"testing"
)

// helper to place alternating marks starting with X
func placeAll(t *testing.T, idx ...int) Board {
	t.Helper()
	var b Board
	mark := X
	for i, cell := range idx {
		next, err := b.Place(cell, mark)
		if err != nil {
			t.Fatalf("move %d (%d) failed: %v", i, cell, err)
		}
		b = next
		mark = mark.Opponent()
	}
	return b
}

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return b
}

func TestEmptyBoard(t *testing.T) {
	var b Board
	if b.IsFull() {
		t.Fatalf("empty board reported full")
	}
	if b.Count() != 0 {
		t.Fatalf("expected 0 marks, got %d", b.Count())
	}
	if _, _, ok := b.FindWinningLine(); ok {
		t.Fatalf("empty board should have no winning line")
	}
	for i := 0; i < Size; i++ {
		if b.IsOccupied(i) {
			t.Fatalf("cell %d should be empty", i)
		}
	}
	if got := len(b.EmptyCells()); got != Size {
		t.Fatalf("expected %d empty cells, got %d", Size, got)
	}
}

func TestPlaceOutOfBounds(t *testing.T) {
	var b Board
	for _, i := range []int{-1, 9, 42} {
		_, err := b.Place(i, X)
		if !errors.Is(err, ErrOutOfBounds) || !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("expected ErrOutOfBounds for %d, got %v", i, err)
		}
	}
}

func TestPlaceOccupied(t *testing.T) {
	b := placeAll(t, 4)
	got, err := b.Place(4, O)
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	if got != b {
		t.Fatalf("rejected placement must not change the board")
	}
}

func TestPlaceRejectsEmptyMark(t *testing.T) {
	var b Board
	if _, err := b.Place(0, Empty); !errors.Is(err, ErrInvalidMark) {
		t.Fatalf("expected ErrInvalidMark, got %v", err)
	}
}

func TestPlaceReturnsCopy(t *testing.T) {
	var b Board
	next, err := b.Place(3, X)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if b[3] != Empty {
		t.Fatalf("original board mutated")
	}
	if next[3] != X || next.Count() != 1 {
		t.Fatalf("expected X at 3, got %v", next[3])
	}
}

func TestLinesScanOrder(t *testing.T) {
	want := [8]Line{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
		{0, 4, 8}, {2, 4, 6},
	}
	if Lines != want {
		t.Fatalf("unexpected line table %v", Lines)
	}
}

func TestFindWinningLineEveryLine(t *testing.T) {
	for _, mark := range []Cell{X, O} {
		for _, ln := range Lines {
			var b Board
			for _, i := range ln {
				b[i] = mark
			}
			got, owner, ok := b.FindWinningLine()
			if !ok || got != ln || owner != mark {
				t.Fatalf("line %v for %v: got %v owner=%v ok=%v", ln, mark, got, owner, ok)
			}
		}
	}
}

func TestFindWinningLineIgnoresMixedLines(t *testing.T) {
	b := mustParse(t, `
		XOX
		XOO
		OXX`)
	if _, _, ok := b.FindWinningLine(); ok {
		t.Fatalf("no line should be complete on\n%s", b)
	}
	if !b.IsFull() {
		t.Fatalf("expected full board")
	}
}

func TestFindWinningLineFirstInScanOrder(t *testing.T) {
	// Not reachable by alternating play, but the scan order must still pick
	// the row before the column.
	b := mustParse(t, `
		XXX
		X..
		X..`)
	got, owner, _ := b.FindWinningLine()
	if got != (Line{0, 1, 2}) || owner != X {
		t.Fatalf("expected top row, got %v (%v)", got, owner)
	}
}

func TestWinFromPlayedSequence(t *testing.T) {
	// X 0, O 3, X 1, O 4, X 2
	b := placeAll(t, 0, 3, 1, 4, 2)
	if b.Winner() != X {
		t.Fatalf("expected X to win, got %v", b.Winner())
	}
	// O completes the left column on the sixth move
	b = placeAll(t, 8, 0, 7, 3, 1, 6)
	if b.Winner() != O {
		t.Fatalf("expected O to win, got %v", b.Winner())
	}
}

func TestParseBoardErrors(t *testing.T) {
	cases := []string{"", "XXXX", "XOXOXOXOXO", "XOXOXOXO?"}
	for _, s := range cases {
		if _, err := ParseBoard(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestBoardString(t *testing.T) {
	b := placeAll(t, 0, 4)
	if got, want := b.String(), "X..\n.O.\n..."; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
