// Package engine picks moves by exhaustive minimax over the full game tree.
//
// There is no pruning and no heuristic: a 3x3 tree has at most 9! leaves,
// so the search is run to completion every time. Win and loss scores are
// adjusted by depth so faster wins and slower losses score higher.
package engine

import (
	"errors"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/domain"
)

// ErrNoLegalMove is returned when a move is requested for a board that is
// already full or decided. Callers are expected never to hit it.
var ErrNoLegalMove = errors.New("no legal move")

// WinScore is the value of a win found at depth zero.
const WinScore = 10

// Evaluate scores b from the computer's point of view. maximizing reports
// whether the computer is the side to move.
func Evaluate(b domain.Board, depth int, maximizing bool) int {
	return evaluate(&b, depth, maximizing, domain.Computer)
}

// SelectMove returns the computer's optimal cell for b.
func SelectMove(b domain.Board) (int, error) {
	return SelectMoveFor(b, domain.Computer)
}

// SelectMoveFor returns side's optimal cell for b. Ties go to the lowest
// index.
func SelectMoveFor(b domain.Board, side domain.Cell) (int, error) {
	if side != domain.X && side != domain.O {
		return -1, domain.ErrInvalidMark
	}
	if _, _, won := b.FindWinningLine(); won || b.IsFull() {
		return -1, ErrNoLegalMove
	}
	best, bestScore := -1, 0
	for i := 0; i < domain.Size; i++ {
		if b[i] != domain.Empty {
			continue
		}
		b[i] = side
		score := evaluate(&b, 0, false, side)
		b[i] = domain.Empty
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, nil
}

// Score returns the minimax value of every empty cell for side, indexed by
// cell. Occupied cells and terminal boards report ok=false.
func Score(b domain.Board, side domain.Cell) (scores [domain.Size]int, ok [domain.Size]bool) {
	if _, _, won := b.FindWinningLine(); won {
		return scores, ok
	}
	for i := 0; i < domain.Size; i++ {
		if b[i] != domain.Empty {
			continue
		}
		b[i] = side
		scores[i] = evaluate(&b, 0, false, side)
		ok[i] = true
		b[i] = domain.Empty
	}
	return scores, ok
}

// evaluate works in place on b and restores every cell it touches.
func evaluate(b *domain.Board, depth int, maximizing bool, me domain.Cell) int {
	opp := me.Opponent()
	if b.HasWin(me) {
		return WinScore - depth
	}
	if b.HasWin(opp) {
		return depth - WinScore
	}
	if b.IsFull() {
		return 0
	}

	mark := opp
	if maximizing {
		mark = me
	}
	var best int
	first := true
	for i := 0; i < domain.Size; i++ {
		if b[i] != domain.Empty {
			continue
		}
		b[i] = mark
		score := evaluate(b, depth+1, !maximizing, me)
		b[i] = domain.Empty
		switch {
		case first:
			best, first = score, false
		case maximizing && score > best:
			best = score
		case !maximizing && score < best:
			best = score
		}
	}
	return best
}
