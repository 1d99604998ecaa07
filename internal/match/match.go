// Package match sequences a single game between the computer and a human.
package match

import (
	"github.com/jaminalder/minimax-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/engine"
)

// Turn says whose move is next while a match is in progress.
type Turn uint8

const (
	ComputerNext Turn = iota
	HumanNext
)

func (t Turn) String() string {
	if t == HumanNext {
		return "human"
	}
	return "computer"
}

// Mark returns the mark placed by the side to move.
func (t Turn) Mark() domain.Cell {
	if t == HumanNext {
		return domain.Human
	}
	return domain.Computer
}

// Status is the lifecycle of a match.
type Status uint8

const (
	InProgress Status = iota
	Won
	Drawn
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "in_progress"
	}
}

// Tally counts finished matches for the session.
type Tally struct {
	ComputerWins int
	HumanWins    int
	Draws        int
}

// Reset zeroes all counters.
func (t *Tally) Reset() { *t = Tally{} }

// Total is the number of finished matches counted.
func (t Tally) Total() int { return t.ComputerWins + t.HumanWins + t.Draws }

func (t *Tally) record(status Status, winner domain.Cell) {
	if t == nil {
		return
	}
	switch {
	case status == Drawn:
		t.Draws++
	case status == Won && winner == domain.Computer:
		t.ComputerWins++
	case status == Won && winner == domain.Human:
		t.HumanWins++
	}
}

// Match holds the state of one game. The zero value is not usable; build
// matches with New.
type Match struct {
	ID          string
	Board       domain.Board
	Turn        Turn
	Status      Status
	Winner      domain.Cell
	WinningLine domain.Line
	Moves       int

	tally *Tally
}

// New returns a fresh match with the computer to move. Finished matches are
// recorded into tally, which may be nil.
func New(id string, tally *Tally) *Match {
	return &Match{ID: id, Turn: ComputerNext, Status: InProgress, tally: tally}
}

// Restart returns a fresh match under id that records into the same tally.
// m itself is left as it was.
func (m *Match) Restart(id string) *Match { return New(id, m.tally) }

// Over reports whether the match has finished.
func (m *Match) Over() bool { return m.Status != InProgress }

// ApplyHumanMove places the human's mark at cell i.
func (m *Match) ApplyHumanMove(i int) ([]Event, error) {
	return m.apply(HumanNext, i)
}

// AdvanceComputerMove lets the engine choose and play the computer's move.
func (m *Match) AdvanceComputerMove() ([]Event, error) {
	if err := m.check(ComputerNext); err != nil {
		return nil, err
	}
	i, err := engine.SelectMove(m.Board)
	if err != nil {
		return nil, err
	}
	return m.apply(ComputerNext, i)
}

// PlaceComputerMove plays a computer move chosen earlier, typically by
// engine.SelectMove before a presentation delay.
func (m *Match) PlaceComputerMove(i int) ([]Event, error) {
	return m.apply(ComputerNext, i)
}

func (m *Match) check(turn Turn) error {
	if m.Over() {
		return domain.ErrGameOver
	}
	if m.Turn != turn {
		return domain.ErrNotYourTurn
	}
	return nil
}

func (m *Match) apply(turn Turn, i int) ([]Event, error) {
	if err := m.check(turn); err != nil {
		return nil, err
	}
	next, err := m.Board.Place(i, turn.Mark())
	if err != nil {
		return nil, err
	}
	m.Board = next
	m.Moves++

	kind := HumanMoved
	if turn == ComputerNext {
		kind = ComputerMoved
	}
	events := []Event{{Kind: kind, MatchID: m.ID, Cell: i, Mark: turn.Mark()}}

	if ln, owner, ok := m.Board.FindWinningLine(); ok {
		m.Status = Won
		m.Winner = owner
		m.WinningLine = ln
		m.tally.record(m.Status, owner)
		events = append(events, Event{Kind: MatchWon, MatchID: m.ID, Cell: -1, Mark: owner, Line: ln})
		return events, nil
	}
	if m.Board.IsFull() {
		m.Status = Drawn
		m.tally.record(m.Status, domain.Empty)
		events = append(events, Event{Kind: MatchDrawn, MatchID: m.ID, Cell: -1})
		return events, nil
	}

	if turn == ComputerNext {
		m.Turn = HumanNext
	} else {
		m.Turn = ComputerNext
	}
	return events, nil
}
