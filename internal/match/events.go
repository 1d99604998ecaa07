package match

import "github.com/jaminalder/minimax-tic-tac-toe/internal/domain"

// EventKind names something that happened to a match or the tally.
type EventKind uint8

const (
	HumanMoved EventKind = iota + 1
	ComputerMoved
	MatchWon
	MatchDrawn
	Reset
	ScoresReset
)

var eventKindNames = map[EventKind]string{
	HumanMoved:    "human_moved",
	ComputerMoved: "computer_moved",
	MatchWon:      "match_won",
	MatchDrawn:    "match_drawn",
	Reset:         "reset",
	ScoresReset:   "scores_reset",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is a notification for presentation layers. Cell is -1 when the
// event is not tied to a cell.
type Event struct {
	Kind    EventKind
	MatchID string
	Cell    int
	Mark    domain.Cell
	Line    domain.Line
}
