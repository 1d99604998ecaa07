package app

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/engine"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/match"
)

// Errors exposed by the service layer.
var (
	ErrClosed = errors.New("service closed")
)

// DefaultThinkDelay is how long the computer appears to think before its
// chosen move is applied.
const DefaultThinkDelay = 500 * time.Millisecond

// subscriberBuffer is how many events a subscriber may fall behind before
// it is dropped.
const subscriberBuffer = 16

// Snapshot is a copy of the current match and tally.
type Snapshot struct {
	MatchID     string
	Board       domain.Board
	Turn        match.Turn
	Status      match.Status
	Winner      domain.Cell
	WinningLine domain.Line
	Moves       int
	Tally       match.Tally
	Thinking    bool
	Started     time.Time
	Updated     time.Time
}

// Event is a match event together with the state right after it.
type Event struct {
	match.Event
	State Snapshot
}

type subscriber struct {
	ch        chan Event
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Option configures a Service.
type Option func(*Service)

// WithThinkDelay sets the delay before the computer's move is applied. Zero
// or less applies it immediately.
func WithThinkDelay(d time.Duration) Option { return func(s *Service) { s.delay = d } }

// WithScheduler replaces the timer source used for delayed computer moves.
func WithScheduler(sched Scheduler) Option {
	return func(s *Service) {
		if sched != nil {
			s.sched = sched
		}
	}
}

// WithLogger sets the logger used for match lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the match ID source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Service owns the single match in flight, the session tally, and the
// subscribers that watch them.
type Service struct {
	mu      sync.Mutex
	match   *match.Match
	tally   match.Tally
	pending *pendingMove
	started time.Time
	updated time.Time
	closed  bool
	subs    map[*subscriber]struct{}

	delay  time.Duration
	sched  Scheduler
	logger *log.Logger
	newID  func() string
}

// NewService starts the first match. The computer's opening move is
// scheduled right away.
func NewService(opts ...Option) *Service {
	s := &Service{
		subs:   make(map[*subscriber]struct{}),
		delay:  DefaultThinkDelay,
		sched:  clockScheduler{},
		logger: log.New(os.Stderr, "[app] ", log.LstdFlags),
		newID:  newMatchID,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.startMatchLocked(match.New(s.newID(), &s.tally))
	s.publishLocked(s.scheduleComputerLocked())
	return s
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// PlayHuman applies the human's move at cell and schedules the reply.
// Rejected moves return the unchanged state and an error wrapping
// domain.ErrIllegalMove.
func (s *Service) PlayHuman(cell int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.snapshotLocked(), ErrClosed
	}
	evs, err := s.match.ApplyHumanMove(cell)
	if err != nil {
		return s.snapshotLocked(), err
	}
	out := s.recordLocked(evs)
	out = append(out, s.scheduleComputerLocked()...)
	s.publishLocked(out)
	return s.snapshotLocked(), nil
}

// AdvanceComputer applies the computer's move now, skipping any pending
// delay.
func (s *Service) AdvanceComputer() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.snapshotLocked(), ErrClosed
	}
	if err := s.computerMayMoveLocked(); err != nil {
		return s.snapshotLocked(), err
	}
	s.cancelPendingLocked()
	evs, err := s.match.AdvanceComputerMove()
	if err != nil {
		s.logger.Printf("advance computer in match %s: %v", s.match.ID, err)
		return s.snapshotLocked(), err
	}
	s.publishLocked(s.recordLocked(evs))
	return s.snapshotLocked(), nil
}

// Reset discards the current match, including any pending computer move,
// and starts a new one. The tally is kept.
func (s *Service) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.snapshotLocked()
	}
	s.cancelPendingLocked()
	prev := s.match.ID
	s.startMatchLocked(s.match.Restart(s.newID()))
	s.logger.Printf("match %s replaced by %s", prev, s.match.ID)

	out := s.recordLocked([]match.Event{{Kind: match.Reset, MatchID: s.match.ID, Cell: -1}})
	out = append(out, s.scheduleComputerLocked()...)
	s.publishLocked(out)
	return s.snapshotLocked()
}

// ResetScores zeroes the tally. The match in progress is untouched.
func (s *Service) ResetScores() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.snapshotLocked()
	}
	s.tally.Reset()
	s.updated = time.Now()
	s.publishLocked(s.recordLocked([]match.Event{{Kind: match.ScoresReset, MatchID: s.match.ID, Cell: -1}}))
	return s.snapshotLocked()
}

// Hint returns the engine's choice for the human on the current board.
func (s *Service) Hint() (int, error) {
	s.mu.Lock()
	if s.match.Over() {
		s.mu.Unlock()
		return -1, domain.ErrGameOver
	}
	if s.match.Turn != match.HumanNext {
		s.mu.Unlock()
		return -1, domain.ErrNotYourTurn
	}
	b := s.match.Board
	s.mu.Unlock()
	return engine.SelectMoveFor(b, domain.Human)
}

// Subscribe registers a subscriber. The channel closes when ctx is done,
// when the returned func is called, when the subscriber falls behind, or when
// the service closes.
func (s *Service) Subscribe(ctx context.Context) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			delete(s.subs, sub)
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}

// Close cancels any pending computer move and closes every subscriber.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelPendingLocked()
	for sub := range s.subs {
		sub.close()
		delete(s.subs, sub)
	}
}

func (s *Service) startMatchLocked(m *match.Match) {
	now := time.Now()
	s.match = m
	s.started = now
	s.updated = now
}

func (s *Service) computerMayMoveLocked() error {
	if s.match.Over() {
		return domain.ErrGameOver
	}
	if s.match.Turn != match.ComputerNext {
		return domain.ErrNotYourTurn
	}
	return nil
}

// scheduleComputerLocked chooses the computer's move now and applies it
// after the think delay, or immediately when there is none.
func (s *Service) scheduleComputerLocked() []Event {
	if s.closed || s.pending != nil || s.computerMayMoveLocked() != nil {
		return nil
	}
	cell, err := engine.SelectMove(s.match.Board)
	if err != nil {
		s.logger.Printf("select move in match %s: %v", s.match.ID, err)
		return nil
	}
	if s.delay <= 0 {
		return s.placeComputerLocked(cell)
	}
	p := &pendingMove{matchID: s.match.ID, cell: cell}
	p.timer = s.sched.AfterFunc(s.delay, func() { s.applyPending(p) })
	s.pending = p
	return nil
}

// applyPending is the timer callback. A move whose match has been reset or
// already advanced is dropped.
func (s *Service) applyPending(p *pendingMove) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pending != p || s.match.ID != p.matchID {
		s.logger.Printf("dropping stale computer move %d for match %s", p.cell, p.matchID)
		return
	}
	s.pending = nil
	s.publishLocked(s.placeComputerLocked(p.cell))
}

func (s *Service) placeComputerLocked(cell int) []Event {
	evs, err := s.match.PlaceComputerMove(cell)
	if err != nil {
		s.logger.Printf("place computer move %d in match %s: %v", cell, s.match.ID, err)
		return nil
	}
	return s.recordLocked(evs)
}

func (s *Service) cancelPendingLocked() {
	if s.pending == nil {
		return
	}
	if s.pending.timer != nil {
		s.pending.timer.Stop()
	}
	s.pending = nil
}

// recordLocked stamps the update time and attaches the current state to evs.
func (s *Service) recordLocked(evs []match.Event) []Event {
	if len(evs) == 0 {
		return nil
	}
	s.updated = time.Now()
	snap := s.snapshotLocked()
	out := make([]Event, 0, len(evs))
	for _, ev := range evs {
		switch ev.Kind {
		case match.MatchWon:
			s.logger.Printf("match %s won by %v after %d moves", ev.MatchID, ev.Mark, snap.Moves)
		case match.MatchDrawn:
			s.logger.Printf("match %s drawn", ev.MatchID)
		}
		out = append(out, Event{Event: ev, State: snap})
	}
	return out
}

// publishLocked fans events out. Sends never block, so it runs under the lock
// and subscribers see events in the order they happened.
func (s *Service) publishLocked(events []Event) {
	for _, ev := range events {
		for sub := range s.subs {
			select {
			case sub.ch <- ev:
			default:
				// drop slow subscriber
				sub.close()
				delete(s.subs, sub)
			}
		}
	}
}

func (s *Service) snapshotLocked() Snapshot {
	m := s.match
	return Snapshot{
		MatchID:     m.ID,
		Board:       m.Board,
		Turn:        m.Turn,
		Status:      m.Status,
		Winner:      m.Winner,
		WinningLine: m.WinningLine,
		Moves:       m.Moves,
		Tally:       s.tally,
		Thinking:    s.pending != nil,
		Started:     s.started,
		Updated:     s.updated,
	}
}
