// Package console plays a match in a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/app"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/match"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/theme"
)

const help = "cells 0-8 | n new game | r reset scores | h hint | q quit"

// Loop reads commands and prints the match as it changes.
type Loop struct {
	svc   *app.Service
	theme theme.Theme
	out   io.Writer
}

// New returns a loop over svc that writes to out.
func New(svc *app.Service, th theme.Theme, out io.Writer) *Loop {
	return &Loop{svc: svc, theme: th, out: out}
}

// Run blocks until the user quits, in reaches EOF, or ctx is done.
func (l *Loop) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, unsub := l.svc.Subscribe(ctx)
	defer unsub()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintf(l.out, "%s\n%s\n\n", l.theme.Title, help)
	l.render(l.svc.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ctx.Err()
			}
			l.onEvent(ev)
		case line, ok := <-lines:
			if !ok {
				l.drain(events)
				return nil
			}
			if quit := l.command(strings.TrimSpace(line)); quit {
				l.drain(events)
				return nil
			}
		}
	}
}

// drain prints events that are already queued.
func (l *Loop) drain(events <-chan app.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			l.onEvent(ev)
		default:
			return
		}
	}
}

// onEvent prints every change to the match. Commands only report
// rejections.
func (l *Loop) onEvent(ev app.Event) {
	switch ev.Kind {
	case match.HumanMoved:
		fmt.Fprintf(l.out, "%s played %d\n", l.theme.Human.Name, ev.Cell)
		l.render(ev.State)
	case match.ComputerMoved:
		fmt.Fprintf(l.out, "%s played %d\n", l.theme.Computer.Name, ev.Cell)
		l.render(ev.State)
	case match.MatchWon, match.MatchDrawn:
		l.printCue(ev.Kind)
	case match.Reset:
		fmt.Fprintln(l.out, "new game")
		l.render(ev.State)
	case match.ScoresReset:
		fmt.Fprintln(l.out, "scores reset")
		l.printTally(ev.State.Tally)
	}
}

func (l *Loop) command(cmd string) (quit bool) {
	switch strings.ToLower(cmd) {
	case "":
		return false
	case "q", "quit", "exit":
		fmt.Fprintln(l.out, "bye")
		return true
	case "n", "new":
		l.svc.Reset()
		return false
	case "r", "reset":
		l.svc.ResetScores()
		return false
	case "h", "hint":
		cell, err := l.svc.Hint()
		if err != nil {
			fmt.Fprintf(l.out, "no hint: %v\n", err)
			return false
		}
		fmt.Fprintf(l.out, "hint: %d\n", cell)
		return false
	case "?", "help":
		fmt.Fprintln(l.out, help)
		return false
	}

	cell, err := strconv.Atoi(cmd)
	if err != nil {
		fmt.Fprintf(l.out, "unknown command %q (%s)\n", cmd, help)
		return false
	}
	if _, err := l.svc.PlayHuman(cell); err != nil {
		fmt.Fprintf(l.out, "rejected: %v\n", err)
	}
	return false
}

func (l *Loop) render(st app.Snapshot) {
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			if sym := l.theme.Symbol(st.Board[i]); sym != "" {
				cells[c] = sym
			} else {
				cells[c] = strconv.Itoa(i)
			}
		}
		fmt.Fprintf(l.out, " %s\n", strings.Join(cells, " | "))
	}
	fmt.Fprintln(l.out, l.theme.StatusLine(theme.Status{Status: st.Status, Turn: st.Turn, Winner: st.Winner}))
	if st.Status != match.InProgress {
		l.printTally(st.Tally)
	}
	fmt.Fprintln(l.out)
}

func (l *Loop) printTally(t match.Tally) {
	fmt.Fprintf(l.out, "%s %d, %s %d, draws %d\n",
		l.theme.Human.Name, t.HumanWins, l.theme.Computer.Name, t.ComputerWins, t.Draws)
}

func (l *Loop) printCue(k match.EventKind) {
	if cue := l.theme.Cue(k); cue != "" {
		fmt.Fprintf(l.out, "*%s*\n", cue)
	}
}
