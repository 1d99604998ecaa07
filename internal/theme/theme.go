// Package theme supplies the presentation of a match: names, symbols,
// colors, status lines and effect cues. Themes never feed back into play.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/match"
)

// Theme is a presentation strategy.
type Theme struct {
	Name     string
	Title    string
	Tagline  string
	Footer   string
	Computer Side
	Human    Side
	// Colors maps a UI role ("background", "accent", ...) to a CSS color.
	Colors map[string]string
	// Cues maps an event to the name of a sound or particle effect.
	Cues map[match.EventKind]string
	// Messages overrides the default status lines.
	Messages Messages
}

// Side is how one player is shown.
type Side struct {
	Name   string
	Symbol string
	Color  string
}

// Messages are status line templates. {name} is replaced by the side's name.
type Messages struct {
	Thinking string
	YourTurn string
	Won      string
	Lost     string
	Draw     string
}

// Status describes what a status line needs to know.
type Status struct {
	Status match.Status
	Turn   match.Turn
	Winner domain.Cell
}

// Symbol returns the glyph for c. Empty cells render as "".
func (t Theme) Symbol(c domain.Cell) string {
	switch c {
	case domain.Computer:
		return t.Computer.Symbol
	case domain.Human:
		return t.Human.Symbol
	default:
		return ""
	}
}

// SideOf returns the side that plays c.
func (t Theme) SideOf(c domain.Cell) Side {
	if c == domain.Human {
		return t.Human
	}
	return t.Computer
}

// Cue returns the effect name for k, or "" when the theme has none.
func (t Theme) Cue(k match.EventKind) string { return t.Cues[k] }

// Color returns the color for role, or fallback.
func (t Theme) Color(role, fallback string) string {
	if c, ok := t.Colors[role]; ok && c != "" {
		return c
	}
	return fallback
}

// StatusLine renders the one-line status for st.
func (t Theme) StatusLine(st Status) string {
	msg := t.Messages.withDefaults()
	switch st.Status {
	case match.Won:
		if st.Winner == domain.Computer {
			return fill(msg.Lost, t.Computer.Name)
		}
		return fill(msg.Won, t.Human.Name)
	case match.Drawn:
		return msg.Draw
	}
	if st.Turn == match.HumanNext {
		return fill(msg.YourTurn, t.Human.Name)
	}
	return fill(msg.Thinking, t.Computer.Name)
}

func fill(tmpl, name string) string { return strings.ReplaceAll(tmpl, "{name}", name) }

func (m Messages) withDefaults() Messages {
	if m.Thinking == "" {
		m.Thinking = "{name} is thinking..."
	}
	if m.YourTurn == "" {
		m.YourTurn = "{name}'s turn"
	}
	if m.Won == "" {
		m.Won = "{name} wins!"
	}
	if m.Lost == "" {
		m.Lost = "{name} wins!"
	}
	if m.Draw == "" {
		m.Draw = "It's a draw!"
	}
	return m
}

var registry = map[string]Theme{
	Classic.Name: Classic,
	Tesla.Name:   Tesla,
}

// Lookup finds a built-in theme by name, case-insensitively.
func Lookup(name string) (Theme, error) {
	t, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Names lists the built-in theme names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
