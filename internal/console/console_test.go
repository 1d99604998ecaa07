package console

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/app"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/theme"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	svc := app.NewService(app.WithThinkDelay(0), app.WithLogger(log.New(io.Discard, "", 0)))
	t.Cleanup(svc.Close)
	return svc
}

func run(t *testing.T, svc *app.Service, th theme.Theme, input string) string {
	t.Helper()
	var out bytes.Buffer
	err := New(svc, th, &out).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	return out.String()
}

func TestRunPlaysMovesAndHints(t *testing.T) {
	svc := newService(t)
	out := run(t, svc, theme.Tesla, "4\nh\nq\nignored\n")

	require.Contains(t, out, "Einstein vs Tesla")
	require.Contains(t, out, "Einstein played 4")
	require.Contains(t, out, "Tesla played 1")
	require.Contains(t, out, "hint: ")
	require.Contains(t, out, "bye")
	require.NotContains(t, out, "unknown command")

	st := svc.Snapshot()
	require.Equal(t, 3, st.Moves)
	require.Equal(t, domain.Human, st.Board[4])
	require.Equal(t, domain.Computer, st.Board[1])
}

func TestRunRejectsBadInput(t *testing.T) {
	svc := newService(t)
	out := run(t, svc, theme.Classic, "0\n9\nfoo\n\n")

	require.Contains(t, out, " X | 1 | 2\n")
	require.Equal(t, 2, strings.Count(out, "rejected: "))
	require.Contains(t, out, `unknown command "foo"`)
	require.Equal(t, 1, svc.Snapshot().Moves)
}

func TestRunReportsWinAndResets(t *testing.T) {
	svc := newService(t)
	// X 0, O 1, X 3, O 2, X 6
	out := run(t, svc, theme.Tesla, "1\n2\nn\nr\n")

	require.Contains(t, out, "*fanfare*")
	require.Contains(t, out, "Tesla Wins! The AI is unbeatable!")
	require.Contains(t, out, "Einstein 0, Tesla 1, draws 0")
	require.Contains(t, out, "new game")
	require.Contains(t, out, "scores reset")
	require.Contains(t, out, "Einstein 0, Tesla 0, draws 0")

	st := svc.Snapshot()
	require.Equal(t, 1, st.Moves)
	require.Zero(t, st.Tally.Total())
}

func TestRunStopsOnCancel(t *testing.T) {
	svc := newService(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(svc, theme.Classic, io.Discard).Run(ctx, pr)
	require.ErrorIs(t, err, context.Canceled)
}
