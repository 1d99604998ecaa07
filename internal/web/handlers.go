package web

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/app"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/engine"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/theme"
)

type handlers struct {
	svc        *app.Service
	tpl        *templates
	theme      theme.Theme
	heartbeat  time.Duration
	requestLog bool
}

func (h *handlers) renderBoard(st app.Snapshot, errMsg, cue string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(h.theme, st, errMsg, cue))
}

func (h *handlers) writeBoard(w http.ResponseWriter, st app.Snapshot, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(st, errMsg, ""))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Theme theme.Theme
		Board boardView
	}{Theme: h.theme, Board: newBoardView(h.theme, h.svc.Snapshot(), "", "")}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.page, "", data))
}

func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
	h.writeBoard(w, h.svc.Snapshot(), "")
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	cell, err := strconv.Atoi(r.Form.Get("cell"))
	if err != nil {
		cell = -1
	}
	st, err := h.svc.PlayHuman(cell)
	var errMsg string
	if err != nil {
		errMsg = errorMessage(err)
	}
	h.writeBoard(w, st, errMsg)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	h.writeBoard(w, h.svc.Reset(), "")
}

func (h *handlers) resetScores(w http.ResponseWriter, r *http.Request) {
	h.writeBoard(w, h.svc.ResetScores(), "")
}

// errorMessage maps service errors to short user-facing text.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, domain.ErrOccupied):
		return "Cell is occupied"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "Out of bounds"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	case errors.Is(err, app.ErrClosed):
		return "Server is shutting down"
	case errors.Is(err, engine.ErrNoLegalMove):
		return "No legal move"
	default:
		return "Invalid move"
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub := h.svc.Subscribe(ctx)
	defer unsub()
	// heartbeat ticker
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	// Initial flush of headers
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case ev, ok := <-ch:
			if !ok {
				return
			}
			writeSSE(w, "board", h.renderBoard(ev.State, "", h.theme.Cue(ev.Kind)))
			flusher.Flush()
		}
	}
}

// writeSSE emits one event. Every payload line gets its own data field.
func writeSSE(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	sc := bufio.NewScanner(bytes.NewReader(payload))
	sc.Buffer(make([]byte, 0, 4096), len(payload)+1)
	for sc.Scan() {
		_, _ = fmt.Fprintf(w, "data: %s\n", sc.Bytes())
	}
	_, _ = io.WriteString(w, "\n")
}
