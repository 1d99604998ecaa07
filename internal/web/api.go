package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/app"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/match"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/theme"
)

type tallyDTO struct {
	Computer int `json:"computer"`
	Human    int `json:"human"`
	Draws    int `json:"draws"`
}

type stateDTO struct {
	MatchID     string   `json:"match_id"`
	Board       []string `json:"board"`
	Turn        string   `json:"turn"`
	Status      string   `json:"status"`
	Winner      string   `json:"winner,omitempty"`
	WinningLine []int    `json:"winning_line,omitempty"`
	Moves       int      `json:"moves"`
	Thinking    bool     `json:"thinking"`
	Tally       tallyDTO `json:"tally"`
	Message     string   `json:"message"`
}

type eventDTO struct {
	MatchID string   `json:"match_id"`
	Cell    *int     `json:"cell,omitempty"`
	Mark    string   `json:"mark,omitempty"`
	Line    []int    `json:"line,omitempty"`
	Cue     string   `json:"cue,omitempty"`
	State   stateDTO `json:"state"`
}

type errorDTO struct {
	Error string    `json:"error"`
	State *stateDTO `json:"state,omitempty"`
}

func markString(c domain.Cell) string {
	switch c {
	case domain.X:
		return "X"
	case domain.O:
		return "O"
	default:
		return ""
	}
}

func toStateDTO(th theme.Theme, st app.Snapshot) stateDTO {
	dto := stateDTO{
		MatchID:  st.MatchID,
		Board:    make([]string, len(st.Board)),
		Turn:     st.Turn.String(),
		Status:   st.Status.String(),
		Winner:   markString(st.Winner),
		Moves:    st.Moves,
		Thinking: st.Thinking,
		Tally: tallyDTO{
			Computer: st.Tally.ComputerWins,
			Human:    st.Tally.HumanWins,
			Draws:    st.Tally.Draws,
		},
		Message: th.StatusLine(statusOf(st)),
	}
	for i, c := range st.Board {
		dto.Board[i] = markString(c)
	}
	if st.Status == match.Won {
		dto.WinningLine = st.WinningLine[:]
	}
	return dto
}

func toEventDTO(th theme.Theme, ev app.Event) eventDTO {
	dto := eventDTO{
		MatchID: ev.MatchID,
		Mark:    markString(ev.Mark),
		Cue:     th.Cue(ev.Kind),
		State:   toStateDTO(th, ev.State),
	}
	if ev.Cell >= 0 {
		cell := ev.Cell
		dto.Cell = &cell
	}
	if ev.Kind == match.MatchWon {
		dto.Line = ev.Line[:]
	}
	return dto
}

// apiStatus maps service errors to HTTP status codes.
func apiStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotYourTurn), errors.Is(err, domain.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, domain.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) apiPing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handlers) apiState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStateDTO(h.theme, h.svc.Snapshot()))
}

func (h *handlers) apiMove(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Cell *int `json:"cell"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid payload"})
		return
	}
	st, err := h.svc.PlayHuman(*payload.Cell)
	h.writeResult(w, st, err)
}

func (h *handlers) apiComputer(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.AdvanceComputer()
	h.writeResult(w, st, err)
}

func (h *handlers) apiReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStateDTO(h.theme, h.svc.Reset()))
}

func (h *handlers) apiResetScores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStateDTO(h.theme, h.svc.ResetScores()))
}

func (h *handlers) apiHint(w http.ResponseWriter, r *http.Request) {
	cell, err := h.svc.Hint()
	if err != nil {
		writeJSON(w, apiStatus(err), errorDTO{Error: errorMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"cell": cell})
}

func (h *handlers) writeResult(w http.ResponseWriter, st app.Snapshot, err error) {
	dto := toStateDTO(h.theme, st)
	if err != nil {
		writeJSON(w, apiStatus(err), errorDTO{Error: errorMessage(err), State: &dto})
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
