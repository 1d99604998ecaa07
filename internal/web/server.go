package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/app"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/theme"
)

// DefaultHeartbeat is the idle ping interval for SSE and WebSocket streams.
const DefaultHeartbeat = 15 * time.Second

// Option configures the server.
type Option func(*handlers)

// WithTheme sets the presentation theme.
func WithTheme(th theme.Theme) Option { return func(h *handlers) { h.theme = th } }

// WithHeartbeat sets the idle ping interval for event streams.
func WithHeartbeat(d time.Duration) Option {
	return func(h *handlers) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// WithRequestLogging toggles chi's request logger.
func WithRequestLogging(on bool) Option { return func(h *handlers) { h.requestLog = on } }

// NewServer wires routes and returns an http.Handler.
func NewServer(s *app.Service, opts ...Option) http.Handler {
	h := &handlers{svc: s, tpl: loadTemplates(), theme: theme.Tesla, heartbeat: DefaultHeartbeat, requestLog: true}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if h.requestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Get("/board", h.board)
	r.Post("/play", h.play)
	r.Post("/reset", h.reset)
	r.Post("/scores/reset", h.resetScores)
	r.Get("/events", h.events)
	r.Get("/ws", h.ws)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.apiPing)
		r.Get("/state", h.apiState)
		r.Get("/hint", h.apiHint)
		r.Post("/move", h.apiMove)
		r.Post("/computer", h.apiComputer)
		r.Post("/reset", h.apiReset)
		r.Post("/scores/reset", h.apiResetScores)
	})
	return r
}
