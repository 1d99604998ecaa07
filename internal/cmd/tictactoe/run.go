// Package tictactoe wires configuration into the web server or the console
// loop.
package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/app"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/config"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/console"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/theme"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/web"
)

// IO carries the console streams. Web mode ignores it.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// Run starts the configured mode and blocks until ctx ends or the console
// user quits.
func Run(ctx context.Context, cfg config.Config, stdio IO) error {
	th, err := theme.Lookup(cfg.Theme)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}

	svc := app.NewService(
		app.WithThinkDelay(cfg.ThinkDelay),
		app.WithLogger(log.New(os.Stderr, "[app] ", log.LstdFlags)),
	)
	defer svc.Close()

	switch cfg.Mode {
	case config.ModeConsole:
		err := console.New(svc, th, stdio.Out).Run(ctx, stdio.In)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		return serve(ctx, cfg, web.NewServer(svc, web.WithTheme(th), web.WithHeartbeat(cfg.HeartbeatInterval)))
	}
}

// serve runs the HTTP server until ctx ends, then drains in-flight requests
// within the shutdown timeout.
func serve(ctx context.Context, cfg config.Config, h http.Handler) error {
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: h}
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("listening on http://%s", cfg.HTTPAddr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
