// Package config loads process settings from TICTACTOE_* environment
// variables, then lets command-line flags override them.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Modes the process can run in.
const (
	ModeWeb     = "web"
	ModeConsole = "console"
)

// Config holds the process configuration.
type Config struct {
	Mode              string        `env:"TICTACTOE_MODE" envDefault:"web"`
	HTTPAddr          string        `env:"TICTACTOE_HTTP_ADDR" envDefault:"localhost:8080"`
	ThinkDelay        time.Duration `env:"TICTACTOE_THINK_DELAY" envDefault:"500ms"`
	Theme             string        `env:"TICTACTOE_THEME" envDefault:"tesla"`
	HeartbeatInterval time.Duration `env:"TICTACTOE_HEARTBEAT" envDefault:"15s"`
	ShutdownTimeout   time.Duration `env:"TICTACTOE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment and then applies flags from args.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "run mode: web or console")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.DurationVar(&cfg.ThinkDelay, "think-delay", cfg.ThinkDelay, "delay before the computer's move is applied")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "presentation theme")
	fs.DurationVar(&cfg.HeartbeatInterval, "heartbeat", cfg.HeartbeatInterval, "idle ping interval for event streams")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env and flags cannot express.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeWeb, ModeConsole:
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.ThinkDelay < 0 {
		return fmt.Errorf("think delay must not be negative, got %v", c.ThinkDelay)
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat must be positive, got %v", c.HeartbeatInterval)
	}
	return nil
}
