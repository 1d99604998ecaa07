// Command tictactoe serves the game over HTTP or plays it in the terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/cmd/tictactoe"
	"github.com/jaminalder/minimax-tic-tac-toe/internal/config"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[tictactoe] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tictactoe.Run(ctx, cfg, tictactoe.IO{In: os.Stdin, Out: os.Stdout}); err != nil {
		log.Fatalf("run: %v", err)
	}
}
