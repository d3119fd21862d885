// Package main is the entry point for the rsa-cli application.
// It builds the command tree and executes it with a context that is
// canceled on SIGINT or SIGTERM, which interrupts long key generations.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/arokys4/rsa-project/cmd/rsa-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return commands.NewRootCommand().ExecuteContext(ctx)
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
