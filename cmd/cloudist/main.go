package main

import (
	"log/slog"
	"os"

	"github.com/RishabhK9/cloudist/internal/cli"
)

// main is the entrypoint for the cloudist CLI.
func main() {
	// Minimal logger until command flags configure the real one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	os.Exit(cli.Execute())
}
