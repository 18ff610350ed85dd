// Package main provides the entry point for the cover letter agent.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/learning"
)

var rootCmd = &cobra.Command{
	Use:   "letter_agent",
	Short: "Cover Letter Agent HTTP API Server",
	Long:  "Cover Letter Agent generates personalized cover letters via Gemini and learns from feedback on past letters to improve future generations.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openRepository constructs the configured Repository backend.
func openRepository(ctx context.Context, cfg config.Config) (learning.Repository, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		return learning.OpenFileStore(cfg.LettersPath)
	case config.BackendSQLite:
		return learning.OpenSQLiteStore(cfg.LettersPath)
	case config.BackendPostgres:
		return learning.ConnectPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
