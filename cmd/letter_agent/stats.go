package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/learning"
	"github.com/jonathan/coverletter-agent/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print learning store statistics",
	Long:  `Scan the letter store and print totals, feedback coverage, average rating, and success rate.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open letter store: %w", err)
	}
	defer repo.Close()

	stats, err := learning.NewAggregator(repo).Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintStats(stats)
	return nil
}
