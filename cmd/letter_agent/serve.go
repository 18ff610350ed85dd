package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes generation, letter storage, feedback, and statistics endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort != 0 {
		cfg.Port = servePort
	}
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

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			repo.Close()
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set; /generate will be unavailable")
	}

	srv := server.New(server.Config{Port: cfg.Port}, repo, client)
	return srv.Start()
}
