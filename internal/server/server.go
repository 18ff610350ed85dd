// Package server provides the HTTP REST API for the cover letter agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/coverletter-agent/internal/generation"
	"github.com/jonathan/coverletter-agent/internal/learning"
	"github.com/jonathan/coverletter-agent/internal/llm"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	repo       learning.Repository
	generator  *generation.Generator
	selector   *learning.Selector
	ingestor   *learning.Ingestor
	aggregator *learning.Aggregator
	llmClient  llm.Client
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance over an already-opened repository. The
// LLM client may be nil, in which case /generate is unavailable but the
// store endpoints still work.
func New(cfg Config, repo learning.Repository, client llm.Client) *Server {
	s := &Server{
		repo:       repo,
		llmClient:  client,
		selector:   learning.NewSelector(repo),
		ingestor:   learning.NewIngestor(repo),
		aggregator: learning.NewAggregator(repo),
	}
	if client != nil {
		s.generator = generation.New(client, repo)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /letters", s.handleSaveLetter)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("GET /examples", s.handleExamples)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until an interrupt or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	if err := s.repo.Close(); err != nil {
		log.Printf("Error closing letter store: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withLogging logs each request with its duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withCORS allows browser clients to reach the API directly.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
