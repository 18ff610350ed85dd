// Package config provides environment-driven configuration for the agent.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds the runtime configuration for the agent.
type Config struct {
	Port         int
	StoreBackend string
	LettersPath  string // collection path for the file and sqlite backends
	DatabaseURL  string // required for the postgres backend
	GeminiAPIKey string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:         getEnvInt("PORT", 8080),
		StoreBackend: getEnv("STORE_BACKEND", BackendFile),
		LettersPath:  getEnv("LETTERS_PATH", "data/cover-letters.json"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendSQLite:
		if c.LettersPath == "" {
			return fmt.Errorf("config error: LETTERS_PATH is required for the %s backend", c.StoreBackend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config error: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: invalid port %d", c.Port)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
