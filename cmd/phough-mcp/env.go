package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/phough-mcp/internal/server"
)

// newLogger builds the process logger from PHOUGH_MCP_LOG_LEVEL and
// PHOUGH_MCP_LOG_FORMAT. It always writes to stderr.
func newLogger(getenv func(string) string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(getenv("PHOUGH_MCP_LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if getenv("PHOUGH_MCP_LOG_FORMAT") == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// configFromEnv returns the server defaults with PHOUGH_MCP_SEED applied.
func configFromEnv(getenv func(string) string) (server.Config, error) {
	cfg := server.DefaultConfig()
	if v := getenv("PHOUGH_MCP_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("PHOUGH_MCP_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}
