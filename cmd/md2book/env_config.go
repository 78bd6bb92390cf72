package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2book/internal/config"
)

// envPrefix is the prefix of recognized environment variables.
const envPrefix = "MD2BOOK_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2BOOK_CONFIG: config file name or path
	SourceDir  string        // MD2BOOK_SOURCE_DIR: book source directory
	OutputDir  string        // MD2BOOK_OUTPUT_DIR: artifact directory
	Date       string        // MD2BOOK_DATE: "auto" or YYYY-MM-DD
	Engine     string        // MD2BOOK_ENGINE: pandoc or native
	Pandoc     string        // MD2BOOK_PANDOC: pandoc executable
	Assets     string        // MD2BOOK_ASSETS: custom asset directory
	Timeout    time.Duration // MD2BOOK_TIMEOUT: overall render timeout
	Workers    int           // MD2BOOK_WORKERS: parallel renders
}

// knownEnvVars lists valid MD2BOOK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2BOOK_CONFIG":     true,
	"MD2BOOK_SOURCE_DIR": true,
	"MD2BOOK_OUTPUT_DIR": true,
	"MD2BOOK_DATE":       true,
	"MD2BOOK_ENGINE":     true,
	"MD2BOOK_PANDOC":     true,
	"MD2BOOK_ASSETS":     true,
	"MD2BOOK_TIMEOUT":    true,
	"MD2BOOK_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable durations and worker counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2BOOK_CONFIG"),
		SourceDir:  getenv("MD2BOOK_SOURCE_DIR"),
		OutputDir:  getenv("MD2BOOK_OUTPUT_DIR"),
		Date:       getenv("MD2BOOK_DATE"),
		Engine:     getenv("MD2BOOK_ENGINE"),
		Pandoc:     getenv("MD2BOOK_PANDOC"),
		Assets:     getenv("MD2BOOK_ASSETS"),
	}

	if timeout := getenv("MD2BOOK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("MD2BOOK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for unrecognized MD2BOOK_* variables.
func warnUnknownEnvVars(env *Environment) {
	if env.Environ == nil {
		return
	}
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by applyFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SourceDir != "" {
		cfg.Source.Dir = env.SourceDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Date != "" {
		cfg.Book.Date = env.Date
	}
	if env.Engine != "" {
		cfg.Renderer.Engine = env.Engine
	}
	if env.Pandoc != "" {
		cfg.Renderer.Pandoc = env.Pandoc
	}
	if env.Assets != "" {
		cfg.Assets.BasePath = env.Assets
	}
	if env.Timeout > 0 {
		cfg.Renderer.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Renderer.Workers = env.Workers
	}
}
