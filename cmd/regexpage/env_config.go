package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-regexpage/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // REGEXPAGE_CONFIG: config file name or path
	Input      string        // REGEXPAGE_INPUT: markdown document
	Style      string        // REGEXPAGE_STYLE: stylesheet path or "builtin"
	OutputDir  string        // REGEXPAGE_OUTPUT_DIR: output directory
	Highlight  string        // REGEXPAGE_HIGHLIGHT: chroma style or "none"
	Timeout    time.Duration // REGEXPAGE_TIMEOUT: build and check timeout
}

// knownEnvVars lists valid REGEXPAGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"REGEXPAGE_CONFIG":     true,
	"REGEXPAGE_INPUT":      true,
	"REGEXPAGE_STYLE":      true,
	"REGEXPAGE_OUTPUT_DIR": true,
	"REGEXPAGE_HIGHLIGHT":  true,
	"REGEXPAGE_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("REGEXPAGE_CONFIG"),
		Input:      os.Getenv("REGEXPAGE_INPUT"),
		Style:      os.Getenv("REGEXPAGE_STYLE"),
		OutputDir:  os.Getenv("REGEXPAGE_OUTPUT_DIR"),
		Highlight:  os.Getenv("REGEXPAGE_HIGHLIGHT"),
	}

	// Invalid durations are ignored, like unset ones.
	if timeout := os.Getenv("REGEXPAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized REGEXPAGE_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "REGEXPAGE_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeBuildFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Input.Markdown = env.Input
	}
	if env.Style != "" {
		cfg.Input.Style = env.Style
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Highlight != "" {
		cfg.Highlight.Style = env.Highlight
	}
}
