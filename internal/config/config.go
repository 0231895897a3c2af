// Package config holds Kerf's configuration: an optional TOML file
// merged with KERF_* environment overrides. The engine consumes this
// surface; it does not own it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Depth selects how much log context a query-driven sample may use.
type Depth string

const (
	DepthQuick    Depth = "Quick"
	DepthStandard Depth = "Standard"
	DepthDeep     Depth = "Deep"
)

// ParseDepth maps a user-supplied string to a Depth, case-insensitively.
// Unknown input falls back to DepthStandard.
func ParseDepth(s string) Depth {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quick":
		return DepthQuick
	case "deep":
		return DepthDeep
	default:
		return DepthStandard
	}
}

// SampleCap returns the log-sample cap for the depth.
func (d Depth) SampleCap() int {
	switch d {
	case DepthQuick:
		return 20
	case DepthDeep:
		return 100
	default:
		return 50
	}
}

// Config holds all Kerf configuration.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Limits   LimitsConfig   `toml:"limits"`
	Logging  LoggingConfig  `toml:"logging"`
}

// AnalysisConfig holds analysis behavior settings.
type AnalysisConfig struct {
	// Depth is "quick", "standard", or "deep".
	Depth string `toml:"depth"`
	// MaxContextEntries caps the digest's recent-entries window.
	MaxContextEntries int `toml:"max_context_entries"`
}

// LimitsConfig holds input guard settings, enforced by the loader.
type LimitsConfig struct {
	MaxDocumentBytes int64 `toml:"max_document_bytes"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			Depth:             "standard",
			MaxContextEntries: 100,
		},
		Limits: LimitsConfig{
			MaxDocumentBytes: 10 << 20, // 10 MiB
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path
// (skipped when path is empty; a named-but-missing file is an error),
// then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays KERF_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.Analysis.Depth = getenv("KERF_DEPTH", cfg.Analysis.Depth)
	cfg.Analysis.MaxContextEntries = getenvInt("KERF_MAX_CONTEXT_ENTRIES", cfg.Analysis.MaxContextEntries)
	cfg.Limits.MaxDocumentBytes = int64(getenvInt("KERF_MAX_DOCUMENT_BYTES", int(cfg.Limits.MaxDocumentBytes)))
	cfg.Logging.Level = getenv("KERF_LOG_LEVEL", cfg.Logging.Level)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
