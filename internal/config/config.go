package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds invocation defaults. Precedence is flags > environment >
// config file > built-ins; this package resolves everything below flags.
type Config struct {
	OutputDir       string `toml:"output_dir"`
	Format          string `toml:"format"`
	Jobs            int    `toml:"jobs"`
	ContinueOnError bool   `toml:"continue_on_error"`
	History         *bool  `toml:"history"`
}

// HistoryEnabled reports whether the journal should record results.
// Recording is on unless the config file turns it off.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// DefaultConfigPath returns the config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "vvc", "config.toml")
}

// DefaultHistoryPath returns the journal database path using XDG_CACHE_HOME.
func DefaultHistoryPath() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheDir, "vvc", "history.db")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Load builds the Config from built-ins, the optional config file, and the
// environment. A missing config file is fine; a malformed one is an error.
func Load() (*Config, error) {
	return load(DefaultConfigPath())
}

func load(path string) (*Config, error) {
	cfg := &Config{
		OutputDir: ".",
		Format:    "wav",
		Jobs:      1,
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Env overrides
	if dir := os.Getenv("VVC_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	if format := os.Getenv("VVC_FORMAT"); format != "" {
		cfg.Format = format
	}
	if jobs := os.Getenv("VVC_JOBS"); jobs != "" {
		if j, err := strconv.Atoi(jobs); err == nil {
			cfg.Jobs = j
		}
	}

	cfg.OutputDir = ExpandPath(cfg.OutputDir)
	return cfg, nil
}
