// =============================================================================
// Ledger Export - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration. It handles:
//   1. Main Config (config.yaml): directories, logging, currency display
//   2. Lookup Tables (lookups.yaml): reference id -> display name maps used
//      during normalization (see lookups.go)
//
// The configuration system is designed to be:
//   - Validated: directories are created or checked on load
//   - Defaulted: every unset option gets a sensible default
//   - Injectable: lookups implement the normalize.Resolver interface, so the
//     normalizer never reads files itself
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration, loaded from config.yaml.
type Config struct {
	// DataDir is the directory containing the record extracts
	// (expenses.csv, income.csv) the CSV record store reads from.
	// Default: "./data"
	DataDir string `yaml:"data_dir"`

	// OutputDir is the directory where export artifacts are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where a copy of each successfully written
	// artifact is kept for long-term storage.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// LookupsFile is the path to the YAML lookup tables used to resolve
	// category, equipment, client and project references to display names.
	// Default: "./lookups.yaml"
	LookupsFile string `yaml:"lookups_file"`

	// LogLevel controls logging verbosity.
	// Valid values: "debug", "info", "warn", "error". Default: "info"
	LogLevel string `yaml:"log_level"`

	// CurrencySymbol is the symbol used when printing amounts on screen.
	// It never appears in persisted cell values. Default: "RD$"
	CurrencySymbol string `yaml:"currency_symbol"`
}

// Load reads the configuration from a YAML file, applies defaults and
// validates it.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with every option at its default value,
// without touching the filesystem. Used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./archive"
	}
	if cfg.LookupsFile == "" {
		cfg.LookupsFile = "./lookups.yaml"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "RD$"
	}
}

// validate checks the configuration, creating missing directories.
func validate(cfg *Config) error {
	dirs := []string{
		cfg.DataDir,
		cfg.OutputDir,
		cfg.ArchiveDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	return nil
}
