// Package config loads obsmap settings from a TOML, JSON or YAML file with
// OBSMAP_* environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/andareed/siftly-obsmap/boundary"
	"gopkg.in/yaml.v3"
)

// DefaultInput is the CSV opened when none is given on the command line.
var DefaultInput = filepath.Join("data", "processed", "windows_2026-01-20_strict_with_context.csv")

// Config is the full set of obsmap settings.
type Config struct {
	Input   InputConfig   `toml:"input" json:"input" yaml:"input"`
	Preview PreviewConfig `toml:"preview" json:"preview" yaml:"preview"`
	Chart   ChartConfig   `toml:"chart" json:"chart" yaml:"chart"`
	Watch   WatchConfig   `toml:"watch" json:"watch" yaml:"watch"`
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// InputConfig selects the CSV and the columns to use from it.
type InputConfig struct {
	Path string `toml:"path" json:"path" yaml:"path"`
	// Flag is the flag column. Empty means detect.
	Flag string `toml:"flag" json:"flag" yaml:"flag"`
	// Context is the context column. Empty means the first one present.
	Context string `toml:"context" json:"context" yaml:"context"`
}

type PreviewConfig struct {
	Limit int `toml:"limit" json:"limit" yaml:"limit"`
}

// ChartConfig sizes the exported PNGs in pixels.
type ChartConfig struct {
	Width         int `toml:"width" json:"width" yaml:"width"`
	Height        int `toml:"height" json:"height" yaml:"height"`
	ContextHeight int `toml:"context_height" json:"context_height" yaml:"context_height"`
}

type WatchConfig struct {
	Enabled    bool `toml:"enabled" json:"enabled" yaml:"enabled"`
	DebounceMS int  `toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

type LoggingConfig struct {
	// File receives debug logs. Empty discards them.
	File string `toml:"file" json:"file" yaml:"file"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Input:   InputConfig{Path: DefaultInput},
		Preview: PreviewConfig{Limit: boundary.PreviewLimit},
		Chart:   ChartConfig{Width: 1800, Height: 280, ContextHeight: 240},
		Watch:   WatchConfig{DebounceMS: 200},
	}
}

// Path returns the default config file location.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "obsmap", "config.toml")
}

// Load reads configuration from path, or from Path() when path is empty.
// A missing file yields the defaults. The format follows the extension and
// falls back to TOML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err == nil {
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	}
	return nil
}

// ApplyEnvOverrides applies OBSMAP_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("OBSMAP_INPUT"); v != "" {
		c.Input.Path = v
	}
	if v := os.Getenv("OBSMAP_FLAG"); v != "" {
		c.Input.Flag = v
	}
	if v := os.Getenv("OBSMAP_CONTEXT"); v != "" {
		c.Input.Context = v
	}
	if v := os.Getenv("OBSMAP_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("OBSMAP_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OBSMAP_WATCH: %w", err)
		}
		c.Watch.Enabled = b
	}
	if v := os.Getenv("OBSMAP_PREVIEW_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OBSMAP_PREVIEW_LIMIT: %w", err)
		}
		c.Preview.Limit = n
	}
	return nil
}

// Save writes the configuration to path, creating the directory if needed.
// The format follows the extension the same way Load does.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".json":
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
	default:
		if err := toml.NewEncoder(f).Encode(c); err != nil {
			return fmt.Errorf("encode TOML: %w", err)
		}
	}
	return f.Close()
}
