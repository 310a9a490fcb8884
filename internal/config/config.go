// Package config loads phonebook settings: defaults, then YAML files in
// increasing priority, then PHONEBOOK_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/phonebook/internal/logging"
)

// UI modes.
const (
	ModeAuto  = "auto"  // TUI on a terminal, plain console otherwise.
	ModePlain = "plain" // Always the line-based console.
	ModeTUI   = "tui"   // Always the Bubble Tea interface.
)

// Config holds all phonebook configuration.
type Config struct {
	UI   UI   `yaml:"ui"`
	Log  Log  `yaml:"log"`
	Seed Seed `yaml:"seed"`
}

// UI holds presentation settings.
type UI struct {
	Mode string `yaml:"mode"` // "auto" | "plain" | "tui"
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty disables logging.
}

// Seed holds the contacts preloaded at start.
type Seed struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the settings used when no file or variable says otherwise.
func DefaultConfig() Config {
	return Config{
		UI:  UI{Mode: ModeAuto},
		Log: Log{Level: "info"},
	}
}

// Load reads one YAML file on top of the defaults. A missing, empty or
// comment-only file yields the defaults; unknown keys are an error.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered applies each file in order on top of the defaults, so keys in
// later files win. Only keys present in a file override earlier values.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	for _, path := range paths {
		var layer rawConfig
		ok, err := decodeFile(path, &layer)
		if err != nil {
			return nil, err
		}
		if ok {
			cfg.merge(&layer)
		}
	}
	return &cfg, nil
}

// Validate rejects an unknown UI mode or log level.
func (c *Config) Validate() error {
	switch c.UI.Mode {
	case ModeAuto, ModePlain, ModeTUI:
	default:
		return fmt.Errorf("config: ui.mode must be %q, %q or %q, got %q", ModeAuto, ModePlain, ModeTUI, c.UI.Mode)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level %q: %w", c.Log.Level, err)
	}
	return nil
}

// ApplyEnv overrides fields from PHONEBOOK_UI_MODE, PHONEBOOK_LOG_LEVEL,
// PHONEBOOK_LOG_FILE and PHONEBOOK_SEED. Empty variables are ignored.
func (c *Config) ApplyEnv() {
	overrides := map[string]*string{
		"PHONEBOOK_UI_MODE":   &c.UI.Mode,
		"PHONEBOOK_LOG_LEVEL": &c.Log.Level,
		"PHONEBOOK_LOG_FILE":  &c.Log.File,
		"PHONEBOOK_SEED":      &c.Seed.Path,
	}
	for name, field := range overrides {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
}

// rawConfig is one file's view of Config. Nil pointers mark keys the file
// leaves unset.
type rawConfig struct {
	UI   *rawUI   `yaml:"ui"`
	Log  *rawLog  `yaml:"log"`
	Seed *rawSeed `yaml:"seed"`
}

type rawUI struct {
	Mode *string `yaml:"mode"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type rawSeed struct {
	Path *string `yaml:"path"`
}

// decodeFile strictly decodes the YAML file at path into v. It reports false
// when the file is absent or holds no document.
func decodeFile(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("config: reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return true, nil
}

// merge copies the keys set in layer onto c.
func (c *Config) merge(layer *rawConfig) {
	if layer.UI != nil && layer.UI.Mode != nil {
		c.UI.Mode = *layer.UI.Mode
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
	if layer.Seed != nil && layer.Seed.Path != nil {
		c.Seed.Path = *layer.Seed.Path
	}
}
