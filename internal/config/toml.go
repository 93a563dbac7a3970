// Package config provides configuration helpers and TOML/YAML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/pomotui/internal/model"
)

// FileConfig represents the configuration file.
type FileConfig struct {
	Timer  TimerConfig   `toml:"timer" yaml:"timer"`
	Phases []PhaseConfig `toml:"phases" yaml:"phases"`
}

// TimerConfig maps runtime settings. Nil fields are unset.
type TimerConfig struct {
	Tick     *string `toml:"tick" yaml:"tick"`
	Measured *bool   `toml:"measured" yaml:"measured"`
	LogLevel *string `toml:"log-level" yaml:"log-level"`
	History  *bool   `toml:"history" yaml:"history"`
}

// PhaseConfig maps one [[phases]] entry.
type PhaseConfig struct {
	Name     string  `toml:"name" yaml:"name"`
	Duration float64 `toml:"duration" yaml:"duration"`
	Unit     string  `toml:"unit" yaml:"unit"`
	Color    string  `toml:"color" yaml:"color"`
}

// LoadConfig reads a config from the given path. Missing file is not an error.
// Paths ending in .yaml or .yml are decoded as YAML, everything else as TOML.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if IsYAML(path) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// IsYAML reports whether path is decoded as YAML.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// BuildPhases converts configured phases. An empty list yields the defaults.
func BuildPhases(entries []PhaseConfig) ([]model.Phase, error) {
	if len(entries) == 0 {
		return model.DefaultPhases(), nil
	}
	phases := make([]model.Phase, 0, len(entries))
	for i, entry := range entries {
		unit, err := model.ParseTimeUnit(entry.Unit)
		if err != nil {
			return nil, fmt.Errorf("phase %d: %w", i+1, err)
		}
		phases = append(phases, model.Phase{
			Name:     strings.TrimSpace(entry.Name),
			Duration: entry.Duration,
			Unit:     unit,
			Color:    strings.TrimSpace(entry.Color),
		})
	}
	return phases, nil
}

// ParseTick parses a tick interval such as "10ms".
func ParseTick(value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid tick %q: %w", value, err)
	}
	return d, nil
}

// Validate checks a resolved runtime config before anything starts.
func Validate(cfg model.Config) error {
	if len(cfg.Phases) == 0 {
		return fmt.Errorf("at least one phase is required")
	}
	for i, phase := range cfg.Phases {
		if phase.Name == "" {
			return fmt.Errorf("phase %d: name must not be empty", i+1)
		}
		if phase.Duration <= 0 {
			return fmt.Errorf("phase %q: duration must be > 0", phase.Name)
		}
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("--tick must be > 0")
	}
	if cfg.TickInterval > time.Second {
		return fmt.Errorf("--tick must be <= 1s")
	}
	return nil
}
