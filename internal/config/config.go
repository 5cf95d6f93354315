package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	HistoryDedup  = "dedup"
	HistoryCompat = "compat"

	StrategyPositional = "positional"
)

// DebugEnv turns on debug logging when set to a true-ish value.
const DebugEnv = "WIT_DEBUG"

// Config is the per-repository settings file (.wit/config.yaml).
type Config struct {
	DefaultBranch string        `yaml:"default_branch"`
	History       HistoryConfig `yaml:"history"`
	Merge         MergeConfig   `yaml:"merge"`
	Log           LogConfig     `yaml:"log"`
}

type HistoryConfig struct {
	Mode string `yaml:"mode"`
}

type MergeConfig struct {
	Strategy string `yaml:"strategy"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		DefaultBranch: DefaultBranch,
		History:       HistoryConfig{Mode: HistoryDedup},
		Merge:         MergeConfig{Strategy: StrategyPositional},
		Log:           LogConfig{File: DefaultLogFile},
	}
}

// Load reads path and fills unset keys with defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.DefaultBranch == "" {
		c.DefaultBranch = def.DefaultBranch
	}
	if c.History.Mode == "" {
		c.History.Mode = def.History.Mode
	}
	if c.Merge.Strategy == "" {
		c.Merge.Strategy = def.Merge.Strategy
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
}

func (c Config) Validate() error {
	switch c.History.Mode {
	case HistoryDedup, HistoryCompat:
	default:
		return fmt.Errorf("unknown history.mode %q", c.History.Mode)
	}
	if c.Merge.Strategy != StrategyPositional {
		return fmt.Errorf("unknown merge.strategy %q", c.Merge.Strategy)
	}
	return nil
}

// DebugEnabled reports whether debug logging was requested by the environment.
func DebugEnabled() bool {
	switch strings.ToLower(os.Getenv(DebugEnv)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
