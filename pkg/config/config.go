// Package config loads sparkle settings from YAML, TOML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file LoadOptional looks for.
const FileName = "sparkle.yaml"

// Defaults applied by Resolve.
const (
	DefaultTimeout  = "30s"
	DefaultLogLevel = "info"
)

// Config holds the settings of an embedding application.
// Zero values mean "unspecified" and are replaced by Resolve.
type Config struct {
	Fetch Fetch `json:"fetch" yaml:"fetch" toml:"fetch"`
	Log   Log   `json:"log" yaml:"log" toml:"log"`
}

// Fetch configures how templates are loaded.
type Fetch struct {
	// BaseURL resolves relative locators over HTTP.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	// Root serves file: locators from a directory.
	Root string `json:"root" yaml:"root" toml:"root"`
	// Timeout is a Go duration string such as "10s".
	Timeout string `json:"timeout" yaml:"timeout" toml:"timeout"`
	Cache   bool   `json:"cache" yaml:"cache" toml:"cache"`
	Metrics bool   `json:"metrics" yaml:"metrics" toml:"metrics"`
}

// TimeoutDuration parses Timeout. An empty value means no timeout.
func (f Fetch) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(f.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid fetch timeout %q: %w", f.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid fetch timeout %q: negative", f.Timeout)
	}
	return d, nil
}

// Log configures the zap logger built by NewLogger.
type Log struct {
	Level       string `json:"level" yaml:"level" toml:"level"`
	Development bool   `json:"development" yaml:"development" toml:"development"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := decode(b, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func decode(b []byte, ext string) (*Config, error) {
	var cfg Config
	switch ext = strings.ToLower(ext); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return &cfg, nil
}

// LoadOptional reads sparkle.yaml from dir if present. A missing file yields
// an empty configuration.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Resolve fills unspecified values with defaults and validates the result.
func Resolve(cfg *Config) (*Config, error) {
	resolved := Config{}
	if cfg != nil {
		resolved = *cfg
	}

	resolved.Fetch.BaseURL = strings.TrimSpace(resolved.Fetch.BaseURL)
	resolved.Fetch.Root = strings.TrimSpace(resolved.Fetch.Root)
	if strings.TrimSpace(resolved.Fetch.Timeout) == "" {
		resolved.Fetch.Timeout = DefaultTimeout
	}
	if _, err := resolved.Fetch.TimeoutDuration(); err != nil {
		return nil, err
	}

	level := strings.ToLower(strings.TrimSpace(resolved.Log.Level))
	if level == "" {
		level = DefaultLogLevel
	}
	if _, err := zapcore.ParseLevel(level); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", resolved.Log.Level, err)
	}
	resolved.Log.Level = level

	return &resolved, nil
}

// NewLogger builds a zap logger from the log section.
func NewLogger(l Log) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if strings.TrimSpace(l.Level) != "" {
		parsed, err := zapcore.ParseLevel(l.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", l.Level, err)
		}
		level = parsed
	}

	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
