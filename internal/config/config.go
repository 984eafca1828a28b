// Package config loads prepdeck settings from a YAML file, a .env file and
// PREPDECK_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/prepdeck/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	LLM     llm.Config    `yaml:"llm"`
}

type APIConfig struct {
	BaseURL          string        `yaml:"base_url"`
	Timeout          time.Duration `yaml:"timeout"`
	DefaultProblemID string        `yaml:"default_problem_id"`
}

type StoreConfig struct {
	// Path of the SQLite file. Empty resolves to the XDG data directory.
	Path string `yaml:"path"`
}

type LogConfig struct {
	// File receives TUI logs. Empty resolves to the XDG state directory.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	// Addr enables the Prometheus endpoint when set, e.g. "127.0.0.1:9464".
	Addr string `yaml:"addr"`
}

// DefaultConfig returns defaults for all configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		LLM: llm.DefaultConfig(),
	}
}

// Load builds the configuration. path may be empty, in which case
// PREPDECK_CONFIG and then the XDG config file are tried. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	// Existing environment wins over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv("PREPDECK_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/prepdeck/config.yaml, or "" when no
// home directory can be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "prepdeck", "config.yaml")
}

// ApplyEnv overrides c from PREPDECK_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"PREPDECK_API_BASE_URL", &c.API.BaseURL},
		{"PREPDECK_DEFAULT_PROBLEM_ID", &c.API.DefaultProblemID},
		{"PREPDECK_DB", &c.Store.Path},
		{"PREPDECK_LOG_FILE", &c.Log.File},
		{"PREPDECK_LOG_LEVEL", &c.Log.Level},
		{"PREPDECK_METRICS_ADDR", &c.Metrics.Addr},
	}
	for _, s := range strs {
		if v, ok := lookup(s.name); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup("PREPDECK_API_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PREPDECK_API_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}

	c.LLM.ApplyEnv(lookup)
	// An explicit "none" keeps generation off.
	if c.LLM.Provider == "" {
		c.LLM.Discover(lookup)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("llm: %w", err))
	}
	return errors.Join(errs...)
}
