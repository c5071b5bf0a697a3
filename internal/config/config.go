// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package config loads settings from a YAML file, a .env file and the
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting that can come from a file or the environment.
type Config struct {
	DuckDuckGo DuckDuckGoConfig `yaml:"duckduckgo"`
	Google     GoogleConfig     `yaml:"google"`
	Bing       BingConfig       `yaml:"bing"`
	Jira       JiraConfig       `yaml:"jira"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Redis      RedisConfig      `yaml:"redis"`
	Cache      CacheConfig      `yaml:"cache"`
	Log        LogConfig        `yaml:"log"`

	Threshold float64 `yaml:"threshold"`
	Workers   int     `yaml:"workers"`
}

// DuckDuckGoConfig controls the keyless search provider, which is on
// unless disabled.
type DuckDuckGoConfig struct {
	Disabled bool   `yaml:"disabled"`
	Endpoint string `yaml:"endpoint"`
}

type GoogleConfig struct {
	APIKey         string `yaml:"api_key"`
	SearchEngineID string `yaml:"search_engine_id"`
	Endpoint       string `yaml:"endpoint"`
}

type BingConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

type JiraConfig struct {
	URL      string `yaml:"url"`
	Email    string `yaml:"email"`
	APIToken string `yaml:"api_token"`
	Project  string `yaml:"project"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Gemini:    GeminiConfig{Model: "text-embedding-004"},
		Log:       LogConfig{Level: "info", Format: "text"},
		Threshold: 0.3,
	}
}

// DefaultPath is ~/.vendor-assess/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vendor-assess", "config.yaml")
}

// Load builds the configuration from defaults, the YAML file at path and
// the environment, later sources winning. An empty path uses DefaultPath
// when that file exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads the first .env file found among paths into the process
// environment without overriding variables that are already set. It
// returns the path loaded, or "" when none was found.
func LoadDotEnv(paths ...string) string {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return p
		}
	}
	return ""
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("GOOGLE_API_KEY", &c.Google.APIKey)
	str("GOOGLE_SEARCH_ENGINE_ID", &c.Google.SearchEngineID)
	str("BING_API_KEY", &c.Bing.APIKey)
	str("ATLASSIAN_URL", &c.Jira.URL)
	str("ATLASSIAN_EMAIL", &c.Jira.Email)
	str("ATLASSIAN_API_TOKEN", &c.Jira.APIToken)
	str("GEMINI_API_KEY", &c.Gemini.APIKey)
	str("VENDOR_ASSESS_REDIS_ADDR", &c.Redis.Addr)
	str("VENDOR_ASSESS_REDIS_PASSWORD", &c.Redis.Password)
	str("VENDOR_ASSESS_LOG_LEVEL", &c.Log.Level)
	str("VENDOR_ASSESS_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("VENDOR_ASSESS_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("VENDOR_ASSESS_REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	return nil
}

// Validate checks values that have a fixed domain.
func (c *Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be greater than 0 and at most 1, got %g", c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
