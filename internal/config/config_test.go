// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.3, cfg.Threshold)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "text-embedding-004", cfg.Gemini.Model)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("VENDOR_ASSESS_LOG_LEVEL", "")
	t.Setenv("VENDOR_ASSESS_LOG_FORMAT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
duckduckgo:
  disabled: true
google:
  api_key: file-google
  search_engine_id: engine
jira:
  url: https://acme.atlassian.net
  project: SEC
redis:
  addr: localhost:6379
  db: 2
threshold: 0.45
log:
  format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.DuckDuckGo.Disabled)
	assert.Equal(t, "file-google", cfg.Google.APIKey)
	assert.Equal(t, "engine", cfg.Google.SearchEngineID)
	assert.Equal(t, "SEC", cfg.Jira.Project)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 0.45, cfg.Threshold)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("google:\n  api_key: file-google\n"), 0o600))
	t.Setenv("GOOGLE_API_KEY", "env-google")
	t.Setenv("VENDOR_ASSESS_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-google", cfg.Google.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err, "a missing default config is not an error")
	assert.Equal(t, 0.3, cfg.Threshold)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "an explicit config must exist")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: [1"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(env(map[string]string{
		"BING_API_KEY":             "bing",
		"ATLASSIAN_URL":            "https://acme.atlassian.net",
		"ATLASSIAN_EMAIL":          "analyst@acme.com",
		"ATLASSIAN_API_TOKEN":      "token",
		"GEMINI_API_KEY":           "gemini",
		"VENDOR_ASSESS_REDIS_ADDR": "redis:6379",
		"VENDOR_ASSESS_REDIS_DB":   "3",
		"VENDOR_ASSESS_LOG_FORMAT": "",
	}))
	require.NoError(t, err)
	assert.Equal(t, "bing", cfg.Bing.APIKey)
	assert.Equal(t, JiraConfig{URL: "https://acme.atlassian.net", Email: "analyst@acme.com", APIToken: "token"}, cfg.Jira)
	assert.Equal(t, "gemini", cfg.Gemini.APIKey)
	assert.Equal(t, RedisConfig{Addr: "redis:6379", DB: 3}, cfg.Redis)
	assert.Equal(t, "text", cfg.Log.Format, "empty values do not override")

	err = Default().ApplyEnv(env(map[string]string{"VENDOR_ASSESS_REDIS_DB": "zero"}))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"threshold above 1", func(c *Config) { c.Threshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.Threshold = -0.1 }},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("VENDOR_ASSESS_TEST_DOTENV=from-file\nVENDOR_ASSESS_TEST_KEEP=from-file\n"), 0o600))
	t.Setenv("VENDOR_ASSESS_TEST_KEEP", "from-env")
	t.Cleanup(func() { os.Unsetenv("VENDOR_ASSESS_TEST_DOTENV") })

	assert.Equal(t, path, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("VENDOR_ASSESS_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("VENDOR_ASSESS_TEST_KEEP"))

	assert.Empty(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
