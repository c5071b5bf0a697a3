// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonial-oss/vendor-assess/internal/config"
)

const questionnaireYAML = `questions:
  - id: Q1
    question: Do you encrypt customer data at rest?
    category: Data Protection
  - id: Q2
    question: Is there a documented vendor offboarding process?
    category: Vendor Management
`

const documentJSON = `{
  "type": "pdf",
  "filename": "security.pdf",
  "pages": [{"page_num": 1, "text": "We encrypt all customer data at rest using AES-256 encryption. Multi-factor authentication is enforced for all administrator accounts."}]
}`

// isolate keeps host configuration out of a test run.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"GOOGLE_API_KEY", "GOOGLE_SEARCH_ENGINE_ID", "BING_API_KEY",
		"ATLASSIAN_URL", "ATLASSIAN_EMAIL", "ATLASSIAN_API_TOKEN", "GEMINI_API_KEY",
		"VENDOR_ASSESS_REDIS_ADDR", "VENDOR_ASSESS_LOG_LEVEL", "VENDOR_ASSESS_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	return exitErr.Code
}

func TestRun_JSON(t *testing.T) {
	dir := isolate(t)
	q := writeFile(t, dir, "questions.yaml", questionnaireYAML)
	doc := writeFile(t, dir, "security.json", documentJSON)
	md := writeFile(t, dir, "vendor.yaml", "vendor_name: Acme\ndata_stored: Customer PII\n")

	out, err := execute(t,
		"--questionnaire", q, "--doc", doc, "--metadata", md,
		"--no-web-search", "--no-jira", "--no-embeddings", "--log-level", "error")
	require.NoError(t, err)

	var decoded struct {
		Assessment struct {
			VendorName  string `json:"vendor_name"`
			OverallRisk string `json:"overall_risk"`
		} `json:"assessment"`
		Questionnaire []struct {
			QuestionID string `json:"question_id"`
			Confidence string `json:"confidence"`
		} `json:"questionnaire"`
		EvidenceCount int `json:"evidence_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Acme", decoded.Assessment.VendorName, "vendor name falls back to metadata")
	assert.NotEmpty(t, decoded.Assessment.OverallRisk)
	require.Len(t, decoded.Questionnaire, 2)
	assert.Equal(t, "Q1", decoded.Questionnaire[0].QuestionID)
	assert.NotEqual(t, "NOT_FOUND", decoded.Questionnaire[0].Confidence)
	assert.Equal(t, "NOT_FOUND", decoded.Questionnaire[1].Confidence)
	assert.Equal(t, 2, decoded.EvidenceCount)
}

func TestRun_MarkdownToFile(t *testing.T) {
	dir := isolate(t)
	q := writeFile(t, dir, "questions.yaml", questionnaireYAML)
	report := filepath.Join(dir, "report.md")

	out, err := execute(t, "--vendor", "Acme", "--questionnaire", q,
		"--no-web-search", "--no-jira", "--no-embeddings", "--format", "markdown", "-o", report)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Vendor Risk Assessment Report"))
}

func TestRun_FailOnRisk(t *testing.T) {
	dir := isolate(t)
	q := writeFile(t, dir, "questions.yaml", questionnaireYAML)

	out, err := execute(t, "--vendor", "Acme", "--questionnaire", q,
		"--no-web-search", "--no-jira", "--no-embeddings", "--fail-on-risk", "high", "--format", "table")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "CRITICAL RISK")
	assert.Contains(t, out, "Acme: CRITICAL RISK", "the report is written before failing")
}

func TestRun_UsageErrors(t *testing.T) {
	dir := isolate(t)
	q := writeFile(t, dir, "questions.yaml", questionnaireYAML)
	offline := []string{"--no-web-search", "--no-jira", "--no-embeddings"}

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"excel to stdout", []string{"--vendor", "Acme", "--questionnaire", q, "--format", "excel"}, 3},
		{"unknown format", []string{"--vendor", "Acme", "--questionnaire", q, "--format", "pdf"}, 2},
		{"unknown sort key", []string{"--vendor", "Acme", "--questionnaire", q, "--sort-by", "risk"}, 2},
		{"missing questionnaire", []string{"--vendor", "Acme"}, 2},
		{"unreadable questionnaire", []string{"--vendor", "Acme", "--questionnaire", filepath.Join(dir, "nope.xlsx")}, 2},
		{"missing vendor", []string{"--questionnaire", q}, 2},
		{"bad risk level", []string{"--vendor", "Acme", "--questionnaire", q, "--fail-on-risk", "severe"}, 2},
		{"threshold out of range", []string{"--vendor", "Acme", "--questionnaire", q, "--threshold", "2"}, 2},
		{"zero threshold", []string{"--vendor", "Acme", "--questionnaire", q, "--threshold", "0"}, 2},
		{"missing config", []string{"--vendor", "Acme", "--questionnaire", q, "--config", filepath.Join(dir, "nope.yaml")}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append(tt.args, offline...)...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(t, err))
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Jira.Project = "FILE"
	cfg.Log.Level = "warn"
	opts := &Options{Threshold: 0.5, JiraProject: "", LogLevel: "debug", Workers: 4}

	changed := func(name string) bool { return name == "threshold" || name == "log-level" }
	applyFlags(cfg, opts, changed)

	assert.Equal(t, 0.5, cfg.Threshold)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "FILE", cfg.Jira.Project, "unset flags keep file values")
	assert.Zero(t, cfg.Workers)
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, "json", "warn")
	logger.Info("hidden")
	logger.Warn("shown", "vendor", "Acme")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "Acme", entry["vendor"])

	buf.Reset()
	setupLogger(&buf, "text", "debug").Debug("details")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestCollaborators_Disabled(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Gemini.APIKey = "key"
	opts := &Options{NoWebSearch: true, NoJira: true, NoEmbeddings: true}

	deps, err := setupCollaborators(context.Background(), cfg, opts, setupLogger(&bytes.Buffer{}, "text", "error"))
	require.NoError(t, err)
	defer deps.Close()
	assert.Nil(t, deps.web)
	assert.Nil(t, deps.jira)
	assert.Nil(t, deps.embedder)
	assert.Len(t, deps.options(cfg, nil), 1, "only the logger option")
}

func TestCollaborators_NoProviders(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.DuckDuckGo.Disabled = true
	cfg.Jira.URL = "https://acme.atlassian.net"

	var logs bytes.Buffer
	deps, err := setupCollaborators(context.Background(), cfg, &Options{NoEmbeddings: true}, setupLogger(&logs, "text", "info"))
	require.NoError(t, err)
	defer deps.Close()
	assert.Nil(t, deps.web)
	assert.NotNil(t, deps.jira)
	assert.Contains(t, logs.String(), "no web search provider configured")
}

func TestCollaborators_FileCache(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Bing.APIKey = "bing-key"
	cfg.Cache.Dir = t.TempDir()

	deps, err := setupCollaborators(context.Background(), cfg, &Options{NoJira: true, NoEmbeddings: true}, setupLogger(&bytes.Buffer{}, "text", "error"))
	require.NoError(t, err)
	defer deps.Close()
	assert.NotNil(t, deps.web)
	assert.Empty(t, deps.closers, "the file cache holds no connection")
}

func TestCollaborators_DuckDuckGoWithoutKeys(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	deps, err := setupCollaborators(context.Background(), cfg, &Options{NoJira: true, NoEmbeddings: true}, setupLogger(&bytes.Buffer{}, "text", "error"))
	require.NoError(t, err)
	defer deps.Close()
	require.NotNil(t, deps.web, "keyless search is on by default")
	assert.Equal(t, []string{"duckduckgo"}, deps.web.Providers())
}

func TestCollaborators_ProviderOrder(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()
	cfg.Google.APIKey = "google-key"
	cfg.Google.SearchEngineID = "engine"
	cfg.Bing.APIKey = "bing-key"

	deps, err := setupCollaborators(context.Background(), cfg, &Options{NoJira: true, NoEmbeddings: true}, setupLogger(&bytes.Buffer{}, "text", "error"))
	require.NoError(t, err)
	defer deps.Close()
	require.NotNil(t, deps.web)
	assert.Equal(t, []string{"duckduckgo", "google", "bing"}, deps.web.Providers())
}

func TestFlagHelp(t *testing.T) {
	flags := NewRootCommand().Flags()
	assert.Contains(t, flags.Lookup("doc").Usage, "PDF tables are read as page text")
	assert.Contains(t, flags.Lookup("threshold").Usage, "(0, 1]")
}
