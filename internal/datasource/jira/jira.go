// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package jira reads what past Jira tickets say about a vendor and files
// assessment results back as tickets.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	maxResults      = 50
	searchFields    = "summary,description,status,priority,labels"
	maxResponseSize = 20 * 1024 * 1024 // 20 MB
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Config holds the Jira connection settings.
type Config struct {
	URL      string
	Email    string
	APIToken string
}

// Configured reports whether every setting is present.
func (c Config) Configured() bool {
	return c.URL != "" && c.Email != "" && c.APIToken != ""
}

// Source talks to the Jira Cloud REST API.
type Source struct {
	cfg    Config
	logger *slog.Logger
}

// NewSource creates a Source. A nil logger discards log output.
func NewSource(cfg Config, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	if !cfg.Configured() {
		logger.Warn("jira credentials not fully configured, ticket history is unavailable")
	}
	return &Source{cfg: cfg, logger: logger}
}

// BuildJQL returns the query selecting vendor-related tickets, optionally
// limited to one project.
func BuildJQL(vendor, project string) string {
	parts := []string{fmt.Sprintf(`text ~ "%s"`, strings.ReplaceAll(vendor, `"`, `\"`))}
	if project != "" {
		parts = append(parts, "project = "+project)
	}
	parts = append(parts, "("+strings.Join([]string{
		"labels in (vendor, security, privacy, risk-assessment)",
		"component in (vendor-management, security-review)",
		`type in (Vendor, "Security Review", "Privacy Review")`,
	}, " OR ")+")")
	return strings.Join(parts, " AND ")
}

type searchResponse struct {
	Issues []types.TicketRecord `json:"issues"`
}

// SearchVendorTickets returns the tickets mentioning the vendor. Missing
// configuration and request failures are logged and yield no tickets.
func (s *Source) SearchVendorTickets(ctx context.Context, vendor, project string) []types.TicketRecord {
	if s.cfg.URL == "" {
		return []types.TicketRecord{}
	}
	tickets, err := s.search(ctx, BuildJQL(vendor, project))
	if err != nil {
		s.logger.Warn("searching jira failed", "vendor", vendor, "error", err)
		return []types.TicketRecord{}
	}
	s.logger.Info("found jira tickets", "vendor", vendor, "tickets", len(tickets))
	return tickets
}

func (s *Source) search(ctx context.Context, jql string) ([]types.TicketRecord, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("fields", searchFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL+"/rest/api/3/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var body searchResponse
	if err := s.do(req, &body); err != nil {
		return nil, err
	}
	if body.Issues == nil {
		body.Issues = []types.TicketRecord{}
	}
	return body.Issues, nil
}

// CreateAssessmentTicket files the assessment as a Task in project and
// returns the new issue key.
func (s *Source) CreateAssessmentTicket(ctx context.Context, project, vendor string, a *types.RiskAssessment, overview *types.VendorOverview) (string, error) {
	if s.cfg.URL == "" || project == "" {
		return "", errors.New("cannot create jira ticket: missing jira url or project")
	}

	payload := map[string]any{
		"fields": map[string]any{
			"project": map[string]string{"key": project},
			"summary": "Vendor Security Assessment: " + vendor,
			"description": map[string]any{
				"type":    "doc",
				"version": 1,
				"content": []any{map[string]any{
					"type":    "paragraph",
					"content": []any{map[string]string{"type": "text", "text": ticketDescription(vendor, a, overview)}},
				}},
			},
			"issuetype": map[string]string{"name": "Task"},
			"labels":    []string{"vendor-assessment", "security", "automated"},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling ticket: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL+"/rest/api/3/issue", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("building create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var created struct {
		Key string `json:"key"`
	}
	if err := s.do(req, &created); err != nil {
		return "", fmt.Errorf("creating jira ticket: %w", err)
	}
	s.logger.Info("created jira ticket", "key", created.Key)
	return created.Key, nil
}

func ticketDescription(vendor string, a *types.RiskAssessment, overview *types.VendorOverview) string {
	description := "N/A"
	var data []string
	if overview != nil {
		if overview.Description != "" {
			description = overview.Description
		}
		data = overview.DataProcessed
	}
	if len(data) > 5 {
		data = data[:5]
	}

	lines := []string{
		"h2. Vendor Assessment: " + vendor,
		"*Date:* " + a.GeneratedAt.Format(time.DateOnly),
		"",
		"h3. Overview",
		"*Description:* " + description,
		"",
		"h3. Risk Assessment",
		"*Overall Risk:* " + string(a.OverallRisk),
		fmt.Sprintf("*Risk Score:* %.1f/100", a.RiskScore),
		fmt.Sprintf("*Critical Risks:* %d", a.Summary.CriticalRisks),
		"",
		"h3. Data Processed",
	}
	for _, d := range data {
		lines = append(lines, "* "+d)
	}
	return strings.Join(lines, "\n")
}

func (s *Source) do(req *http.Request, out any) error {
	req.SetBasicAuth(s.cfg.Email, s.cfg.APIToken)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, req.URL.Path)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
