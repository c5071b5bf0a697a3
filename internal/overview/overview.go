// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package overview profiles a vendor for the report: what it offers, what it
// integrates with, and which data it handles.
package overview

import (
	"strings"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

// Limits on the number of entries kept per list.
const (
	maxServices      = 10
	maxIntegrations  = 15
	maxDataProcessed = 12

	maxWebControls  = 10
	maxDescControls = 15
	maxEvidence     = 50
)

// Input is everything known about the vendor when the overview is built.
type Input struct {
	VendorName string
	Web        types.WebSearchResult
	Evidence   []types.EvidenceItem
	Metadata   *types.VendorMetadata
}

// Extractor builds a vendor overview. Implementations must not modify the
// input.
type Extractor interface {
	Extract(in Input) types.VendorOverview
}

// Heuristic extracts the overview with regular expressions and keyword
// lists. It is the default Extractor.
type Heuristic struct{}

var _ Extractor = Heuristic{}

// Extract collects candidates from analyst metadata first, then web
// controls, then evidence text, and keeps the first occurrences.
func (Heuristic) Extract(in Input) types.VendorOverview {
	var services, integrations, data []string

	if md := in.Metadata; md != nil {
		if len(md.Services) > 10 {
			services = append(services, md.Services)
		}
		integrations = append(integrations, splitList(md.Integrations)...)
		data = append(data, splitList(md.DataStored)...)
	}

	for _, c := range head(in.Web.Controls, maxWebControls) {
		text := c.Title + ". " + c.Snippet
		services = append(services, Services(text)...)
		integrations = append(integrations, Integrations(text)...)
		data = append(data, DataTypes(text)...)
	}

	for _, item := range head(in.Evidence, maxEvidence) {
		services = append(services, Services(item.Text)...)
		integrations = append(integrations, Integrations(item.Text)...)
		data = append(data, DataTypes(item.Text)...)
	}

	ov := types.VendorOverview{
		VendorName:    in.VendorName,
		Services:      dedupe(services, 5, maxServices),
		Integrations:  dedupe(integrations, 0, maxIntegrations),
		DataProcessed: dedupe(data, 0, maxDataProcessed),
	}
	ov.Description = describe(in, ov.Services)
	return ov
}

// describe prefers a substantial analyst description, then the best
// descriptive sentence from the web, then a sentence built from services.
func describe(in Input, services []string) string {
	if in.Metadata != nil {
		if s := strings.TrimSpace(in.Metadata.Services); len(s) > 50 {
			return s
		}
	}
	if s := BestWebDescription(in.VendorName, in.Web.Controls); s != "" {
		return s
	}
	return Synthesize(in.VendorName, services)
}

// dedupe trims entries and drops case-insensitive repeats and entries not
// longer than minLen, keeping at most limit in first-seen order.
func dedupe(items []string, minLen, limit int) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if key == "" || len(key) <= minLen || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

func splitList(text string) []string {
	var out []string
	for _, part := range listSep.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
