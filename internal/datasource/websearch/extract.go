// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package websearch

import (
	"regexp"
	"slices"
	"strings"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

// ControlKeywords mark a search hit as describing a security control.
var ControlKeywords = []string{
	"encryption", "authentication", "mfa", "soc 2", "iso 27001",
	"penetration test", "vulnerability scan", "compliance", "certification",
	"audit", "security policy", "access control", "data protection",
	"incident response", "backup", "disaster recovery", "gdpr", "hipaa",
}

// IncidentKeywords mark a search hit as possibly reporting an incident.
var IncidentKeywords = []string{
	"breach", "hack", "attack", "vulnerability", "exploit", "data leak",
	"security incident", "compromised", "ransomware", "malware",
}

var (
	highConfidenceDomains   = []string{"aicpa.org", "iso.org", "trustpage.com", "securityscorecard.com"}
	mediumConfidenceDomains = []string{"wikipedia.org", "docs.", "help.", "support."}

	// Pages that talk about security without reporting an incident.
	excludedIncidentURLs = []string{
		"trust", "security-rating", "vendor-risk", "security-scorecard",
		"compliance", "certification", "trust-center", "security-practices",
		"/careers/", "/jobs/", "/about-us/",
	}

	incidentIndicators = []*regexp.Regexp{
		regexp.MustCompile(`was (breached|hacked|compromised|attacked)`),
		regexp.MustCompile(`suffered (a )?(breach|hack|attack|data leak)`),
		regexp.MustCompile(`exposed.*credentials`),
		regexp.MustCompile(`leaked.*data`),
		regexp.MustCompile(`security incident.*affected`),
		regexp.MustCompile(`confirmed.*breach`),
		regexp.MustCompile(`disclosed.*vulnerability`),
		regexp.MustCompile(`announced.*breach`),
		regexp.MustCompile(`(breach|incident|hack).*\b20\d{2}\b`),
	}

	yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

	ignoredNameTerms = []string{"inc", "corp", "ltd", "llc", "the"}
)

// vendorTerms returns the distinctive words of a vendor name, e.g.
// "Acme Corp" -> ["acme"].
func vendorTerms(vendor string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(vendor)) {
		if len(w) > 3 && !slices.Contains(ignoredNameTerms, w) {
			terms = append(terms, w)
		}
	}
	return terms
}

func mentionsVendor(text, vendorLower string, terms []string) bool {
	if strings.Contains(text, vendorLower) {
		return true
	}
	return containsAny(text, terms)
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func matched(text string, vocabulary []string) []string {
	out := []string{}
	for _, kw := range vocabulary {
		if strings.Contains(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// ExtractControls keeps hits that mention the vendor and a control keyword.
func ExtractControls(hits []types.SearchHit, vendor string) []types.WebControl {
	vendorLower := strings.ToLower(vendor)
	terms := vendorTerms(vendor)

	var controls []types.WebControl
	for _, h := range hits {
		text := strings.ToLower(h.Title + " " + h.Snippet)
		if !mentionsVendor(text, vendorLower, terms) {
			continue
		}
		keywords := matched(text, ControlKeywords)
		if len(keywords) == 0 {
			continue
		}
		conf := controlConfidence(h.URL, len(keywords))
		if containsAny(strings.ToLower(h.URL), terms) {
			conf = boost(conf)
		}
		controls = append(controls, types.WebControl{
			Title:      h.Title,
			Snippet:    h.Snippet,
			URL:        h.URL,
			Keywords:   keywords,
			Confidence: conf,
			VendorName: vendor,
		})
	}
	return controls
}

// controlConfidence rates a control hit by where it was published and how
// many keywords it carries.
func controlConfidence(url string, keywordCount int) types.Confidence {
	lower := strings.ToLower(url)
	switch {
	case containsAny(lower, highConfidenceDomains), keywordCount >= 3:
		return types.ConfidenceHigh
	case containsAny(lower, mediumConfidenceDomains), keywordCount == 2:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

func boost(c types.Confidence) types.Confidence {
	switch c {
	case types.ConfidenceLow:
		return types.ConfidenceMedium
	case types.ConfidenceMedium:
		return types.ConfidenceHigh
	default:
		return c
	}
}

// ExtractIncidents keeps hits that read like a report of an actual
// incident at the vendor, not a general page about security.
func ExtractIncidents(hits []types.SearchHit, vendor string) []types.WebIncident {
	vendorLower := strings.ToLower(vendor)
	terms := vendorTerms(vendor)

	var incidents []types.WebIncident
	for _, h := range hits {
		text := strings.ToLower(h.Title + " " + h.Snippet)
		url := strings.ToLower(h.URL)
		if !mentionsVendor(text, vendorLower, terms) {
			continue
		}
		if containsAny(url, excludedIncidentURLs) {
			continue
		}
		if strings.Contains(text, "trust hub") || strings.Contains(text, "security rating") {
			continue
		}
		keywords := matched(text, IncidentKeywords)
		if len(keywords) == 0 || !reportsIncident(text) {
			continue
		}
		year := "Unknown"
		if m := yearPattern.FindStringSubmatch(text); m != nil {
			year = m[1]
		}
		incidents = append(incidents, types.WebIncident{
			Title:      h.Title,
			Snippet:    h.Snippet,
			URL:        url,
			Keywords:   keywords,
			Year:       year,
			VendorName: vendor,
		})
	}
	return incidents
}

func reportsIncident(text string) bool {
	for _, re := range incidentIndicators {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
