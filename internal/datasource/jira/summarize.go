// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package jira

import (
	"slices"
	"strings"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

var (
	securityTerms   = []string{"vulnerability", "breach", "security", "exploit", "cve"}
	privacyTerms    = []string{"privacy", "pii", "phi", "gdpr", "ccpa", "personal data"}
	complianceTerms = []string{"soc 2", "iso 27001", "hipaa", "pci", "compliance"}
	serviceLabels   = []string{"saas", "cloud", "api", "platform"}
)

// Summarize sorts vendor tickets into findings and derives a risk level
// from their priorities.
func Summarize(vendor string, tickets []types.TicketRecord) types.JiraVendorData {
	data := types.JiraVendorData{
		VendorName:        vendor,
		RiskSummary:       []types.TicketRef{},
		SecurityIssues:    []types.TicketRef{},
		PrivacyConcerns:   []types.TicketRef{},
		ComplianceStatus:  []types.TicketRef{},
		ServicesMentioned: []string{},
		OverallRiskLevel:  "UNKNOWN",
	}

	for _, t := range tickets {
		f := t.Fields
		text := strings.ToLower(f.Summary + " " + f.DescriptionText())
		ref := types.TicketRef{Ticket: t.Key, Summary: f.Summary, Status: f.Status.Name, Priority: f.Priority.Name}

		if strings.Contains(text, "risk") {
			data.RiskSummary = append(data.RiskSummary, ref)
		}
		if containsAny(text, securityTerms) {
			data.SecurityIssues = append(data.SecurityIssues, ref)
		}
		if containsAny(text, privacyTerms) {
			data.PrivacyConcerns = append(data.PrivacyConcerns, ref)
		}
		if containsAny(text, complianceTerms) {
			data.ComplianceStatus = append(data.ComplianceStatus, ref)
		}

		for _, label := range f.Labels {
			if containsAny(strings.ToLower(label), serviceLabels) && !slices.Contains(data.ServicesMentioned, label) {
				data.ServicesMentioned = append(data.ServicesMentioned, label)
			}
		}

		switch strings.ToUpper(f.Priority.Name) {
		case "HIGHEST", "HIGH", "CRITICAL":
			data.OverallRiskLevel = "HIGH"
		case "MEDIUM":
			if data.OverallRiskLevel == "UNKNOWN" {
				data.OverallRiskLevel = "MEDIUM"
			}
		}
	}
	return data
}

// MergeMetadata returns metadata extended with the Jira findings. Services
// named by ticket labels are appended to the services text.
func MergeMetadata(metadata types.VendorMetadata, data types.JiraVendorData) types.VendorMetadata {
	if len(data.ServicesMentioned) > 0 {
		merged := metadata.Services + ", " + strings.Join(data.ServicesMentioned, ", ")
		metadata.Services = strings.Trim(merged, ", ")
	}
	metadata.JiraRiskLevel = data.OverallRiskLevel
	if metadata.JiraRiskLevel == "" {
		metadata.JiraRiskLevel = "UNKNOWN"
	}
	metadata.JiraTicketsFound = len(data.RiskSummary)
	metadata.SecurityIssuesCount = len(data.SecurityIssues)
	metadata.PrivacyConcernsCount = len(data.PrivacyConcerns)
	return metadata
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
