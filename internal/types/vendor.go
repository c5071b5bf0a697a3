// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

// VendorMetadata is analyst-supplied context about the vendor, optionally
// extended with what was learned from Jira.
type VendorMetadata struct {
	VendorName   string `json:"vendor_name" yaml:"vendor_name"`
	DataStored   string `json:"data_stored,omitempty" yaml:"data_stored"`
	Integrations string `json:"integrations,omitempty" yaml:"integrations"`
	Services     string `json:"services,omitempty" yaml:"services"`

	JiraRiskLevel        string `json:"jira_risk_level,omitempty" yaml:"-"`
	JiraTicketsFound     int    `json:"jira_tickets_found,omitempty" yaml:"-"`
	SecurityIssuesCount  int    `json:"security_issues_count,omitempty" yaml:"-"`
	PrivacyConcernsCount int    `json:"privacy_concerns_count,omitempty" yaml:"-"`
}

// Empty reports whether none of the free-text context fields are set.
func (m *VendorMetadata) Empty() bool {
	return m == nil || (m.DataStored == "" && m.Integrations == "" && m.Services == "")
}

// TicketRef points at a Jira ticket relevant to one finding.
type TicketRef struct {
	Ticket   string `json:"ticket"`
	Summary  string `json:"summary"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// JiraVendorData is what the ticket history says about a vendor.
type JiraVendorData struct {
	VendorName        string      `json:"vendor_name"`
	RiskSummary       []TicketRef `json:"risk_summary"`
	SecurityIssues    []TicketRef `json:"security_issues"`
	PrivacyConcerns   []TicketRef `json:"privacy_concerns"`
	ComplianceStatus  []TicketRef `json:"compliance_status"`
	ServicesMentioned []string    `json:"services_mentioned"`
	OverallRiskLevel  string      `json:"overall_risk_level"`
}

// VendorOverview is a short profile of the vendor for the report.
type VendorOverview struct {
	VendorName    string   `json:"vendor_name"`
	Services      []string `json:"services"`
	Integrations  []string `json:"integrations"`
	DataProcessed []string `json:"data_processed"`
	Description   string   `json:"description"`
}
