// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

// SearchHit is a raw result from a web search provider.
type SearchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// WebControl is a search hit that describes a vendor security control.
type WebControl struct {
	Title      string     `json:"title"`
	Snippet    string     `json:"snippet"`
	URL        string     `json:"url"`
	Keywords   []string   `json:"keywords"`
	Confidence Confidence `json:"confidence"`
	VendorName string     `json:"vendor_name,omitempty"`
}

// WebIncident is a search hit reporting a past vendor security incident.
type WebIncident struct {
	Title      string   `json:"title"`
	Snippet    string   `json:"snippet"`
	URL        string   `json:"url"`
	Keywords   []string `json:"keywords"`
	Year       string   `json:"year"`
	VendorName string   `json:"vendor_name,omitempty"`
}

// WebSearchResult groups the classified search hits for one vendor.
type WebSearchResult struct {
	Controls  []WebControl  `json:"controls"`
	Incidents []WebIncident `json:"incidents"`
}
