// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"encoding/json"
	"strings"
)

// TicketRecord is a Jira issue as returned by the search API.
type TicketRecord struct {
	Key    string       `json:"key"`
	Fields TicketFields `json:"fields"`
}

// TicketFields holds the issue fields the assessment reads.
type TicketFields struct {
	Summary string `json:"summary"`
	// Description is a plain string in API v2 and an Atlassian Document
	// Format tree in v3; both are accepted.
	Description json.RawMessage `json:"description,omitempty"`
	Status      NamedField      `json:"status"`
	Priority    NamedField      `json:"priority"`
	Labels      []string        `json:"labels"`
}

// NamedField is a Jira object identified by its display name.
type NamedField struct {
	Name string `json:"name"`
}

// UnmarshalJSON tolerates null for status/priority.
func (n *NamedField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	type plain NamedField
	return json.Unmarshal(data, (*plain)(n))
}

// DescriptionText returns the description as plain text, flattening ADF
// documents by concatenating their text nodes.
func (f *TicketFields) DescriptionText() string {
	if len(f.Description) == 0 || string(f.Description) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(f.Description, &s); err == nil {
		return s
	}
	var node adfNode
	if err := json.Unmarshal(f.Description, &node); err != nil {
		return ""
	}
	var parts []string
	node.collect(&parts)
	return strings.Join(parts, " ")
}

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

func (n *adfNode) collect(parts *[]string) {
	if n.Text != "" {
		*parts = append(*parts, n.Text)
	}
	for i := range n.Content {
		n.Content[i].collect(parts)
	}
}
