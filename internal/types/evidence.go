// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"strings"
)

// Confidence ranks how well evidence supports a claim.
type Confidence string

const (
	ConfidenceHigh     Confidence = "HIGH"
	ConfidenceMedium   Confidence = "MEDIUM"
	ConfidenceLow      Confidence = "LOW"
	ConfidenceNotFound Confidence = "NOT_FOUND"
)

// Confidences lists every tier from strongest to weakest.
var Confidences = []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceNotFound}

// ParseConfidence accepts any casing of the four tiers.
func ParseConfidence(s string) (Confidence, error) {
	c := Confidence(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid confidence %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the four tiers.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceNotFound:
		return true
	}
	return false
}

// Rank orders tiers: HIGH=3, MEDIUM=2, LOW=1, NOT_FOUND (and anything else)=0.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// EvidenceType records how an evidence item was obtained.
type EvidenceType string

const (
	EvidenceControlStatement  EvidenceType = "control_statement"
	EvidenceTableEntry        EvidenceType = "table_entry"
	EvidenceCertification     EvidenceType = "certification"
	EvidenceWebSearchControl  EvidenceType = "web_search_control"
	EvidenceWebSearchIncident EvidenceType = "web_search_incident"
)

func (t EvidenceType) valid() bool {
	switch t {
	case EvidenceControlStatement, EvidenceTableEntry, EvidenceCertification,
		EvidenceWebSearchControl, EvidenceWebSearchIncident:
		return true
	}
	return false
}

// IsWeb reports whether the evidence came from a public web search.
func (t EvidenceType) IsWeb() bool {
	return t == EvidenceWebSearchControl || t == EvidenceWebSearchIncident
}

// EvidenceItem is a text fragment asserting the presence of a security
// control, together with where it came from. Items are never modified once
// extracted; mapping results hold copies.
type EvidenceItem struct {
	Text          string            `json:"text"`
	Keywords      []string          `json:"keywords"`
	Source        string            `json:"source"`
	Confidence    Confidence        `json:"confidence"`
	Type          EvidenceType      `json:"type"`
	RowData       map[string]string `json:"row_data,omitempty"`
	Certification string            `json:"certification,omitempty"`
}

// NewEvidenceItem validates the required fields of an evidence item.
// NOT_FOUND is a mapping outcome, not an evidence rating, and is rejected.
func NewEvidenceItem(text, source string, conf Confidence, typ EvidenceType, keywords []string) (EvidenceItem, error) {
	if strings.TrimSpace(text) == "" {
		return EvidenceItem{}, fmt.Errorf("evidence text is empty")
	}
	if !conf.Valid() || conf == ConfidenceNotFound {
		return EvidenceItem{}, fmt.Errorf("invalid evidence confidence %q", conf)
	}
	if !typ.valid() {
		return EvidenceItem{}, fmt.Errorf("invalid evidence type %q", typ)
	}
	if keywords == nil {
		keywords = []string{}
	}
	return EvidenceItem{
		Text:       text,
		Keywords:   keywords,
		Source:     source,
		Confidence: conf,
		Type:       typ,
	}, nil
}
