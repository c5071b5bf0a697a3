// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package risk

import (
	"strings"
	"unicode"
)

// Category is a fixed group of related controls. A question belongs to a
// category when its text contains one of the category's keywords.
type Category struct {
	ID       string
	Keywords []string
}

// Categories lists the risk categories in evaluation order.
var Categories = []Category{
	{ID: "data_protection", Keywords: []string{"encryption", "data protection", "privacy", "gdpr", "confidentiality"}},
	{ID: "access_control", Keywords: []string{"authentication", "authorization", "access control", "mfa", "password"}},
	{ID: "monitoring", Keywords: []string{"logging", "monitoring", "audit", "siem", "detection"}},
	{ID: "incident_response", Keywords: []string{"incident", "response", "breach", "disaster recovery", "backup"}},
	{ID: "compliance", Keywords: []string{"compliance", "certification", "soc 2", "iso 27001", "audit"}},
	{ID: "vulnerability_management", Keywords: []string{"vulnerability", "patch", "scanning", "penetration test"}},
	{ID: "vendor_management", Keywords: []string{"vendor", "third party", "supplier", "subprocessor"}},
}

// Matches reports whether question text falls into the category.
func (c Category) Matches(question string) bool {
	lower := strings.ToLower(question)
	for _, kw := range c.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Words returns the id with underscores replaced by spaces.
func (c Category) Words() string {
	return strings.ReplaceAll(c.ID, "_", " ")
}

// DisplayName returns the title-cased name, e.g. "Data Protection".
func (c Category) DisplayName() string {
	words := strings.Fields(c.Words())
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
