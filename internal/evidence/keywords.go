// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package evidence

import "strings"

// SecurityKeywords is the vocabulary a statement must touch to count as
// evidence. Matching is a case-insensitive substring test.
var SecurityKeywords = []string{
	"encryption", "authentication", "authorization", "access control",
	"audit", "logging", "monitoring", "backup", "disaster recovery",
	"incident response", "vulnerability", "patch management", "firewall",
	"antivirus", "malware", "penetration test", "security assessment",
	"compliance", "gdpr", "hipaa", "soc 2", "iso 27001", "pci dss",
	"data protection", "privacy", "confidentiality", "integrity",
	"availability", "multi-factor", "mfa", "2fa", "ssl", "tls",
	"certificate", "key management", "secrets", "password policy",
	"security training", "awareness", "background check", "vendor management",
}

// MatchKeywords returns the vocabulary terms found in text, in vocabulary
// order. The result is never nil.
func MatchKeywords(text string) []string {
	return matchAny(strings.ToLower(text), SecurityKeywords)
}

func matchAny(lower string, vocabulary []string) []string {
	matched := []string{}
	for _, kw := range vocabulary {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
