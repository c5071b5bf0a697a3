// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package overview

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

var (
	listSep = regexp.MustCompile(`[,;]|\sand\s`)

	servicePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:provide|offer|deliver)s?\s+([a-zA-Z\s]+(?:platform|service|solution|software|tool))`),
		regexp.MustCompile(`(?i)([a-zA-Z\s]+(?:platform|service|solution|software|tool))\s+(?:for|that|which)`),
		regexp.MustCompile(`(?i)(?:is|as)\s+a\s+([a-zA-Z\s]+(?:platform|service|solution|provider))`),
	}
	serviceHeadings = []string{"service", "feature", "capability", "offering"}
	bulletPrefix    = regexp.MustCompile(`^[-•*\d.)]+\s*`)

	integrationPattern = regexp.MustCompile(`(?:integrat|connect|work|compatible|sync)(?:e|es|ion|s)?\s+with\s+([A-Z][a-zA-Z0-9\s\-]+(?:,\s*(?:and\s+)?[A-Z][a-zA-Z0-9\s\-]+)*)`)
	apiPattern         = regexp.MustCompile(`([A-Z][a-zA-Z0-9\s]+)\s+API`)
	integrationSep     = regexp.MustCompile(`,|\sand\s`)
	integrationNoise   = []string{"the", "our", "your", "their", "this", "that"}

	dataPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:store|process|collect|handle|manage|access|transmit|retain|maintain|use|hold|secure|encrypt|protect)(?:s|es|ing)?\s+([a-zA-Z\s]+(?:data|information|records|details))`),
		regexp.MustCompile(`(?i)([a-zA-Z\s]+(?:data|information|records|details))\s+(?:is|are|will be|may be|can be)\s+(?:stored|processed|collected|transmitted|accessed|retained|used)`),
		regexp.MustCompile(`(?i)(?:including|such as|like|e\.?g\.?)\s+([a-zA-Z\s,]+(?:data|information|records|details))`),
		regexp.MustCompile(`(?i)(?:types? of|kinds? of|categories of)\s+(?:data|information)\s+(?:including|such as)?\s*:?\s*([a-zA-Z\s,]+)`),
		regexp.MustCompile(`(?i)(?:contain|include)(?:s|ing)?\s+([a-zA-Z\s]+(?:data|information|records|details))`),
		regexp.MustCompile(`(?i)(?:related to|pertaining to|concerning|regarding)\s+([a-zA-Z\s]+(?:data|information|details))`),
		regexp.MustCompile(`(?i)(?:data|information)\s+(?:about|regarding|concerning)\s+([a-zA-Z\s]+)`),
	}
	spaces           = regexp.MustCompile(`\s+`)
	trailingJoiner   = regexp.MustCompile(`,?\s*(?:and|or)\s*$`)
	sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)
)

// knownDataTypes maps mentions to a canonical data category, checked in
// order.
var knownDataTypes = []struct {
	pattern *regexp.Regexp
	name    string
}{
	{regexp.MustCompile(`(?i)\bPII\b`), "Personally Identifiable Information (PII)"},
	{regexp.MustCompile(`(?i)\bPHI\b`), "Protected Health Information (PHI)"},
	{regexp.MustCompile(`(?i)\bPCI\b`), "Payment Card Information (PCI)"},
	{regexp.MustCompile(`(?i)personal data`), "Personal data"},
	{regexp.MustCompile(`(?i)personal information`), "Personal information"},
	{regexp.MustCompile(`(?i)customer data`), "Customer data"},
	{regexp.MustCompile(`(?i)user data`), "User data"},
	{regexp.MustCompile(`(?i)employee data`), "Employee data"},
	{regexp.MustCompile(`(?i)credentials`), "User credentials"},
	{regexp.MustCompile(`(?i)passwords`), "Passwords"},
	{regexp.MustCompile(`(?i)biometric`), "Biometric data"},
	{regexp.MustCompile(`(?i)social security number|\bSSN\b`), "Social Security Numbers"},
	{regexp.MustCompile(`(?i)passport`), "Passport information"},
	{regexp.MustCompile(`(?i)contact (?:information|details)`), "Contact information"},
	{regexp.MustCompile(`(?i)email address`), "Email addresses"},
	{regexp.MustCompile(`(?i)phone number`), "Phone numbers"},
	{regexp.MustCompile(`(?i)(?:mailing|physical) address`), "Postal addresses"},
	{regexp.MustCompile(`(?i)financial (?:data|information)`), "Financial data"},
	{regexp.MustCompile(`(?i)payment (?:data|information)`), "Payment information"},
	{regexp.MustCompile(`(?i)credit card|debit card`), "Card information"},
	{regexp.MustCompile(`(?i)bank account|banking data`), "Bank account information"},
	{regexp.MustCompile(`(?i)transaction (?:data|history)`), "Transaction data"},
	{regexp.MustCompile(`(?i)billing (?:data|information)`), "Billing information"},
	{regexp.MustCompile(`(?i)salary|payroll`), "Payroll data"},
	{regexp.MustCompile(`(?i)health (?:data|information)|medical (?:data|records)`), "Health data"},
	{regexp.MustCompile(`(?i)log data|system logs|access logs|audit logs`), "Log data"},
	{regexp.MustCompile(`(?i)usage (?:data|information)`), "Usage data"},
	{regexp.MustCompile(`(?i)telemetry`), "Telemetry data"},
	{regexp.MustCompile(`(?i)ip address`), "IP addresses"},
	{regexp.MustCompile(`(?i)device (?:data|information)`), "Device information"},
	{regexp.MustCompile(`(?i)location data|geolocation`), "Location data"},
	{regexp.MustCompile(`(?i)(?:message|chat|email) data`), "Communication data"},
	{regexp.MustCompile(`(?i)voice data|call recordings?`), "Voice recordings"},
	{regexp.MustCompile(`(?i)attachments`), "File attachments"},
	{regexp.MustCompile(`(?i)(?:hr|employment|personnel) data`), "HR data"},
	{regexp.MustCompile(`(?i)student data|academic records`), "Student data"},
	{regexp.MustCompile(`(?i)(?:behavioral|demographic|profile) data`), "Profile data"},
	{regexp.MustCompile(`(?i)genetic`), "Genetic data"},
	{regexp.MustCompile(`(?i)criminal`), "Criminal history data"},
	{regexp.MustCompile(`(?i)sensitive data`), "Sensitive data"},
	{regexp.MustCompile(`(?i)confidential data`), "Confidential data"},
	{regexp.MustCompile(`(?i)intellectual property|trade secret`), "Intellectual property data"},
}

// Services finds descriptions of what the vendor offers, from phrases such
// as "provides a monitoring platform" and from bullet lists under a
// services or features heading.
func Services(text string) []string {
	var out []string
	for _, re := range servicePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if s := strings.TrimSpace(m[1]); len(s) > 10 && len(s) < 100 {
				out = append(out, s)
			}
		}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !containsAny(strings.ToLower(line), serviceHeadings) {
			continue
		}
		for j := i + 1; j < min(i+6, len(lines)); j++ {
			next := strings.TrimSpace(lines[j])
			if !isBullet(next) {
				continue
			}
			if s := bulletPrefix.ReplaceAllString(next, ""); len(s) > 5 && len(s) < 100 {
				out = append(out, s)
			}
		}
	}
	return out
}

func isBullet(line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*") {
		return true
	}
	return unicode.IsDigit(rune(line[0]))
}

// Integrations finds capitalized product names after phrases such as
// "integrates with" and names followed by "API".
func Integrations(text string) []string {
	var out []string
	for _, m := range integrationPattern.FindAllStringSubmatch(text, -1) {
		for _, tool := range integrationSep.Split(m[1], -1) {
			tool = strings.TrimSpace(tool)
			if len(tool) > 2 && len(tool) < 50 && !hasNoiseWord(tool) {
				out = append(out, tool)
			}
		}
	}
	for _, m := range apiPattern.FindAllStringSubmatch(text, -1) {
		if name := m[1]; len(name) > 2 && len(name) < 30 {
			out = append(out, name+" API")
		}
	}
	return out
}

func hasNoiseWord(s string) bool {
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if slices.Contains(integrationNoise, w) {
			return true
		}
	}
	return false
}

// DataTypes finds the kinds of data a text says are stored or processed.
func DataTypes(text string) []string {
	var out []string
	for _, re := range dataPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			d := spaces.ReplaceAllString(strings.TrimSpace(m[1]), " ")
			if len(d) <= 5 || len(d) >= 100 {
				continue
			}
			if d = trailingJoiner.ReplaceAllString(d, ""); d != "" {
				out = append(out, d)
			}
		}
	}
	for _, known := range knownDataTypes {
		if known.pattern.MatchString(text) {
			out = append(out, known.name)
		}
	}
	return out
}
