// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package overview

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

var (
	descriptiveVerbs = []string{" is a ", " is an ", " provides ", " offers ", " helps ", " enables ", " allows ", " delivers ", " specializes in "}
	strongVerbs      = []string{" is a ", " is an ", " provides ", " offers "}
	serviceWords     = []string{"platform", "software", "solution", "service", "tool", "system", "application", "saas", "api"}
	productWords     = []string{"platform", "software", "solution", "saas"}
	purposePhrases   = []string{"designed to", "helps companies", "helps organizations", "enables users", "allows teams", "specializes in"}
	focusWords       = []string{"management", "monitoring", "analytics", "security", "collaboration", "communication", "automation", "integration", "customer", "data", "cloud"}
)

// capabilities are phrased into the synthesized description, in order.
var capabilities = []struct {
	pattern *regexp.Regexp
	phrase  string
}{
	{regexp.MustCompile(`\bai\b`), "uses AI"},
	{regexp.MustCompile(`machine learning`), "uses machine learning"},
	{regexp.MustCompile(`artificial intelligence`), "uses artificial intelligence"},
	{regexp.MustCompile(`automation`), "provides automation"},
	{regexp.MustCompile(`real-time`), "offers real-time monitoring"},
	{regexp.MustCompile(`analytics`), "provides analytics"},
	{regexp.MustCompile(`encryption`), "uses encryption"},
	{regexp.MustCompile(`cloud-based`), "is cloud-based"},
	{regexp.MustCompile(`\bapi\b`), "offers API access"},
}

// BestWebDescription picks the sentence from web control titles and
// snippets that best says what the vendor does. It returns "" when no
// sentence scores at least 5.
func BestWebDescription(vendor string, controls []types.WebControl) string {
	type candidate struct {
		score    int
		sentence string
	}
	var candidates []candidate
	vendorLower := strings.ToLower(vendor)

	for _, c := range head(controls, maxDescControls) {
		for _, text := range []string{c.Snippet, c.Title} {
			if len(text) < 40 {
				continue
			}
			lower := strings.ToLower(text)
			hasVendor := vendorLower != "" && strings.Contains(lower, vendorLower)
			hasVerb := containsAny(lower, descriptiveVerbs)
			hasServiceWord := containsAny(lower, serviceWords)
			if !(hasVendor || hasServiceWord) || !(hasVerb || hasServiceWord) {
				continue
			}

			for _, sentence := range sentenceBoundary.Split(text, -1) {
				sentence = strings.TrimSpace(sentence)
				if len(sentence) < 30 {
					continue
				}
				if score := scoreSentence(strings.ToLower(sentence), vendorLower); score >= 5 {
					candidates = append(candidates, candidate{score, sentence})
				}
			}
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	return withPeriod(candidates[0].sentence)
}

func scoreSentence(sentence, vendor string) int {
	score := 0
	if vendor != "" && strings.Contains(sentence, vendor) {
		score += 5
	}
	if containsAny(sentence, strongVerbs) {
		score += 3
	}
	if containsAny(sentence, productWords) {
		score += 2
	}
	if containsAny(sentence, purposePhrases) {
		score += 2
	}
	return score
}

// Synthesize builds a description from the extracted services, e.g.
// "Acme is a platform that offers email delivery platform. The solution
// provides analytics."
func Synthesize(vendor string, services []string) string {
	var b strings.Builder
	b.WriteString(vendor)
	switch kind := vendorKind(services); {
	case kind != "":
		b.WriteString(" is " + kind)
	case len(services) > 0:
		b.WriteString(" is a software solution")
	default:
		b.WriteString(" is a technology platform")
	}

	if main := mainService(services); main != "" {
		lower := strings.ToLower(main)
		switch {
		case containsAny(lower, []string{"for ", "that ", "which "}):
			b.WriteString(" " + lower)
		case containsAny(lower, []string{"platform", "solution", "software", "service"}):
			b.WriteString(" that offers " + lower)
		default:
			b.WriteString(" for " + lower)
		}
	}

	if caps := keyCapabilities(services); caps != "" {
		b.WriteString(". The solution " + caps)
	}
	return withPeriod(b.String())
}

func vendorKind(services []string) string {
	text := strings.ToLower(strings.Join(services, " "))
	switch {
	case strings.Contains(text, "saas") || strings.Contains(text, "software as a service"):
		return "a SaaS"
	case strings.Contains(text, "cloud platform") || strings.Contains(text, "cloud service"):
		return "a cloud platform"
	case strings.Contains(text, "platform"):
		return "a platform"
	case strings.Contains(text, "solution") || strings.Contains(text, "software"):
		return "a software solution"
	case strings.Contains(text, "api"):
		return "an API service"
	case strings.Contains(text, "tool"):
		return "a tool"
	}
	return ""
}

// mainService prefers longer services and ones naming a focus area or a
// purpose ("for", "that"). Ties keep the earlier service.
func mainService(services []string) string {
	if len(services) == 0 {
		return ""
	}
	best, bestScore := services[0], 0
	for _, s := range head(services, maxServices) {
		lower := strings.ToLower(s)
		score := len(strings.Fields(s))
		if containsAny(lower, focusWords) {
			score += 3
		}
		if strings.Contains(lower, " for ") || strings.Contains(lower, " that ") {
			score += 2
		}
		if score > bestScore {
			best, bestScore = s, score
		}
	}
	return best
}

func keyCapabilities(services []string) string {
	text := strings.ToLower(strings.Join(services, " "))
	var found []string
	for _, c := range capabilities {
		if c.pattern.MatchString(text) {
			found = append(found, c.phrase)
		}
	}
	switch len(found) {
	case 0:
		return ""
	case 1:
		return found[0]
	case 2:
		return found[0] + " and " + found[1]
	default:
		return found[0] + ", " + found[1] + ", and more"
	}
}

func withPeriod(s string) string {
	if strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}
