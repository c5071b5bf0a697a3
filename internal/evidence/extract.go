// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	minSentenceLength = 20
	certContextRunes  = 100
)

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// certificationPatterns recognise the certifications and regulations that
// vendors commonly cite.
var certificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)SOC\s*[123]\s*Type\s*[12]`),
	regexp.MustCompile(`(?i)ISO\s*27001`),
	regexp.MustCompile(`(?i)ISO\s*27017`),
	regexp.MustCompile(`(?i)ISO\s*27018`),
	regexp.MustCompile(`(?i)PCI\s*DSS`),
	regexp.MustCompile(`(?i)HIPAA`),
	regexp.MustCompile(`(?i)GDPR`),
	regexp.MustCompile(`(?i)CCPA`),
	regexp.MustCompile(`(?i)FedRAMP`),
}

// FromText extracts control statements from free text. Sentences shorter
// than 20 characters or without a security keyword are ignored; more than
// one keyword rates MEDIUM, a single keyword LOW.
func FromText(text, sourceRef string) []types.EvidenceItem {
	var items []types.EvidenceItem
	for _, sentence := range sentenceBoundary.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) < minSentenceLength {
			continue
		}
		keywords := MatchKeywords(sentence)
		if len(keywords) == 0 {
			continue
		}
		conf := types.ConfidenceLow
		if len(keywords) > 1 {
			conf = types.ConfidenceMedium
		}
		item, err := types.NewEvidenceItem(sentence, sourceRef, conf, types.EvidenceControlStatement, keywords)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// FromTable extracts evidence from tabular data whose first row is the
// header. Matching rows rate HIGH since tables are structured answers.
// RowData is attached only when the row is exactly as wide as the header.
func FromTable(rows [][]any, sourceRef string) []types.EvidenceItem {
	if len(rows) < 2 {
		return nil
	}
	headers := rows[0]

	var items []types.EvidenceItem
	for i, row := range rows[1:] {
		text := types.RowText(row)
		keywords := MatchKeywords(text)
		if len(keywords) == 0 {
			continue
		}
		ref := fmt.Sprintf("%s (Row %d)", sourceRef, i+1)
		item, err := types.NewEvidenceItem(text, ref, types.ConfidenceHigh, types.EvidenceTableEntry, keywords)
		if err != nil {
			continue
		}
		if len(headers) == len(row) {
			item.RowData = rowData(headers, row)
		}
		items = append(items, item)
	}
	return items
}

func rowData(headers, row []any) map[string]string {
	data := make(map[string]string, len(headers))
	for i, h := range headers {
		key, _ := types.CellString(h)
		value, _ := types.CellString(row[i])
		data[key] = value
	}
	return data
}

// Certifications finds certification claims in text. Each match yields one
// HIGH item whose text is the match with up to 100 characters of context
// on either side.
func Certifications(text, sourceRef string) []types.EvidenceItem {
	var items []types.EvidenceItem
	for _, pattern := range certificationPatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			context := strings.TrimSpace(surrounding(text, loc[0], loc[1], certContextRunes))
			item, err := types.NewEvidenceItem(context, sourceRef, types.ConfidenceHigh, types.EvidenceCertification, MatchKeywords(context))
			if err != nil {
				continue
			}
			item.Certification = text[loc[0]:loc[1]]
			items = append(items, item)
		}
	}
	return items
}

// surrounding returns text[start:end] widened by up to n runes each side.
func surrounding(text string, start, end, n int) string {
	from := start
	for i := 0; i < n && from > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:from])
		from -= size
	}
	to := end
	for i := 0; i < n && to < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[to:])
		to += size
	}
	return text[from:to]
}

// FromWebSearch converts classified search hits into evidence. Controls
// keep the confidence assigned during classification; incidents are HIGH.
func FromWebSearch(result types.WebSearchResult) []types.EvidenceItem {
	var items []types.EvidenceItem
	for _, c := range result.Controls {
		conf := c.Confidence
		if !conf.Valid() || conf == types.ConfidenceNotFound {
			conf = types.ConfidenceLow
		}
		item, err := types.NewEvidenceItem(
			fmt.Sprintf("%s. %s", c.Title, c.Snippet),
			"Web Search: "+c.URL,
			conf,
			types.EvidenceWebSearchControl,
			append([]string{}, c.Keywords...),
		)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	for _, inc := range result.Incidents {
		item, err := types.NewEvidenceItem(
			fmt.Sprintf("[%s] %s. %s", inc.Year, inc.Title, inc.Snippet),
			"Web Search: "+inc.URL,
			types.ConfidenceHigh,
			types.EvidenceWebSearchIncident,
			append([]string{}, inc.Keywords...),
		)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}
