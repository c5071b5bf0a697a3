// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	aqtable "github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/bonial-oss/vendor-assess/internal/assessor"
	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	maxQuestionWords    = 12
	maxSourcesPerRow    = 3
	maxDescriptionWords = 16
)

// TableConfig controls how rows are sorted and styled.
type TableConfig struct {
	SortBy     string // "confidence", "score", "id", "" (preserve order)
	IsTerminal bool   // true when output goes to a terminal (enables ANSI styling)
}

// IsOutputToTerminal returns true if the writer is stdout connected to a
// character device (TTY).
func IsOutputToTerminal(output io.Writer) bool {
	return output == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// mappingRow holds a reference to a mapping for table rendering.
type mappingRow struct {
	mapping *types.QuestionMapping
}

// WriteTable writes the assessment headline, the key risks and the
// questionnaire mappings as tables.
func WriteTable(w io.Writer, res *assessor.Result, cfg TableConfig) error {
	a := res.Assessment
	writeHeading(w, headline(res), cfg.IsTerminal)
	fmt.Fprintln(w, confidenceSummary(a))
	fmt.Fprintln(w)

	if len(a.Risks) > 0 {
		writeRiskTable(w, a.Risks, cfg)
		fmt.Fprintln(w)
	}

	rows := make([]mappingRow, len(res.Mappings))
	for i := range res.Mappings {
		rows[i] = mappingRow{mapping: &res.Mappings[i]}
	}
	sortRows(rows, cfg.SortBy)
	writeMappingTable(w, rows, cfg)
	return nil
}

func headline(res *assessor.Result) string {
	a := res.Assessment
	name := a.VendorName
	if name == "" {
		name = "Vendor"
	}
	return fmt.Sprintf("%s: %s (score %.1f/100)", name, a.OverallRisk, a.RiskScore)
}

// writeHeading writes a title underlined on terminals and with '=' otherwise.
func writeHeading(w io.Writer, title string, isTerminal bool) {
	if isTerminal {
		_ = tml.Fprintf(w, "<underline><bold>%s</bold></underline>\n", title)
		return
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", utf8.RuneCountInString(title)))
}

// confidenceSummary returns a line like:
// Total: 5 (HIGH: 1, MEDIUM: 2, LOW: 0, NOT_FOUND: 2)
func confidenceSummary(a *types.RiskAssessment) string {
	d := a.ConfidenceDistribution
	return fmt.Sprintf("Total: %d (HIGH: %d, MEDIUM: %d, LOW: %d, NOT_FOUND: %d)",
		a.Summary.TotalQuestions,
		d[types.ConfidenceHigh], d[types.ConfidenceMedium], d[types.ConfidenceLow], d[types.ConfidenceNotFound])
}

// newTableWriter creates a table writer with borders, auto-merge and row
// separators. When isTerminal is true, header and line styles use ANSI
// formatting.
func newTableWriter(w io.Writer, isTerminal bool) *aqtable.Table {
	tw := aqtable.New(w)
	if isTerminal {
		tw.SetHeaderStyle(aqtable.StyleBold)
		tw.SetLineStyle(aqtable.StyleDim)
	}
	tw.SetBorders(true)
	tw.SetAutoMerge(true)
	tw.SetRowLines(true)
	return tw
}

func writeRiskTable(w io.Writer, risks []types.Risk, cfg TableConfig) {
	tw := newTableWriter(w, cfg.IsTerminal)
	tw.SetHeaders("Category", "Severity", "Description", "Affected Questions")
	for _, r := range risks {
		severity := string(r.Severity)
		if cfg.IsTerminal {
			severity = colorizeSeverity(severity)
		}
		tw.AddRow(r.Category, severity, truncateWords(r.Description, maxDescriptionWords), strings.Join(r.AffectedQuestions, ", "))
	}
	tw.Render()
}

func writeMappingTable(w io.Writer, rows []mappingRow, cfg TableConfig) {
	tw := newTableWriter(w, cfg.IsTerminal)
	tw.SetHeaders("ID", "Category", "Question", "Confidence", "Score", "Sources")
	for _, row := range rows {
		tw.AddRow(rowCells(row.mapping, cfg)...)
	}
	tw.Render()
}

// rowCells returns the cell values for a single mapping row.
func rowCells(m *types.QuestionMapping, cfg TableConfig) []string {
	confidence := string(m.Confidence)
	if cfg.IsTerminal {
		confidence = colorizeConfidence(confidence)
	}
	return []string{
		m.QuestionID,
		m.Category,
		truncateWords(m.Question, maxQuestionWords),
		confidence,
		formatScore(m),
		sources(m, cfg.IsTerminal),
	}
}

// formatScore formats the top similarity or returns "-" without evidence.
func formatScore(m *types.QuestionMapping) string {
	if len(m.Evidence) == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", m.TopScore())
}

// sources lists up to three evidence sources, one per line. Web sources are
// blue on terminals.
func sources(m *types.QuestionMapping, isTerminal bool) string {
	var out []string
	for i, e := range m.Evidence {
		if i == maxSourcesPerRow {
			break
		}
		src := e.Source
		if isTerminal && e.Type.IsWeb() {
			src = tml.Sprintf("<blue>%s</blue>", src)
		}
		out = append(out, src)
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, "\n")
}

var severityColors = map[string]func(a ...any) string{
	"LOW":       color.New(color.FgBlue).SprintFunc(),
	"MEDIUM":    color.New(color.FgYellow).SprintFunc(),
	"HIGH":      color.New(color.FgHiRed).SprintFunc(),
	"CRITICAL":  color.New(color.FgRed).SprintFunc(),
	"NOT_FOUND": color.New(color.FgCyan).SprintFunc(),
}

// colorizeSeverity returns the severity string wrapped in ANSI color codes.
func colorizeSeverity(severity string) string {
	if fn, ok := severityColors[strings.ToUpper(severity)]; ok {
		return fn(severity)
	}
	return severity
}

// Confidence runs the other way: HIGH is good news.
var confidenceColors = map[string]func(a ...any) string{
	"HIGH":      color.New(color.FgGreen).SprintFunc(),
	"MEDIUM":    color.New(color.FgYellow).SprintFunc(),
	"LOW":       color.New(color.FgHiRed).SprintFunc(),
	"NOT_FOUND": color.New(color.FgRed).SprintFunc(),
}

func colorizeConfidence(confidence string) string {
	if fn, ok := confidenceColors[confidence]; ok {
		return fn(confidence)
	}
	return confidence
}

// sortRows sorts the mapping rows based on the given sort key.
func sortRows(rows []mappingRow, sortBy string) {
	switch sortBy {
	case "confidence":
		// weakest first: those need follow-up
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].mapping.Confidence.Rank() < rows[j].mapping.Confidence.Rank()
		})
	case "score":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].mapping.TopScore() > rows[j].mapping.TopScore()
		})
	case "id":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].mapping.QuestionID < rows[j].mapping.QuestionID
		})
	default:
		// preserve original order
	}
}

// truncateWords limits text to maxWords words, appending "..." if truncated.
func truncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
