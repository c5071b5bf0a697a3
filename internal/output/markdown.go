// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bonial-oss/vendor-assess/internal/assessor"
	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	maxReportIncidents   = 5
	maxReportRiskGaps    = 5
	maxReportThreatGaps  = 2
	maxReportMitigations = 10
	maxReportControls    = 3
	maxReportFollowups   = 5
	maxReportSources     = 10
	notProvided          = "Not provided"
)

// WriteMarkdown writes the narrative assessment report.
func WriteMarkdown(w io.Writer, res *assessor.Result) error {
	bw := bufio.NewWriter(w)
	r := &report{w: bw, res: res}

	fmt.Fprint(bw, "# Vendor Risk Assessment Report\n\n")
	r.overview()
	r.dataInScope()
	r.executiveSummary()
	r.incidents()
	r.risks()
	r.threatModel()
	r.recommendations()
	r.confidence()
	r.appendix()
	fmt.Fprint(bw, "---\n\n*This report was generated by vendor-assess.*\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing markdown report: %w", err)
	}
	return nil
}

type report struct {
	w   *bufio.Writer
	res *assessor.Result
}

func (r *report) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *report) section(n int, title string) {
	if n > 1 {
		r.printf("---\n\n")
	}
	r.printf("## %d. %s\n\n", n, title)
}

func (r *report) overview() {
	r.section(1, "Vendor Overview")
	ov := r.res.Overview
	name := ov.VendorName
	if name == "" {
		name = r.res.Assessment.VendorName
	}
	r.printf("**Vendor Name:** %s\n\n", orDefault(name, notProvided))
	if ov.Description != "" {
		r.printf("**Description:** %s\n\n", ov.Description)
	}
	r.list("Services Provided", ov.Services)
}

func (r *report) dataInScope() {
	r.section(2, "Data in Scope")
	var stored, integrations string
	if md := r.res.Metadata; md != nil {
		stored, integrations = md.DataStored, md.Integrations
	}
	r.field("Data Stored by Vendor", stored)
	if integrations != "" {
		r.field("System Integrations", integrations)
	} else {
		r.list("System Integrations", r.res.Overview.Integrations)
	}
	r.list("Data Processed", r.res.Overview.DataProcessed)
}

func (r *report) executiveSummary() {
	r.section(3, "Executive Summary")
	a := r.res.Assessment
	s := a.Summary
	r.printf("**Overall Risk Level:** %s  \n", a.OverallRisk)
	r.printf("**Risk Score:** %.1f/100  \n", a.RiskScore)
	r.printf("**Assessment Date:** %s\n\n", assessmentDate(a.GeneratedAt))

	r.printf("### Assessment Highlights\n\n")
	r.printf("- **Total Security Controls Assessed:** %d\n", s.TotalQuestions)
	r.printf("- **High Confidence Evidence:** %d controls\n", s.AnsweredHighConfidence)
	r.printf("- **Medium Confidence Evidence:** %d controls\n", s.AnsweredMediumConfidence)
	r.printf("- **Insufficient Evidence:** %d controls\n", s.AnsweredLowConfidence+s.InsufficientEvidence)
	r.printf("- **Critical Risks Identified:** %d\n", s.CriticalRisks)
	r.printf("- **Public Security Incidents Found:** %d\n\n", a.PublicIncidentsFound)
}

func (r *report) incidents() {
	r.section(4, "Public Security Incidents")
	incidents := r.res.Web.Incidents
	if len(incidents) == 0 {
		r.printf("**No public security incidents identified in recent searches.**\n\n")
		r.printf("This does not guarantee the absence of incidents; only public sources were searched.\n\n")
		return
	}
	r.printf("**%d security incident(s) identified from public sources:**\n\n", len(incidents))
	for i, inc := range head(incidents, maxReportIncidents) {
		r.printf("### Incident %d: %s\n\n", i+1, orDefault(inc.Title, "Unknown"))
		r.printf("**Year:** %s  \n", orDefault(inc.Year, "Unknown"))
		r.printf("**Description:** %s  \n", orDefault(inc.Snippet, "No details available"))
		r.printf("**Source:** %s\n\n", orDefault(inc.URL, "N/A"))
	}
}

func (r *report) risks() {
	r.section(5, "Key Risks")
	risks := r.res.Assessment.Risks
	if len(risks) == 0 {
		r.printf("No categories fell below the evidence thresholds.\n\n")
		return
	}
	for i, risk := range risks {
		r.printf("### Risk %d: %s - %s\n\n", i+1, risk.Severity, risk.Category)
		r.printf("**Description:** %s\n\n", risk.Description)
		if len(risk.Gaps) > 0 {
			r.printf("**Evidence Gaps:**\n")
			for _, gap := range head(risk.Gaps, maxReportRiskGaps) {
				r.printf("- %s\n", gap)
			}
			r.printf("\n")
		}
	}
}

func (r *report) threatModel() {
	r.section(6, "Threat Modeling")
	tm := r.res.Assessment.ThreatModel
	r.printf("**Framework:** %s\n\n", orDefault(tm.Framework, "STRIDE"))

	if len(tm.AttackSurfaces) > 0 {
		r.printf("### Attack Surfaces\n\n")
		for _, s := range tm.AttackSurfaces {
			r.printf("#### %s (Exposure: %s)\n\n%s\n\n", s.Surface, s.ExposureLevel, s.Description)
		}
	}

	if len(tm.Threats) > 0 {
		r.printf("### STRIDE Threat Analysis\n\n")
		order, byCategory := groupThreats(tm.Threats)
		for _, category := range order {
			r.printf("#### %s\n\n", category)
			for _, t := range byCategory[category] {
				r.printf("- **%s:** %s\n", t.Severity, t.Description)
				r.printf("  - **Impact:** %s\n", t.PotentialImpact)
				if len(t.EvidenceGaps) > 0 {
					r.printf("  - **Gaps:** %s\n", strings.Join(head(t.EvidenceGaps, maxReportThreatGaps), ", "))
				}
			}
			r.printf("\n")
		}
	}

	if len(tm.MitigationsNeeded) > 0 {
		r.printf("### Recommended Mitigations\n\n")
		for i, m := range head(tm.MitigationsNeeded, maxReportMitigations) {
			r.printf("%d. **[%s] %s**\n", i+1, m.Priority, m.Action)
			r.printf("   - Threat: %s\n", m.ThreatCategory)
			if len(m.SpecificControls) > 0 {
				r.printf("   - Controls: %s\n", strings.Join(head(m.SpecificControls, maxReportControls), ", "))
			}
			r.printf("\n")
		}
	}
}

// groupThreats groups threats by category in first-seen order.
func groupThreats(threats []types.Threat) ([]string, map[string][]types.Threat) {
	var order []string
	groups := make(map[string][]types.Threat)
	for _, t := range threats {
		if _, ok := groups[t.Category]; !ok {
			order = append(order, t.Category)
		}
		groups[t.Category] = append(groups[t.Category], t)
	}
	return order, groups
}

func (r *report) recommendations() {
	r.section(7, "Recommendations")
	for i, rec := range r.res.Assessment.Recommendations {
		r.printf("### %d. [%s] %s\n\n", i+1, rec.Priority, rec.Action)
		r.printf("**Category:** %s  \n", rec.Category)
		r.printf("**Rationale:** %s\n\n", rec.Rationale)
		if len(rec.QuestionsToFollowup) > 0 {
			r.printf("**Questions to Follow-up:** %s\n\n", strings.Join(head(rec.QuestionsToFollowup, maxReportFollowups), ", "))
		}
	}
}

func (r *report) confidence() {
	r.section(8, "Confidence Distribution")
	r.printf("| Confidence Level | Count | Percentage |\n")
	r.printf("|------------------|-------|------------|\n")
	a := r.res.Assessment
	total := a.Summary.TotalQuestions
	for _, c := range types.Confidences {
		count, ok := a.ConfidenceDistribution[c]
		if !ok {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		r.printf("| %s | %d | %.1f%% |\n", c, count, pct)
	}
	r.printf("\n")
}

func (r *report) appendix() {
	r.section(9, "Appendix: Sources")
	r.printf("### Document Evidence\n\n")
	docs := documentSources(r.res.Mappings)
	if len(docs) == 0 {
		r.printf("No document evidence was matched to the questionnaire.\n\n")
	} else {
		r.printf("Evidence was matched from the following vendor documents:\n\n")
		for _, d := range docs {
			r.printf("- %s\n", d)
		}
		r.printf("\n")
	}

	controls := r.res.Web.Controls
	if len(controls) > 0 {
		r.printf("### Public Sources\n\n")
		for i, c := range head(controls, maxReportSources) {
			r.printf("%d. [%s](%s)\n", i+1, orDefault(c.Title, "Unknown"), orDefault(c.URL, "#"))
		}
		r.printf("\n")
	}
}

// documentSources returns the distinct document names cited by mappings,
// in first-cited order. Page and row suffixes are dropped.
func documentSources(mappings []types.QuestionMapping) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range mappings {
		for _, e := range m.Evidence {
			if e.Type.IsWeb() {
				continue
			}
			name, _, _ := strings.Cut(e.Source, " (")
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func (r *report) field(label, value string) {
	if value == "" {
		r.printf("**%s:** %s\n\n", label, notProvided)
		return
	}
	r.printf("**%s:**\n%s\n\n", label, value)
}

func (r *report) list(label string, items []string) {
	if len(items) == 0 {
		r.printf("**%s:** %s\n\n", label, notProvided)
		return
	}
	r.printf("**%s:**\n", label)
	for _, it := range items {
		r.printf("- %s\n", it)
	}
	r.printf("\n")
}

func assessmentDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format(time.DateOnly)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
