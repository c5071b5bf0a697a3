// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package risk aggregates question mappings into a risk assessment.
package risk

import (
	"fmt"
	"sort"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	riskFraction = 0.5
	highFraction = 0.7

	maxCategoryFollowups = 5
	maxDocFollowups      = 10
	// notFoundLimit is the number of unanswered questions above which a
	// documentation package is requested.
	notFoundLimit = 5
)

// Aggregate builds a risk assessment from mappings. It is deterministic:
// the same mappings always produce the same assessment. The threat model,
// ID and timestamp are left for later stages.
func Aggregate(mappings []types.QuestionMapping) *types.RiskAssessment {
	dist := Distribution(mappings)
	risks := Identify(mappings)
	score, level := Score(mappings)

	return &types.RiskAssessment{
		OverallRisk:            level,
		RiskScore:              score,
		ConfidenceDistribution: dist,
		Risks:                  risks,
		ThreatModel: types.ThreatModel{
			Framework:         "STRIDE",
			Threats:           []types.Threat{},
			AttackSurfaces:    []types.AttackSurface{},
			MitigationsNeeded: []types.Mitigation{},
		},
		Recommendations: Recommend(risks, mappings),
		Summary:         summarize(mappings, dist, risks),
	}
}

// Distribution counts mappings per confidence tier. Only tiers that occur
// are present.
func Distribution(mappings []types.QuestionMapping) map[types.Confidence]int {
	dist := make(map[types.Confidence]int)
	for _, m := range mappings {
		conf := m.Confidence
		if conf == "" {
			conf = types.ConfidenceNotFound
		}
		dist[conf]++
	}
	return dist
}

// Identify evaluates every category and returns the emitted risks, most
// severe first.
func Identify(mappings []types.QuestionMapping) []types.Risk {
	risks := []types.Risk{}
	for _, cat := range Categories {
		var members []types.QuestionMapping
		for _, m := range mappings {
			if cat.Matches(m.Question) {
				members = append(members, m)
			}
		}
		if r, ok := evaluate(cat, members); ok {
			risks = append(risks, r)
		}
	}
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Severity.Rank() > risks[j].Severity.Rank()
	})
	return risks
}

// evaluate applies the severity rule to one category's questions. A risk is
// raised when more than half are weakly answered, HIGH above 70%.
func evaluate(cat Category, members []types.QuestionMapping) (types.Risk, bool) {
	n := len(members)
	if n == 0 {
		return types.Risk{}, false
	}

	affected := []string{}
	for _, m := range members {
		if weak(m.Confidence) {
			affected = append(affected, m.QuestionID)
		}
	}
	low := len(affected)
	if float64(low) <= riskFraction*float64(n) {
		return types.Risk{}, false
	}
	severity := types.SeverityMedium
	if float64(low) > highFraction*float64(n) {
		severity = types.SeverityHigh
	}

	return types.Risk{
		Category:          cat.DisplayName(),
		Severity:          severity,
		Description:       fmt.Sprintf("Insufficient evidence for %d/%d %s controls", low, n, cat.Words()),
		AffectedQuestions: affected,
		Gaps:              collectGaps(members),
	}, true
}

func weak(c types.Confidence) bool {
	return c == types.ConfidenceLow || c == types.ConfidenceNotFound || c == ""
}

// collectGaps returns the distinct gaps of all members in first-seen order.
func collectGaps(members []types.QuestionMapping) []string {
	seen := make(map[string]struct{})
	gaps := []string{}
	for _, m := range members {
		for _, g := range m.Gaps {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			gaps = append(gaps, g)
		}
	}
	return gaps
}

// Recommend derives prioritized follow-up actions: one Critical action per
// HIGH risk, plus a documentation request when many questions have no
// evidence at all.
func Recommend(risks []types.Risk, mappings []types.QuestionMapping) []types.Recommendation {
	recs := []types.Recommendation{}
	for _, r := range risks {
		if r.Severity != types.SeverityHigh {
			continue
		}
		recs = append(recs, types.Recommendation{
			Priority:            "Critical",
			Category:            r.Category,
			Action:              fmt.Sprintf("Request additional documentation for %s controls", r.Category),
			Rationale:           r.Description,
			QuestionsToFollowup: head(r.AffectedQuestions, maxCategoryFollowups),
		})
	}

	var notFound []string
	for _, m := range mappings {
		if m.Confidence == types.ConfidenceNotFound {
			notFound = append(notFound, m.QuestionID)
		}
	}
	if len(notFound) > notFoundLimit {
		recs = append(recs, types.Recommendation{
			Priority:            "High",
			Category:            "Documentation",
			Action:              "Request comprehensive security documentation package",
			Rationale:           fmt.Sprintf("%d questions have no supporting evidence", len(notFound)),
			QuestionsToFollowup: head(notFound, maxDocFollowups),
		})
	}
	return recs
}

func head(ids []string, n int) []string {
	if len(ids) > n {
		ids = ids[:n]
	}
	return append([]string{}, ids...)
}

func summarize(mappings []types.QuestionMapping, dist map[types.Confidence]int, risks []types.Risk) types.Summary {
	s := types.Summary{
		TotalQuestions:           len(mappings),
		AnsweredHighConfidence:   dist[types.ConfidenceHigh],
		AnsweredMediumConfidence: dist[types.ConfidenceMedium],
		AnsweredLowConfidence:    dist[types.ConfidenceLow],
		InsufficientEvidence:     dist[types.ConfidenceNotFound],
	}
	for _, r := range risks {
		switch r.Severity {
		case types.SeverityHigh:
			s.CriticalRisks++
		case types.SeverityMedium:
			s.MediumRisks++
		case types.SeverityLow:
			s.LowRisks++
		}
	}
	return s
}
