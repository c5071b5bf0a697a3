// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"strings"
	"time"
)

// Severity grades a risk, threat or attack surface.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Rank returns a numeric rank for sorting (higher = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// RiskLevel is the overall verdict derived from the risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW RISK"
	RiskLevelMedium   RiskLevel = "MEDIUM RISK"
	RiskLevelHigh     RiskLevel = "HIGH RISK"
	RiskLevelCritical RiskLevel = "CRITICAL RISK"
	RiskLevelUnknown  RiskLevel = "UNKNOWN"
)

// Rank orders levels by badness; UNKNOWN ranks lowest.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelCritical:
		return 4
	case RiskLevelHigh:
		return 3
	case RiskLevelMedium:
		return 2
	case RiskLevelLow:
		return 1
	default:
		return 0
	}
}

// ParseRiskLevel accepts a level name with or without the " RISK" suffix,
// in any case ("high", "HIGH RISK").
func ParseRiskLevel(s string) (RiskLevel, error) {
	name := strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), " RISK")
	switch name {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	}
	return "", fmt.Errorf("unknown risk level %q (want low, medium, high or critical)", s)
}

// Risk is a category of controls with too little supporting evidence.
type Risk struct {
	Category          string   `json:"category"`
	Severity          Severity `json:"severity"`
	Description       string   `json:"description"`
	AffectedQuestions []string `json:"affected_questions"`
	Gaps              []string `json:"gaps"`
}

// Recommendation is a prioritized follow-up action for the analyst.
type Recommendation struct {
	Priority            string   `json:"priority"`
	Category            string   `json:"category"`
	Action              string   `json:"action"`
	Rationale           string   `json:"rationale"`
	QuestionsToFollowup []string `json:"questions_to_followup"`
}

// Summary holds headline counts for the executive summary.
type Summary struct {
	TotalQuestions           int `json:"total_questions"`
	AnsweredHighConfidence   int `json:"answered_high_confidence"`
	AnsweredMediumConfidence int `json:"answered_medium_confidence"`
	AnsweredLowConfidence    int `json:"answered_low_confidence"`
	InsufficientEvidence     int `json:"insufficient_evidence"`
	CriticalRisks            int `json:"critical_risks"`
	MediumRisks              int `json:"medium_risks"`
	LowRisks                 int `json:"low_risks"`
}

// RiskAssessment is the single artifact produced per assessment run.
type RiskAssessment struct {
	ID                     string             `json:"id"`
	GeneratedAt            time.Time          `json:"generated_at"`
	VendorName             string             `json:"vendor_name,omitempty"`
	OverallRisk            RiskLevel          `json:"overall_risk"`
	RiskScore              float64            `json:"risk_score"`
	ConfidenceDistribution map[Confidence]int `json:"confidence_distribution"`
	Risks                  []Risk             `json:"risks"`
	ThreatModel            ThreatModel        `json:"threat_model"`
	Recommendations        []Recommendation   `json:"recommendations"`
	PublicIncidentsFound   int                `json:"public_incidents_found"`
	Summary                Summary            `json:"summary"`
}

// ThreatModel is a STRIDE view of the identified risks.
type ThreatModel struct {
	Framework         string          `json:"framework"`
	Threats           []Threat        `json:"threats"`
	AttackSurfaces    []AttackSurface `json:"attack_surfaces"`
	MitigationsNeeded []Mitigation    `json:"mitigations_needed"`
}

// Threat is a single STRIDE (or historical-incident) threat.
type Threat struct {
	Category          string   `json:"category"`
	Severity          Severity `json:"severity"`
	Description       string   `json:"description"`
	AffectedQuestions int      `json:"affected_questions"`
	EvidenceGaps      []string `json:"evidence_gaps"`
	PotentialImpact   string   `json:"potential_impact"`
}

// AttackSurface is an exposure derived from vendor context.
type AttackSurface struct {
	Surface       string   `json:"surface"`
	Description   string   `json:"description"`
	ExposureLevel Severity `json:"exposure_level"`
}

// Mitigation lists controls needed against a serious threat.
type Mitigation struct {
	ThreatCategory   string   `json:"threat_category"`
	Priority         string   `json:"priority"`
	Action           string   `json:"action"`
	SpecificControls []string `json:"specific_controls"`
}
