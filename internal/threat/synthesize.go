// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package threat derives a STRIDE threat model from assessed risks.
package threat

import (
	"strings"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	maxIncidents    = 5
	maxEvidenceGaps = 3
	surfaceRunes    = 100
)

var (
	sensitiveData       = []string{"pii", "credential", "password", "secret"}
	sensitiveIntegrated = []string{"production", "database", "api"}
)

// Synthesize builds the threat model. Incidents and metadata are optional.
func Synthesize(risks []types.Risk, incidents []types.WebIncident, metadata *types.VendorMetadata) types.ThreatModel {
	tm := types.ThreatModel{
		Framework:         "STRIDE",
		Threats:           []types.Threat{},
		AttackSurfaces:    AttackSurfaces(metadata),
		MitigationsNeeded: []types.Mitigation{},
	}

	for _, r := range risks {
		category := Stride(r.Category)
		gaps := r.Gaps
		if len(gaps) > maxEvidenceGaps {
			gaps = gaps[:maxEvidenceGaps]
		}
		tm.Threats = append(tm.Threats, types.Threat{
			Category:          category,
			Severity:          r.Severity,
			Description:       r.Description,
			AffectedQuestions: len(r.AffectedQuestions),
			EvidenceGaps:      append([]string{}, gaps...),
			PotentialImpact:   Impact(category, r.Severity),
		})
	}

	for i, inc := range incidents {
		if i == maxIncidents {
			break
		}
		title := inc.Title
		if title == "" {
			title = "Unknown incident"
		}
		tm.Threats = append(tm.Threats, types.Threat{
			Category:        HistoricalIncident,
			Severity:        types.SeverityHigh,
			Description:     "Past security incident: " + title,
			EvidenceGaps:    []string{},
			PotentialImpact: "Historical breach indicates potential vulnerabilities in security posture",
		})
	}

	for _, th := range tm.Threats {
		var priority string
		switch th.Severity {
		case types.SeverityHigh:
			priority = "Critical"
		case types.SeverityCritical:
			priority = "High"
		default:
			continue
		}
		tm.MitigationsNeeded = append(tm.MitigationsNeeded, types.Mitigation{
			ThreatCategory:   th.Category,
			Priority:         priority,
			Action:           "Address " + th.Category + " risks",
			SpecificControls: Controls(th.Category),
		})
	}
	return tm
}

// AttackSurfaces derives exposures from free-text vendor context. At most
// one surface is produced per populated field.
func AttackSurfaces(metadata *types.VendorMetadata) []types.AttackSurface {
	surfaces := []types.AttackSurface{}
	if metadata.Empty() {
		return surfaces
	}
	if d := metadata.DataStored; d != "" {
		surfaces = append(surfaces, types.AttackSurface{
			Surface:       "Data Storage",
			Description:   "Vendor stores: " + prefix(d, surfaceRunes) + "...",
			ExposureLevel: exposure(d, sensitiveData),
		})
	}
	if in := metadata.Integrations; in != "" {
		surfaces = append(surfaces, types.AttackSurface{
			Surface:       "System Integration",
			Description:   "Integration points: " + prefix(in, surfaceRunes) + "...",
			ExposureLevel: exposure(in, sensitiveIntegrated),
		})
	}
	if s := metadata.Services; s != "" {
		surfaces = append(surfaces, types.AttackSurface{
			Surface:       "Service Access",
			Description:   "Services provided: " + prefix(s, surfaceRunes) + "...",
			ExposureLevel: types.SeverityMedium,
		})
	}
	return surfaces
}

// Enrich attaches the threat model to an assessment and records how many
// public incidents were found.
func Enrich(a *types.RiskAssessment, incidents []types.WebIncident, metadata *types.VendorMetadata) {
	a.ThreatModel = Synthesize(a.Risks, incidents, metadata)
	a.PublicIncidentsFound = len(incidents)
}

func exposure(text string, terms []string) types.Severity {
	lower := strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return types.SeverityHigh
		}
	}
	return types.SeverityMedium
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
