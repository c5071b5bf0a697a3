// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package risk

import (
	"math"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

// Score computes the evidence coverage score (0.0–100.0) and the overall
// risk level. Each mapping contributes its confidence weight out of a
// possible 3. No mappings yields 0 and UNKNOWN.
func Score(mappings []types.QuestionMapping) (float64, types.RiskLevel) {
	if len(mappings) == 0 {
		return 0, types.RiskLevelUnknown
	}
	var total int
	for _, m := range mappings {
		total += weight(m.Confidence)
	}
	score := float64(total) / float64(3*len(mappings)) * 100.0
	return math.Round(score*10) / 10, Level(score)
}

// Level maps a score to a risk level. Higher coverage means lower risk.
func Level(score float64) types.RiskLevel {
	switch {
	case score >= 70:
		return types.RiskLevelLow
	case score >= 50:
		return types.RiskLevelMedium
	case score >= 30:
		return types.RiskLevelHigh
	default:
		return types.RiskLevelCritical
	}
}

func weight(c types.Confidence) int {
	switch c {
	case types.ConfidenceHigh:
		return 3
	case types.ConfidenceMedium:
		return 2
	case types.ConfidenceLow:
		return 1
	default:
		return 0
	}
}
