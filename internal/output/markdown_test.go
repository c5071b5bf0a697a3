// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonial-oss/vendor-assess/internal/assessor"
	"github.com/bonial-oss/vendor-assess/internal/types"
)

func TestWriteMarkdown_Sections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, makeTestResult()))
	output := buf.String()

	assert.True(t, strings.HasPrefix(output, "# Vendor Risk Assessment Report\n"))
	assertOrder(t, output,
		"## 1. Vendor Overview",
		"## 2. Data in Scope",
		"## 3. Executive Summary",
		"## 4. Public Security Incidents",
		"## 5. Key Risks",
		"## 6. Threat Modeling",
		"## 7. Recommendations",
		"## 8. Confidence Distribution",
		"## 9. Appendix: Sources",
	)
}

func TestWriteMarkdown_Content(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, makeTestResult()))
	output := buf.String()

	for _, expected := range []string{
		"**Vendor Name:** Acme",
		"**Description:** Acme provides transactional email delivery.",
		"- Transactional email delivery",
		"**Data Stored by Vendor:**\nCustomer PII",
		"- Salesforce",
		"- Email addresses",
		"**Overall Risk Level:** MEDIUM RISK",
		"**Risk Score:** 55.6/100",
		"**Assessment Date:** 2026-05-01",
		"- **Insufficient Evidence:** 1 controls",
		"- **Public Security Incidents Found:** 1",
		"### Incident 1: Acme breach",
		"**Year:** 2023",
		"**Source:** https://news.example/acme",
		"### Risk 1: HIGH - Vendor Management",
		"- Request documentation",
		"**Framework:** STRIDE",
		"#### Data Storage (Exposure: HIGH)",
		"**Gaps:** g1, g2\n",
		"   - Controls: c1, c2, c3\n",
		"### 1. [HIGH] Request vendor management documentation",
		"**Questions to Follow-up:** Q3",
		"| HIGH | 1 | 33.3% |",
		"| NOT_FOUND | 1 | 33.3% |",
		"1. [Acme Trust Center](https://acme.com/trust)",
		"- security.pdf\n",
		"- controls.xlsx\n",
	} {
		assert.Contains(t, output, expected)
	}

	assert.NotContains(t, output, "| LOW |", "absent tiers are not listed")
	assert.NotContains(t, output, "acme.com/trust?a=1", "web sources are not document evidence")
}

func TestWriteMarkdown_ThreatsGroupedByCategory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, makeTestResult()))
	output := buf.String()

	assert.Equal(t, 1, strings.Count(output, "#### Elevation of Privilege"))
	assertOrder(t, output,
		"#### Elevation of Privilege",
		"Third-party access abuse",
		"Stale vendor accounts",
		"#### Historical Incident",
	)
}

func TestWriteMarkdown_NoIncidents(t *testing.T) {
	res := makeTestResult()
	res.Web = types.WebSearchResult{}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, res))
	output := buf.String()
	assert.Contains(t, output, "No public security incidents identified")
	assert.NotContains(t, output, "### Public Sources")
}

func TestWriteMarkdown_IncidentLimit(t *testing.T) {
	res := makeTestResult()
	res.Web.Incidents = make([]types.WebIncident, 7)
	for i := range res.Web.Incidents {
		res.Web.Incidents[i] = types.WebIncident{Title: "breach", Year: "2024"}
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, res))
	output := buf.String()
	assert.Contains(t, output, "**7 security incident(s)")
	assert.Contains(t, output, "### Incident 5:")
	assert.NotContains(t, output, "### Incident 6:")
}

func TestWriteMarkdown_MissingContext(t *testing.T) {
	res := &assessor.Result{Assessment: &types.RiskAssessment{VendorName: "Acme", OverallRisk: types.RiskLevelUnknown}}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, res))
	output := buf.String()
	assert.Contains(t, output, "**Vendor Name:** Acme")
	assert.Contains(t, output, "**Services Provided:** Not provided")
	assert.Contains(t, output, "**Data Stored by Vendor:** Not provided")
	assert.Contains(t, output, "**Assessment Date:** Unknown")
	assert.Contains(t, output, "**Risk Score:** 0.0/100")
}

func TestDocumentSources(t *testing.T) {
	res := makeTestResult()
	res.Mappings[1].Evidence = append(res.Mappings[1].Evidence, scored("security.pdf (Page 4)", types.EvidenceControlStatement, 0.4))
	assert.Equal(t, []string{"security.pdf", "controls.xlsx"}, documentSources(res.Mappings))
}
