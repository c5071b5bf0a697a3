// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package assessor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

type fakeWeb struct {
	result types.WebSearchResult
	calls  int
}

func (f *fakeWeb) Search(context.Context, string) types.WebSearchResult {
	f.calls++
	return f.result
}

type fakeTickets struct {
	tickets []types.TicketRecord
	project string
}

func (f *fakeTickets) SearchVendorTickets(_ context.Context, _, project string) []types.TicketRecord {
	f.project = project
	return f.tickets
}

// topicEmbedder puts texts about encryption on one axis and all others on
// a second axis.
type topicEmbedder struct {
	err   error
	calls int
}

func (e *topicEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if strings.Contains(strings.ToLower(t), "encrypt") {
			out[i] = []float32{1, 0}
		} else {
			out[i] = []float32{0, 1}
		}
	}
	return out, nil
}

var (
	fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	documents = []types.ParsedDocument{{
		Type:     types.DocumentPDF,
		Filename: "security.pdf",
		Pages: []types.Page{{
			PageNum: 1,
			Text:    "We encrypt all customer data at rest using AES-256 encryption. Multi-factor authentication is enforced for all administrator accounts.",
		}},
	}}

	questions = []types.Question{
		{ID: "Q1", Question: "Do you encrypt customer data at rest?", Category: "General", RowNum: 2},
		{ID: "Q2", Question: "Is there a documented vendor offboarding process?", Category: "General", RowNum: 3},
	}

	webResult = types.WebSearchResult{
		Controls: []types.WebControl{{
			Title: "Acme Trust", Snippet: "Acme is SOC 2 Type II certified", URL: "https://acme.com/trust",
			Keywords: []string{"soc 2"}, Confidence: types.ConfidenceHigh,
		}},
		Incidents: []types.WebIncident{{
			Title: "Acme breach", Snippet: "Attackers accessed records", URL: "https://news.example/acme",
			Keywords: []string{"breach"}, Year: "2023",
		}},
	}
)

func newTestAssessor(opts ...Option) *Assessor {
	a := New(opts...)
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestAssess_Lexical(t *testing.T) {
	web := &fakeWeb{result: webResult}
	a := newTestAssessor(WithWebSearch(web))

	res, err := a.Assess(context.Background(), Input{VendorName: "Acme", Questions: questions, Documents: documents}, Config{})
	require.NoError(t, err)

	assert.Equal(t, 1, web.calls)
	assert.Equal(t, 4, res.EvidenceCount, "two sentences, one web control, one incident")
	require.Len(t, res.Mappings, 2)
	assert.Equal(t, "Q1", res.Mappings[0].QuestionID)
	assert.NotEqual(t, types.ConfidenceNotFound, res.Mappings[0].Confidence)
	assert.Equal(t, "security.pdf (Page 1)", res.Mappings[0].Evidence[0].Source)
	assert.Equal(t, types.ConfidenceNotFound, res.Mappings[1].Confidence)

	a1 := res.Assessment
	_, err = uuid.Parse(a1.ID)
	assert.NoError(t, err)
	assert.Equal(t, fixedNow.UTC(), a1.GeneratedAt)
	assert.Equal(t, "Acme", a1.VendorName)
	assert.Equal(t, 1, a1.PublicIncidentsFound)
	assert.Equal(t, "STRIDE", a1.ThreatModel.Framework)
	require.NotEmpty(t, a1.ThreatModel.Threats)
	assert.Equal(t, "Historical Incident", a1.ThreatModel.Threats[len(a1.ThreatModel.Threats)-1].Category)
	assert.Equal(t, 2, a1.Summary.TotalQuestions)

	assert.Equal(t, "Acme", res.Overview.VendorName)
	assert.False(t, res.PolicyViolation)
	assert.Nil(t, res.Jira)
}

func TestAssess_PreloadedWebSkipsSearch(t *testing.T) {
	web := &fakeWeb{result: webResult}
	a := newTestAssessor(WithWebSearch(web))

	empty := types.WebSearchResult{}
	res, err := a.Assess(context.Background(), Input{VendorName: "Acme", Questions: questions, Web: &empty}, Config{})
	require.NoError(t, err)
	assert.Zero(t, web.calls)
	assert.Zero(t, res.Assessment.PublicIncidentsFound)
	assert.Zero(t, res.EvidenceCount)
}

func TestAssess_Embeddings(t *testing.T) {
	emb := &topicEmbedder{}
	a := newTestAssessor(WithEmbedder(emb))

	res, err := a.Assess(context.Background(), Input{VendorName: "Acme", Questions: questions, Documents: documents}, Config{})
	require.NoError(t, err)

	assert.Equal(t, 1, emb.calls)
	assert.Equal(t, types.ConfidenceHigh, res.Mappings[0].Confidence)
	assert.True(t, strings.HasPrefix(res.Mappings[0].Answer, "Yes - We encrypt all customer data"))
}

func TestAssess_EmbeddingFailureFallsBack(t *testing.T) {
	emb := &topicEmbedder{err: errors.New("quota exceeded")}
	a := newTestAssessor(WithEmbedder(emb))

	res, err := a.Assess(context.Background(), Input{VendorName: "Acme", Questions: questions, Documents: documents}, Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, emb.calls)
	assert.NotEqual(t, types.ConfidenceHigh, res.Mappings[0].Confidence, "lexical overlap stays below the high tier")
}

func TestAssess_Tickets(t *testing.T) {
	tickets := &fakeTickets{tickets: []types.TicketRecord{{
		Key: "SEC-7",
		Fields: types.TicketFields{
			Summary:  "Acme security risk review",
			Priority: types.NamedField{Name: "High"},
			Labels:   []string{"acme-saas"},
		},
	}}}
	md := &types.VendorMetadata{VendorName: "Acme", DataStored: "Customer PII", Services: "Email"}
	a := newTestAssessor(WithTickets(tickets, "SEC"))

	res, err := a.Assess(context.Background(), Input{VendorName: "Acme", Questions: questions, Metadata: md}, Config{})
	require.NoError(t, err)

	assert.Equal(t, "SEC", tickets.project)
	require.NotNil(t, res.Jira)
	assert.Equal(t, "HIGH", res.Jira.OverallRiskLevel)
	require.NotNil(t, res.Metadata)
	assert.Equal(t, "Email, acme-saas", res.Metadata.Services)
	assert.Equal(t, 1, res.Metadata.SecurityIssuesCount)
	assert.Equal(t, "Email", md.Services, "caller metadata is not modified")

	require.NotEmpty(t, res.Assessment.ThreatModel.AttackSurfaces)
	assert.Equal(t, "Data Storage", res.Assessment.ThreatModel.AttackSurfaces[0].Surface)
}

func TestAssess_PolicyViolation(t *testing.T) {
	a := newTestAssessor()
	in := Input{VendorName: "Acme", Questions: questions}

	res, err := a.Assess(context.Background(), in, Config{FailOnRisk: types.RiskLevelHigh})
	require.NoError(t, err)
	assert.Equal(t, types.RiskLevelCritical, res.Assessment.OverallRisk)
	assert.True(t, res.PolicyViolation)

	res, err = a.Assess(context.Background(), Input{VendorName: "Acme"}, Config{FailOnRisk: types.RiskLevelLow})
	require.NoError(t, err)
	assert.Equal(t, types.RiskLevelUnknown, res.Assessment.OverallRisk)
	assert.False(t, res.PolicyViolation)
}

func TestAssess_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAssessor().Assess(ctx, Input{VendorName: "Acme", Questions: questions}, Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestViolates(t *testing.T) {
	tests := []struct {
		level, limit types.RiskLevel
		want         bool
	}{
		{types.RiskLevelCritical, types.RiskLevelHigh, true},
		{types.RiskLevelHigh, types.RiskLevelHigh, true},
		{types.RiskLevelMedium, types.RiskLevelHigh, false},
		{types.RiskLevelLow, types.RiskLevelLow, true},
		{types.RiskLevelUnknown, types.RiskLevelLow, false},
		{types.RiskLevelCritical, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.level)+"/"+string(tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, Violates(tt.level, tt.limit))
		})
	}
}
