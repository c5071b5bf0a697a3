// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package assessor runs the assessment pipeline: evidence extraction,
// question mapping, risk aggregation, threat modeling and the vendor
// overview.
package assessor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bonial-oss/vendor-assess/internal/datasource/jira"
	"github.com/bonial-oss/vendor-assess/internal/evidence"
	"github.com/bonial-oss/vendor-assess/internal/mapper"
	"github.com/bonial-oss/vendor-assess/internal/overview"
	"github.com/bonial-oss/vendor-assess/internal/risk"
	"github.com/bonial-oss/vendor-assess/internal/similarity"
	"github.com/bonial-oss/vendor-assess/internal/threat"
	"github.com/bonial-oss/vendor-assess/internal/types"
)

// WebSearcher collects public information about a vendor. Implementations
// degrade to an empty result instead of failing.
type WebSearcher interface {
	Search(ctx context.Context, vendor string) types.WebSearchResult
}

// TicketSearcher finds a vendor's internal tickets. Implementations degrade
// to an empty result instead of failing.
type TicketSearcher interface {
	SearchVendorTickets(ctx context.Context, vendor, project string) []types.TicketRecord
}

// Assessor assesses a vendor from its documents, public information and
// ticket history. Every collaborator is optional.
type Assessor struct {
	web         WebSearcher
	tickets     TicketSearcher
	jiraProject string
	embedder    similarity.Embedder
	extractor   overview.Extractor
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures an Assessor.
type Option func(*Assessor)

// WithWebSearch looks up public controls and incidents for the vendor.
func WithWebSearch(s WebSearcher) Option {
	return func(a *Assessor) { a.web = s }
}

// WithTickets searches ticket history, restricted to project when set.
func WithTickets(s TicketSearcher, project string) Option {
	return func(a *Assessor) {
		a.tickets = s
		a.jiraProject = project
	}
}

// WithEmbedder enables semantic similarity. Without it, or when embedding
// fails, questions are matched lexically.
func WithEmbedder(e similarity.Embedder) Option {
	return func(a *Assessor) { a.embedder = e }
}

// WithOverview replaces the heuristic vendor overview extractor.
func WithOverview(x overview.Extractor) Option {
	return func(a *Assessor) { a.extractor = x }
}

// WithLogger sets the logger for pipeline progress.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assessor) { a.logger = l }
}

// New creates an Assessor.
func New(opts ...Option) *Assessor {
	a := &Assessor{
		extractor: overview.Heuristic{},
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Input holds what is known about the vendor before the run. Web and
// Tickets, when set, are used instead of querying the collaborators.
type Input struct {
	VendorName string
	Questions  []types.Question
	Documents  []types.ParsedDocument
	Metadata   *types.VendorMetadata
	Web        *types.WebSearchResult
	Tickets    []types.TicketRecord
}

// Config holds mapping and policy options.
type Config struct {
	Threshold float64
	Workers   int
	// FailOnRisk flags a policy violation when the overall risk is at
	// least this severe. Empty disables the check.
	FailOnRisk types.RiskLevel
}

// Result holds the assessment and everything it was derived from.
type Result struct {
	Assessment    *types.RiskAssessment   `json:"assessment"`
	Mappings      []types.QuestionMapping `json:"questionnaire"`
	Overview      types.VendorOverview    `json:"vendor_overview"`
	Metadata      *types.VendorMetadata   `json:"vendor_metadata,omitempty"`
	Web           types.WebSearchResult   `json:"web_search"`
	Jira          *types.JiraVendorData   `json:"jira,omitempty"`
	EvidenceCount int                     `json:"evidence_count"`

	Library         *evidence.Library `json:"-"`
	PolicyViolation bool              `json:"-"`
}

// Assess runs the pipeline. It fails only when ctx is canceled; missing
// or failing collaborators reduce the evidence available instead.
func (a *Assessor) Assess(ctx context.Context, in Input, cfg Config) (*Result, error) {
	lib := evidence.FromDocuments(in.Documents, a.logger)
	a.logger.Info("extracted document evidence", "documents", len(in.Documents), "items", lib.Len())

	web := a.webResults(ctx, in)
	lib = lib.With(evidence.FromWebSearch(web)...)
	a.logger.Info("collected web evidence", "controls", len(web.Controls), "incidents", len(web.Incidents))

	metadata, jiraData := a.vendorContext(ctx, in)

	scorer := a.scorer(ctx, in.Questions, lib)
	mappings, err := mapper.New(scorer, mapper.Config{Threshold: cfg.Threshold, Workers: cfg.Workers}).
		Map(ctx, in.Questions, lib)
	if err != nil {
		return nil, fmt.Errorf("mapping questions: %w", err)
	}

	assessment := risk.Aggregate(mappings)
	assessment.ID = uuid.NewString()
	assessment.GeneratedAt = a.now().UTC()
	assessment.VendorName = in.VendorName
	threat.Enrich(assessment, web.Incidents, metadata)

	ov := a.extractor.Extract(overview.Input{
		VendorName: in.VendorName,
		Web:        web,
		Evidence:   lib.Items(),
		Metadata:   metadata,
	})

	return &Result{
		Assessment:      assessment,
		Mappings:        mappings,
		Overview:        ov,
		Metadata:        metadata,
		Web:             web,
		Jira:            jiraData,
		EvidenceCount:   lib.Len(),
		Library:         lib,
		PolicyViolation: Violates(assessment.OverallRisk, cfg.FailOnRisk),
	}, nil
}

// Violates reports whether level is at least as severe as limit. An
// UNKNOWN level never violates.
func Violates(level, limit types.RiskLevel) bool {
	if limit == "" || level.Rank() == 0 {
		return false
	}
	return level.Rank() >= limit.Rank()
}

func (a *Assessor) webResults(ctx context.Context, in Input) types.WebSearchResult {
	switch {
	case in.Web != nil:
		return *in.Web
	case a.web != nil && in.VendorName != "":
		return a.web.Search(ctx, in.VendorName)
	default:
		return types.WebSearchResult{Controls: []types.WebControl{}, Incidents: []types.WebIncident{}}
	}
}

// vendorContext merges ticket findings into a copy of the metadata.
func (a *Assessor) vendorContext(ctx context.Context, in Input) (*types.VendorMetadata, *types.JiraVendorData) {
	var md *types.VendorMetadata
	if in.Metadata != nil {
		c := *in.Metadata
		md = &c
	}

	tickets := in.Tickets
	if tickets == nil && a.tickets != nil && in.VendorName != "" {
		tickets = a.tickets.SearchVendorTickets(ctx, in.VendorName, a.jiraProject)
	}
	if tickets == nil {
		return md, nil
	}

	data := jira.Summarize(in.VendorName, tickets)
	a.logger.Info("summarized vendor tickets", "tickets", len(tickets), "risk_level", data.OverallRiskLevel)
	if md == nil {
		md = &types.VendorMetadata{VendorName: in.VendorName}
	}
	merged := jira.MergeMetadata(*md, data)
	return &merged, &data
}

func (a *Assessor) scorer(ctx context.Context, questions []types.Question, lib *evidence.Library) similarity.Scorer {
	if a.embedder == nil {
		return similarity.Lexical{}
	}

	texts := make([]string, 0, len(questions)+lib.Len())
	for _, q := range questions {
		texts = append(texts, q.Question)
	}
	for i := range lib.Len() {
		texts = append(texts, lib.At(i).Text)
	}

	emb, err := similarity.NewEmbedding(ctx, a.embedder, texts)
	if err != nil {
		a.logger.Warn("embeddings unavailable, using lexical similarity", "error", err)
		return similarity.Lexical{}
	}
	return emb
}
