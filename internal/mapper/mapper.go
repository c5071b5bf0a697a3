// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package mapper matches library evidence to questionnaire questions.
package mapper

import (
	"context"
	"runtime"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/bonial-oss/vendor-assess/internal/evidence"
	"github.com/bonial-oss/vendor-assess/internal/similarity"
	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	// DefaultThreshold is the minimum similarity for evidence to be retained.
	DefaultThreshold = 0.3
	// MaxEvidence caps the evidence attached to a mapping.
	MaxEvidence = 5

	highScore   = 0.6
	mediumScore = 0.4
	answerRunes = 200
)

// Answers and gap notes attached to mappings.
const (
	AnswerPartial      = "Partially Addressed - See evidence"
	AnswerInsufficient = "Insufficient Evidence"

	GapNoEvidence   = "No evidence found in vendor documentation"
	GapWeakEvidence = "Evidence is weak or indirect"
	GapSingleSource = "Single source only - requires corroboration"
)

// Config holds mapping options.
type Config struct {
	// Threshold is the minimum score for evidence to be retained.
	// Zero selects DefaultThreshold.
	Threshold float64
	// Workers bounds concurrent question mapping. Zero selects NumCPU.
	Workers int
}

// Mapper maps questions to evidence using a Scorer.
type Mapper struct {
	scorer    similarity.Scorer
	threshold float64
	workers   int
}

// New creates a Mapper. A nil scorer selects lexical scoring.
func New(scorer similarity.Scorer, cfg Config) *Mapper {
	if scorer == nil {
		scorer = similarity.Lexical{}
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Mapper{scorer: scorer, threshold: threshold, workers: workers}
}

// Map produces one mapping per question, in question order. Questions are
// mapped concurrently; the only error is cancellation of ctx.
func (m *Mapper) Map(ctx context.Context, questions []types.Question, lib *evidence.Library) ([]types.QuestionMapping, error) {
	mappings := make([]types.QuestionMapping, len(questions))
	items := lib.Items()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i := range questions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mappings[i] = m.mapQuestion(questions[i], items)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mappings, nil
}

// MapQuestion maps a single question against the library.
func (m *Mapper) MapQuestion(q types.Question, lib *evidence.Library) types.QuestionMapping {
	return m.mapQuestion(q, lib.Items())
}

func (m *Mapper) mapQuestion(q types.Question, items []types.EvidenceItem) types.QuestionMapping {
	var retained []types.ScoredEvidence
	for _, item := range items {
		score := m.scorer.Score(q.Question, item.Text)
		if score >= m.threshold {
			retained = append(retained, types.ScoredEvidence{EvidenceItem: item, SimilarityScore: score})
		}
	}
	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].SimilarityScore > retained[j].SimilarityScore
	})

	top := retained
	if len(top) > MaxEvidence {
		top = top[:MaxEvidence]
	}
	if top == nil {
		top = []types.ScoredEvidence{}
	}

	mapping := types.QuestionMapping{
		QuestionID: q.ID,
		Question:   q.Question,
		Category:   q.Category,
		Evidence:   top,
	}
	mapping.Answer, mapping.Confidence = answer(top)
	mapping.Gaps = gaps(mapping.TopScore(), len(retained))
	return mapping
}

// answer derives the answer text and confidence from the best evidence.
func answer(evidence []types.ScoredEvidence) (string, types.Confidence) {
	if len(evidence) == 0 {
		return AnswerInsufficient, types.ConfidenceNotFound
	}
	best := evidence[0]
	switch {
	case best.SimilarityScore > highScore:
		return "Yes - " + truncateRunes(best.Text, answerRunes) + "...", types.ConfidenceHigh
	case best.SimilarityScore > mediumScore:
		return AnswerPartial, types.ConfidenceMedium
	default:
		return AnswerInsufficient, types.ConfidenceLow
	}
}

// gaps lists follow-up notes. Each check is independent of the others.
func gaps(topScore float64, retained int) []string {
	out := []string{}
	if retained == 0 {
		out = append(out, GapNoEvidence)
	}
	if topScore < mediumScore {
		out = append(out, GapWeakEvidence)
	}
	if retained < 2 {
		out = append(out, GapSingleSource)
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
