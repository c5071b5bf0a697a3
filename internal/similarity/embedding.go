// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package similarity

import (
	"context"
	"fmt"
	"math"
)

// Embedder turns texts into vectors, one per input text in the same order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Embedding scores by cosine similarity of precomputed vectors. Texts that
// were not embedded up front are scored by the fallback.
type Embedding struct {
	vectors  map[string][]float32
	fallback Scorer
}

// NewEmbedding embeds texts once and returns a scorer over the result.
// Scoring itself performs no I/O. Duplicate texts are embedded once.
func NewEmbedding(ctx context.Context, embedder Embedder, texts []string) (*Embedding, error) {
	unique := make([]string, 0, len(texts))
	seen := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	vecs, err := embedder.Embed(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts: %w", len(unique), err)
	}
	if len(vecs) != len(unique) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(unique))
	}

	vectors := make(map[string][]float32, len(unique))
	for i, t := range unique {
		if len(vecs[i]) > 0 {
			vectors[t] = vecs[i]
		}
	}
	return &Embedding{vectors: vectors, fallback: Lexical{}}, nil
}

// Score implements Scorer.
func (e *Embedding) Score(question, evidenceText string) float64 {
	qv, ok := e.vectors[question]
	if !ok {
		return e.fallback.Score(question, evidenceText)
	}
	ev, ok := e.vectors[evidenceText]
	if !ok || len(ev) != len(qv) {
		return e.fallback.Score(question, evidenceText)
	}
	return clamp(cosine(qv, ev))
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
