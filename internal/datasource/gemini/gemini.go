// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package gemini embeds text with the Gemini embedding API for semantic
// similarity scoring.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is the embedding model used when none is configured.
	DefaultModel = "text-embedding-004"
	// batchSize is the most texts the API accepts per batch request.
	batchSize = 100
)

// Embedder implements similarity.Embedder on top of the Gemini API.
type Embedder struct {
	client *genai.Client
	batch  func(ctx context.Context, texts []string) ([][]float32, error)
}

// New connects to Gemini with an API key.
func New(ctx context.Context, apiKey, model string) (*Embedder, error) {
	if apiKey == "" {
		return nil, errors.New("gemini embeddings require an API key")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	em := client.EmbeddingModel(model)
	return &Embedder{
		client: client,
		batch: func(ctx context.Context, texts []string) ([][]float32, error) {
			b := em.NewBatch()
			for _, t := range texts {
				b.AddContent(genai.Text(t))
			}
			res, err := em.BatchEmbedContents(ctx, b)
			if err != nil {
				return nil, err
			}
			out := make([][]float32, len(res.Embeddings))
			for i, e := range res.Embeddings {
				if e != nil {
					out[i] = e.Values
				}
			}
			return out, nil
		},
	}, nil
}

// Close releases the client.
func (e *Embedder) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

// Embed returns one vector per text, batching requests as the API requires.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		batch, err := e.batch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding texts %d-%d: %w", start, end-1, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embedding texts %d-%d: got %d vectors", start, end-1, len(batch))
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
