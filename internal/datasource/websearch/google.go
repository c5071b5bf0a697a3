// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package websearch

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

// googleMaxResults is the most results Custom Search returns per request.
const googleMaxResults = 10

// Google searches with the Custom Search JSON API.
type Google struct {
	svc      *customsearch.Service
	engineID string
}

// NewGoogle creates a Custom Search provider. endpoint overrides the API
// base URL and is empty outside tests.
func NewGoogle(ctx context.Context, apiKey, engineID, endpoint string) (*Google, error) {
	if apiKey == "" || engineID == "" {
		return nil, errors.New("google custom search requires an API key and a search engine id")
	}
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating custom search client: %w", err)
	}
	return &Google{svc: svc, engineID: engineID}, nil
}

func (g *Google) Name() string { return "google" }

func (g *Google) Search(ctx context.Context, query string, maxResults int) ([]types.SearchHit, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	res, err := g.svc.Cse.List().
		Cx(g.engineID).
		Q(query).
		Num(int64(min(maxResults, googleMaxResults))).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("custom search request: %w", err)
	}

	hits := make([]types.SearchHit, 0, len(res.Items))
	for _, item := range res.Items {
		hits = append(hits, types.SearchHit{Title: item.Title, Snippet: item.Snippet, URL: item.Link})
	}
	return hits, nil
}
