// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package websearch finds public information about a vendor's security
// controls and past incidents.
package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bonial-oss/vendor-assess/internal/cache"
	"github.com/bonial-oss/vendor-assess/internal/types"
)

// Provider runs a single web search.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]types.SearchHit, error)
}

// Kind says how the hits of a query are classified.
type Kind int

const (
	KindControl Kind = iota
	KindIncident
)

// Query is one of the searches run per vendor.
type Query struct {
	Text       string
	MaxResults int
	Kind       Kind
}

// Queries returns the searches run for a vendor: three looking for
// controls and two looking for incidents.
func Queries(vendor string) []Query {
	return []Query{
		{Text: fmt.Sprintf(`"%s" (trust center OR security OR compliance)`, vendor), MaxResults: 5, Kind: KindControl},
		{Text: fmt.Sprintf(`"%s" (SOC 2 OR "ISO 27001" OR "ISO 27018")`, vendor), MaxResults: 5, Kind: KindControl},
		{Text: fmt.Sprintf(`"%s" (encryption OR "data protection" OR "security features")`, vendor), MaxResults: 5, Kind: KindControl},
		{Text: fmt.Sprintf(`"%s" (breach OR hacked OR "data leak") 2020..2026`, vendor), MaxResults: 8, Kind: KindIncident},
		{Text: fmt.Sprintf(`"%s" (vulnerability OR CVE OR "security flaw")`, vendor), MaxResults: 5, Kind: KindIncident},
	}
}

// Source searches the web through a chain of providers, caching raw hits
// per query.
type Source struct {
	providers  []Provider
	cache      cache.Cache
	skipUpdate bool
	logger     *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithCache caches raw hits per query. skipUpdate serves any cached entry
// without checking freshness.
func WithCache(c cache.Cache, skipUpdate bool) Option {
	return func(s *Source) {
		s.cache = c
		s.skipUpdate = skipUpdate
	}
}

// WithLogger sets the logger for degraded searches.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) { s.logger = l }
}

// NewSource creates a Source. Providers are tried in order and the first
// one returning hits wins.
func NewSource(providers []Provider, opts ...Option) *Source {
	s := &Source{providers: providers, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers returns the provider names in the order they are tried.
func (s *Source) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Search runs every vendor query and classifies the hits. Failing queries
// contribute nothing; the result is never an error.
func (s *Source) Search(ctx context.Context, vendor string) types.WebSearchResult {
	result := types.WebSearchResult{Controls: []types.WebControl{}, Incidents: []types.WebIncident{}}
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return result
	}

	var controls []types.WebControl
	var incidents []types.WebIncident
	for _, q := range Queries(vendor) {
		hits, err := s.Load(ctx, q)
		if err != nil {
			s.logger.Warn("web search failed", "query", q.Text, "error", err)
			continue
		}
		switch q.Kind {
		case KindControl:
			controls = append(controls, ExtractControls(hits, vendor)...)
		case KindIncident:
			incidents = append(incidents, ExtractIncidents(hits, vendor)...)
		}
	}

	result.Controls = dedupe(controls, func(c types.WebControl) string { return c.URL })
	result.Incidents = dedupe(incidents, func(i types.WebIncident) string { return i.URL })
	s.logger.Info("web search complete", "vendor", vendor, "controls", len(result.Controls), "incidents", len(result.Incidents))
	return result
}

// Load returns the hits for a query, using the cache when appropriate.
//
// Logic:
//  1. If skipUpdate and cache exists -> load from cache.
//  2. If cache is fresh -> load from cache.
//  3. Query the providers.
//  4. If the query succeeds -> store in cache, return.
//  5. If it fails and cache exists -> warn, load stale cache.
//  6. If it fails and no cache -> return error.
func (s *Source) Load(ctx context.Context, q Query) ([]types.SearchHit, error) {
	key := fmt.Sprintf("websearch:%d:%s", q.MaxResults, q.Text)

	if s.cache != nil {
		if s.skipUpdate && s.cache.Exists(ctx, key) {
			return s.loadFromCache(ctx, key)
		}
		if s.cache.IsFresh(ctx, key) {
			return s.loadFromCache(ctx, key)
		}
	}

	hits, err := s.query(ctx, q)
	if err == nil {
		if s.cache != nil {
			if data, mErr := json.Marshal(hits); mErr == nil {
				if storeErr := s.cache.Store(ctx, key, data); storeErr != nil {
					s.logger.Warn("storing search results in cache", "error", storeErr)
				}
			}
		}
		return hits, nil
	}

	if s.cache != nil && s.cache.Exists(ctx, key) {
		s.logger.Warn("web search failed, using stale cache", "query", q.Text, "error", err)
		return s.loadFromCache(ctx, key)
	}
	return nil, err
}

func (s *Source) loadFromCache(ctx context.Context, key string) ([]types.SearchHit, error) {
	data, err := s.cache.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading search results from cache: %w", err)
	}
	var hits []types.SearchHit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, fmt.Errorf("unmarshaling cached search results: %w", err)
	}
	return hits, nil
}

// query tries each provider in turn. An error is returned only when every
// provider failed.
func (s *Source) query(ctx context.Context, q Query) ([]types.SearchHit, error) {
	if len(s.providers) == 0 {
		return nil, errors.New("no search provider configured")
	}
	var errs []error
	for _, p := range s.providers {
		hits, err := p.Search(ctx, q.Text, q.MaxResults)
		if err != nil {
			s.logger.Debug("search provider failed", "provider", p.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if len(hits) > 0 {
			s.logger.Debug("search provider returned results", "provider", p.Name(), "query", q.Text, "hits", len(hits))
			return hits, nil
		}
	}
	if len(errs) == len(s.providers) {
		return nil, errors.Join(errs...)
	}
	return []types.SearchHit{}, nil
}

// dedupe keeps the first entry per URL and drops entries without one.
func dedupe[T any](entries []T, url func(T) string) []T {
	seen := make(map[string]struct{}, len(entries))
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		u := url(e)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, e)
	}
	return out
}
