// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bonial-oss/vendor-assess/internal/assessor"
	"github.com/bonial-oss/vendor-assess/internal/cache"
	"github.com/bonial-oss/vendor-assess/internal/config"
	"github.com/bonial-oss/vendor-assess/internal/datasource/gemini"
	"github.com/bonial-oss/vendor-assess/internal/datasource/jira"
	"github.com/bonial-oss/vendor-assess/internal/datasource/websearch"
)

// setupLogger builds the process logger. Logs go to w (stderr) so they
// never mix with a report written to stdout.
func setupLogger(w io.Writer, format, level string) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// collaborators holds the external services of one run. Any of them may
// be nil when disabled or not configured.
type collaborators struct {
	web      *websearch.Source
	jira     *jira.Source
	embedder *gemini.Embedder
	closers  []io.Closer
}

func setupCollaborators(ctx context.Context, cfg *config.Config, opts *Options, logger *slog.Logger) (*collaborators, error) {
	deps := &collaborators{}

	if !opts.NoWebSearch && opts.WebResults == "" {
		web, err := deps.webSearch(ctx, cfg, opts.SkipCacheUpdate, logger)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.web = web
	}

	if !opts.NoJira {
		if cfg.Jira.URL == "" {
			logger.Info("jira not configured, skipping ticket history")
		} else {
			deps.jira = jira.NewSource(jira.Config{
				URL:      cfg.Jira.URL,
				Email:    cfg.Jira.Email,
				APIToken: cfg.Jira.APIToken,
			}, logger.With("source", "jira"))
		}
	}

	if !opts.NoEmbeddings {
		switch {
		case cfg.Gemini.APIKey == "":
			logger.Info("GEMINI_API_KEY not set, using lexical similarity")
		default:
			emb, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
			if err != nil {
				logger.Warn("embeddings unavailable, using lexical similarity", "error", err)
				break
			}
			deps.embedder = emb
			deps.closers = append(deps.closers, emb)
		}
	}

	return deps, nil
}

// webSearch builds the provider chain (DuckDuckGo, Google, then Bing)
// behind a Redis or file cache. It returns nil when no provider is
// configured.
func (d *collaborators) webSearch(ctx context.Context, cfg *config.Config, skipUpdate bool, logger *slog.Logger) (*websearch.Source, error) {
	var providers []websearch.Provider
	if !cfg.DuckDuckGo.Disabled {
		providers = append(providers, websearch.NewDuckDuckGo(cfg.DuckDuckGo.Endpoint))
	}
	if cfg.Google.APIKey != "" && cfg.Google.SearchEngineID != "" {
		g, err := websearch.NewGoogle(ctx, cfg.Google.APIKey, cfg.Google.SearchEngineID, cfg.Google.Endpoint)
		if err != nil {
			logger.Warn("google search unavailable", "error", err)
		} else {
			providers = append(providers, g)
		}
	}
	if cfg.Bing.APIKey != "" {
		b, err := websearch.NewBing(cfg.Bing.APIKey, cfg.Bing.Endpoint)
		if err != nil {
			logger.Warn("bing search unavailable", "error", err)
		} else {
			providers = append(providers, b)
		}
	}
	if len(providers) == 0 {
		logger.Warn("no web search provider configured, public information is unavailable")
		return nil, nil
	}

	c, err := d.cache(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	src := websearch.NewSource(providers,
		websearch.WithCache(c, skipUpdate),
		websearch.WithLogger(logger.With("source", "websearch")),
	)
	logger.Debug("web search enabled", "providers", src.Providers())
	return src, nil
}

// cache returns the Redis cache when an address is configured and
// reachable, and the file cache otherwise.
func (d *collaborators) cache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, error) {
	if cfg.Redis.Addr != "" {
		r, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			d.closers = append(d.closers, r)
			logger.Debug("caching search results in redis", "addr", cfg.Redis.Addr)
			return r, nil
		}
		logger.Warn("redis unavailable, caching search results on disk", "addr", cfg.Redis.Addr, "error", err)
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir(); err != nil {
			return nil, fmt.Errorf("determining cache directory: %w", err)
		}
	}
	logger.Debug("caching search results on disk", "dir", dir)
	return cache.New(dir), nil
}

func (d *collaborators) options(cfg *config.Config, logger *slog.Logger) []assessor.Option {
	opts := []assessor.Option{assessor.WithLogger(logger)}
	if d.web != nil {
		opts = append(opts, assessor.WithWebSearch(d.web))
	}
	if d.jira != nil {
		opts = append(opts, assessor.WithTickets(d.jira, cfg.Jira.Project))
	}
	if d.embedder != nil {
		opts = append(opts, assessor.WithEmbedder(d.embedder))
	}
	return opts
}

// Close releases network clients.
func (d *collaborators) Close() {
	for _, c := range d.closers {
		_ = c.Close()
	}
}
