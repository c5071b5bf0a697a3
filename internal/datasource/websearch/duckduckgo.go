// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	duckDuckGoURL = "https://html.duckduckgo.com/html/"
	userAgent     = "Mozilla/5.0 (compatible; vendor-assess)"
)

// DuckDuckGo scrapes the DuckDuckGo HTML results page. It needs no API key.
type DuckDuckGo struct {
	endpoint string
}

// NewDuckDuckGo creates a DuckDuckGo provider. An empty endpoint selects
// the public HTML endpoint.
func NewDuckDuckGo(endpoint string) *DuckDuckGo {
	if endpoint == "" {
		endpoint = duckDuckGoURL
	}
	return &DuckDuckGo{endpoint: endpoint}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]types.SearchHit, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building duckduckgo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// 202 is returned when the caller is rate limited.
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d from duckduckgo", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("parsing duckduckgo results: %w", err)
	}
	return parseDuckDuckGo(doc, maxResults), nil
}

func parseDuckDuckGo(doc *goquery.Document, maxResults int) []types.SearchHit {
	hits := []types.SearchHit{}
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		href, _ := link.Attr("href")
		target := resultURL(href)
		if target == "" {
			return true
		}
		hits = append(hits, types.SearchHit{
			Title:   strings.TrimSpace(link.Text()),
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
			URL:     target,
		})
		return len(hits) < maxResults
	})
	return hits
}

// resultURL unwraps the redirect links of the HTML endpoint
// (//duckduckgo.com/l/?uddg=<target>) and drops ad redirects.
func resultURL(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return ""
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") {
		if u.Path != "/l/" {
			return ""
		}
		return u.Query().Get("uddg")
	}
	return u.String()
}
