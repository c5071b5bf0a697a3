// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

const (
	bingURL         = "https://api.bing.microsoft.com/v7.0/search"
	searchTimeout   = 10 * time.Second
	maxResponseSize = 5 * 1024 * 1024 // 5 MB
)

var httpClient = &http.Client{Timeout: searchTimeout}

// Bing searches with the Bing Web Search API.
type Bing struct {
	apiKey   string
	endpoint string
}

// NewBing creates a Bing provider. An empty endpoint selects the public API.
func NewBing(apiKey, endpoint string) (*Bing, error) {
	if apiKey == "" {
		return nil, errors.New("bing search requires an API key")
	}
	if endpoint == "" {
		endpoint = bingURL
	}
	return &Bing{apiKey: apiKey, endpoint: endpoint}, nil
}

func (b *Bing) Name() string { return "bing" }

type bingResponse struct {
	WebPages struct {
		Value []struct {
			Name    string `json:"name"`
			Snippet string `json:"snippet"`
			URL     string `json:"url"`
		} `json:"value"`
	} `json:"webPages"`
}

func (b *Bing) Search(ctx context.Context, query string, maxResults int) ([]types.SearchHit, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(maxResults))
	params.Set("textDecorations", "false")
	params.Set("textFormat", "HTML")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building bing request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", b.apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d from bing", resp.StatusCode)
	}

	var body bingResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding bing response: %w", err)
	}

	hits := make([]types.SearchHit, 0, len(body.WebPages.Value))
	for _, v := range body.WebPages.Value {
		hits = append(hits, types.SearchHit{Title: v.Name, Snippet: v.Snippet, URL: v.URL})
	}
	return hits, nil
}
