// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

// LoadMetadata reads analyst-supplied vendor context from yaml (or json).
func LoadMetadata(path string) (*types.VendorMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vendor metadata: %w", err)
	}
	var md types.VendorMetadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parsing vendor metadata: %w", err)
	}
	return &md, nil
}

// LoadWebResults reads previously collected web search results, so an
// assessment can be rerun without calling the search providers.
func LoadWebResults(path string) (types.WebSearchResult, error) {
	var res types.WebSearchResult
	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading web results: %w", err)
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, fmt.Errorf("parsing web results: %w", err)
	}
	return res, nil
}

// LoadTickets reads Jira issues from a file holding either a list of
// issues or a raw search response ({"issues": [...]}).
func LoadTickets(path string) ([]types.TicketRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tickets: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tickets []types.TicketRecord
		if err := json.Unmarshal(trimmed, &tickets); err != nil {
			return nil, fmt.Errorf("parsing tickets: %w", err)
		}
		return tickets, nil
	}

	var resp struct {
		Issues []types.TicketRecord `json:"issues"`
	}
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("parsing tickets: %w", err)
	}
	if resp.Issues == nil {
		resp.Issues = []types.TicketRecord{}
	}
	return resp.Issues, nil
}
