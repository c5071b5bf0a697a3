// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRecord_PlainDescription(t *testing.T) {
	data := []byte(`{
		"key": "SEC-1",
		"fields": {
			"summary": "Acme security review",
			"description": "SOC 2 report received",
			"status": {"name": "Done"},
			"priority": {"name": "High"},
			"labels": ["vendor", "saas"]
		}
	}`)

	var rec TicketRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "SEC-1", rec.Key)
	assert.Equal(t, "Done", rec.Fields.Status.Name)
	assert.Equal(t, "High", rec.Fields.Priority.Name)
	assert.Equal(t, "SOC 2 report received", rec.Fields.DescriptionText())
}

func TestTicketRecord_ADFDescription(t *testing.T) {
	data := []byte(`{
		"key": "SEC-2",
		"fields": {
			"summary": "Acme privacy review",
			"description": {
				"type": "doc",
				"version": 1,
				"content": [
					{"type": "paragraph", "content": [{"type": "text", "text": "Processes PII"}]},
					{"type": "paragraph", "content": [{"type": "text", "text": "under GDPR"}]}
				]
			},
			"status": null,
			"priority": null,
			"labels": []
		}
	}`)

	var rec TicketRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "Processes PII under GDPR", rec.Fields.DescriptionText())
	assert.Empty(t, rec.Fields.Status.Name)
	assert.Empty(t, rec.Fields.Priority.Name)
}

func TestTicketRecord_NoDescription(t *testing.T) {
	var rec TicketRecord
	require.NoError(t, json.Unmarshal([]byte(`{"key": "SEC-3", "fields": {"summary": "x", "description": null}}`), &rec))
	assert.Empty(t, rec.Fields.DescriptionText())
}
