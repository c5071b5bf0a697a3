// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellString(t *testing.T) {
	tests := []struct {
		name   string
		cell   any
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"empty string", "", "", false},
		{"string", "Encryption", "Encryption", true},
		{"integer float", float64(42), "42", true},
		{"fraction", 2.5, "2.5", true},
		{"zero", float64(0), "", false},
		{"true", true, "true", true},
		{"false", false, "false", false},
		{"nested", map[string]any{"a": 1}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CellString(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRowText(t *testing.T) {
	assert.Equal(t, "Encryption Implemented 3", RowText([]any{"Encryption", nil, "Implemented", "", float64(3)}))
	assert.Equal(t, "", RowText(nil))
}

func TestParsedDocument_UnmarshalMixedCells(t *testing.T) {
	data := []byte(`{
		"type": "excel",
		"filename": "controls.xlsx",
		"sheets": [{"sheet_name": "Controls", "data": [["Control", "Status"], ["MFA", null], [7, true]]}]
	}`)

	var doc ParsedDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Sheets, 1)
	assert.Equal(t, "Controls", doc.Sheets[0].SheetName)
	assert.Equal(t, "MFA", RowText(doc.Sheets[0].Data[1]))
	assert.Equal(t, "7 true", RowText(doc.Sheets[0].Data[2]))
}
