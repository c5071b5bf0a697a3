// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"strconv"
	"strings"
)

// Document types produced by the loaders.
const (
	DocumentPDF     = "pdf"
	DocumentExcel   = "excel"
	DocumentUnknown = "unknown"
)

// ParsedDocument is the output of a document parser: page text and tables
// for PDFs, sheets for spreadsheets. Error is set when parsing failed,
// possibly after some pages were read.
type ParsedDocument struct {
	Type     string  `json:"type"`
	Filename string  `json:"filename"`
	Pages    []Page  `json:"pages,omitempty"`
	Tables   []Table `json:"tables,omitempty"`
	Sheets   []Sheet `json:"sheets,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Page holds the extracted text of one PDF page (1-based).
type Page struct {
	PageNum int    `json:"page_num"`
	Text    string `json:"text"`
}

// Table is a table found on a PDF page. Cells are raw JSON values.
type Table struct {
	Page       int     `json:"page"`
	TableIndex int     `json:"table_index"`
	Data       [][]any `json:"data"`
}

// Sheet is one spreadsheet tab.
type Sheet struct {
	SheetName string  `json:"sheet_name"`
	Data      [][]any `json:"data"`
	MaxRow    int     `json:"max_row,omitempty"`
	MaxCol    int     `json:"max_col,omitempty"`
}

// CellString renders a cell value as text. The second result is false for
// empty cells (nil, "", false, 0) and for values that are not scalars.
func CellString(cell any) (string, bool) {
	switch v := cell.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case float64:
		if v == 0 {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		if v == 0 {
			return "", false
		}
		return strconv.Itoa(v), true
	case int64:
		if v == 0 {
			return "", false
		}
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), v
	default:
		return "", false
	}
}

// RowText joins the non-empty cells of a row with single spaces.
func RowText(row []any) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if s, ok := CellString(cell); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
