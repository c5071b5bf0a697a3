// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

const probeSize = 512

// LoadDocuments parses vendor documents from disk. A file that cannot be
// read is an error; a file that can be read but not parsed yields a
// document carrying the parse error so the rest of the batch still counts.
func LoadDocuments(paths []string) ([]types.ParsedDocument, error) {
	var docs []types.ParsedDocument
	for _, path := range paths {
		loaded, err := LoadDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}
	return docs, nil
}

// LoadDocument parses one file. JSON files hold already parsed documents
// (a single object or a list) and may yield several.
func LoadDocument(path string) ([]types.ParsedDocument, error) {
	head, err := readHead(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	name := filepath.Base(path)
	switch format := Detect(path, head); format {
	case FormatJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		docs, err := ParseDocumentsJSON(data)
		if err != nil {
			return []types.ParsedDocument{failed(name, err)}, nil
		}
		return docs, nil
	case FormatPDF:
		return []types.ParsedDocument{parsePDF(path)}, nil
	case FormatXLSX:
		return []types.ParsedDocument{parseExcel(path)}, nil
	default:
		ext := strings.ToLower(filepath.Ext(path))
		return []types.ParsedDocument{failed(name, fmt.Errorf("unsupported file type: %q", ext))}, nil
	}
}

// ParseDocumentsJSON decodes parsed-document JSON, either one document or
// a list of them.
func ParseDocumentsJSON(data []byte) ([]types.ParsedDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []types.ParsedDocument
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("parsing document list: %w", err)
		}
		return docs, nil
	}
	var doc types.ParsedDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return []types.ParsedDocument{doc}, nil
}

func failed(name string, err error) types.ParsedDocument {
	return types.ParsedDocument{Type: types.DocumentUnknown, Filename: name, Error: err.Error()}
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	head := make([]byte, probeSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// parsePDF extracts the plain text of every page. Tables are not
// recovered from PDFs; pages that fail keep the text read so far.
func parsePDF(path string) (doc types.ParsedDocument) {
	doc = types.ParsedDocument{Type: types.DocumentPDF, Filename: filepath.Base(path)}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc.Error = fmt.Sprintf("reading pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		doc.Error = fmt.Sprintf("opening pdf: %v", err)
		return doc
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			doc.Error = fmt.Sprintf("page %d: %v", i, err)
			return doc
		}
		doc.Pages = append(doc.Pages, types.Page{PageNum: i, Text: text})
	}
	return doc
}

// parseExcel reads every sheet, dropping rows with no values.
func parseExcel(path string) types.ParsedDocument {
	doc := types.ParsedDocument{Type: types.DocumentExcel, Filename: filepath.Base(path)}

	f, err := excelize.OpenFile(path)
	if err != nil {
		doc.Error = fmt.Sprintf("opening workbook: %v", err)
		return doc
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			doc.Error = fmt.Sprintf("sheet %q: %v", name, err)
			continue
		}
		doc.Sheets = append(doc.Sheets, sheetFromRows(name, rows))
	}
	return doc
}

// sheetFromRows pads every row to the sheet width with nil cells, since
// GetRows trims trailing empty cells.
func sheetFromRows(name string, rows [][]string) types.Sheet {
	sheet := types.Sheet{SheetName: name, Data: [][]any{}, MaxRow: len(rows)}
	for _, row := range rows {
		sheet.MaxCol = max(sheet.MaxCol, len(row))
	}
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		cells := make([]any, sheet.MaxCol)
		for i, v := range row {
			if v != "" {
				cells[i] = v
			}
		}
		sheet.Data = append(sheet.Data, cells)
	}
	return sheet
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
