// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

// Library is an immutable, ordered collection of evidence items. Adding
// items yields a new Library; existing values are never changed, so one
// Library can be shared by concurrent readers.
type Library struct {
	items []types.EvidenceItem
}

// NewLibrary creates a library holding a copy of items.
func NewLibrary(items ...types.EvidenceItem) *Library {
	return &Library{items: append([]types.EvidenceItem(nil), items...)}
}

// With returns a new library with items appended after the existing ones.
func (l *Library) With(items ...types.EvidenceItem) *Library {
	merged := make([]types.EvidenceItem, 0, l.Len()+len(items))
	if l != nil {
		merged = append(merged, l.items...)
	}
	merged = append(merged, items...)
	return &Library{items: merged}
}

// Len returns the number of items. A nil library is empty.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns a copy of the items in library order.
func (l *Library) Items() []types.EvidenceItem {
	if l == nil {
		return nil
	}
	return append([]types.EvidenceItem(nil), l.items...)
}

// At returns the i-th item without copying the whole library.
func (l *Library) At(i int) types.EvidenceItem {
	return l.items[i]
}

// FromDocuments builds a library from parsed documents. Parser errors never
// abort the batch: a document carrying an error is logged and contributes
// whatever pages or sheets it still holds.
func FromDocuments(docs []types.ParsedDocument, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var items []types.EvidenceItem
	for _, doc := range docs {
		filename := doc.Filename
		if filename == "" {
			filename = "unknown"
		}
		if doc.Error != "" {
			logger.Warn("document parsed with errors", "file", filename, "error", doc.Error)
		}

		before := len(items)
		switch doc.Type {
		case types.DocumentPDF:
			for _, page := range doc.Pages {
				ref := fmt.Sprintf("%s (Page %d)", filename, page.PageNum)
				items = append(items, FromText(page.Text, ref)...)
				items = append(items, Certifications(page.Text, ref)...)
			}
			for _, table := range doc.Tables {
				ref := fmt.Sprintf("%s (Page %d, Table %d)", filename, table.Page, table.TableIndex)
				items = append(items, FromTable(table.Data, ref)...)
			}
		case types.DocumentExcel:
			for _, sheet := range doc.Sheets {
				ref := fmt.Sprintf("%s (Sheet: %s)", filename, sheet.SheetName)
				items = append(items, FromText(sheetText(sheet.Data), ref)...)
				items = append(items, FromTable(sheet.Data, ref)...)
			}
		default:
			logger.Warn("skipping document of unsupported type", "file", filename, "type", doc.Type)
		}
		logger.Debug("extracted evidence", "file", filename, "items", len(items)-before)
	}
	return &Library{items: items}
}

// sheetText flattens a sheet to one string so sentence extraction can run
// across cells.
func sheetText(rows [][]any) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = types.RowText(row)
	}
	return strings.Join(lines, " ")
}
