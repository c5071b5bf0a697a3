// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

// ExcelSheet is the name of the sheet holding the completed questionnaire.
const ExcelSheet = "Completed Assessment"

const (
	maxExcelReferences = 3
	maxColumnWidth     = 50
)

var excelHeaders = []string{
	"Question ID", "Category", "Question", "Answer",
	"Evidence References", "Confidence", "Gaps/Follow-ups",
}

// WriteExcel writes the completed questionnaire as an xlsx workbook.
func WriteExcel(w io.Writer, mappings []types.QuestionMapping) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExcelSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	rows := make([][]string, 0, len(mappings)+1)
	rows = append(rows, excelHeaders)
	for i := range mappings {
		rows = append(rows, excelRow(&mappings[i]))
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(ExcelSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(ExcelSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for col, width := range columnWidths(rows) {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ExcelSheet, name, name, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func excelRow(m *types.QuestionMapping) []string {
	refs := make([]string, 0, maxExcelReferences)
	for _, e := range head(m.Evidence, maxExcelReferences) {
		refs = append(refs, e.Source)
	}
	gaps := "None"
	if len(m.Gaps) > 0 {
		gaps = strings.Join(m.Gaps, "; ")
	}
	return []string{
		m.QuestionID,
		m.Category,
		m.Question,
		m.Answer,
		strings.Join(refs, "; "),
		string(m.Confidence),
		gaps,
	}
}

// columnWidths sizes each column to its longest cell plus padding, capped
// at maxColumnWidth.
func columnWidths(rows [][]string) []float64 {
	widths := make([]float64, len(excelHeaders))
	for _, row := range rows {
		for i, v := range row {
			widths[i] = max(widths[i], float64(min(utf8.RuneCountInString(v)+2, maxColumnWidth)))
		}
	}
	return widths
}
