// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteExcel(t *testing.T) {
	res := makeTestResult()

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, res.Mappings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ExcelSheet}, f.GetSheetList())

	rows, err := f.GetRows(ExcelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, excelHeaders, rows[0])

	assert.Equal(t, []string{
		"Q2", "Data Protection", "Do you encrypt customer data at rest?",
		"Yes - We encrypt all customer data at rest.",
		"security.pdf (Page 1); https://acme.com/trust?a=1&b=2",
		"HIGH", "None",
	}, rows[1])
	assert.Equal(t, "Moderate confidence - verify with vendor", rows[2][6])
	assert.Equal(t, "No evidence found; Request documentation", rows[3][6])
	assert.Equal(t, "NOT_FOUND", rows[3][5])

	width, err := f.GetColWidth(ExcelSheet, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Question ID")+2), width)

	width, err = f.GetColWidth(ExcelSheet, "E")
	require.NoError(t, err)
	assert.Equal(t, float64(50), width, "long references are capped")
}

func TestExcelRow_TopThreeReferences(t *testing.T) {
	m := makeTestResult().Mappings[0]
	m.Evidence = append(m.Evidence,
		scored("c.pdf (Page 1)", "control_statement", 0.5),
		scored("d.pdf (Page 1)", "control_statement", 0.4),
	)
	refs := excelRow(&m)[4]
	assert.Equal(t, 3, strings.Count(refs, ";")+1)
	assert.NotContains(t, refs, "d.pdf")
}

func TestColumnWidths(t *testing.T) {
	rows := [][]string{excelHeaders, {"Q1", "Général"}}
	widths := columnWidths(rows)
	require.Len(t, widths, len(excelHeaders))
	assert.Equal(t, float64(len("Category")+2), widths[1])
	assert.Equal(t, float64(len("Gaps/Follow-ups")+2), widths[6])
}
