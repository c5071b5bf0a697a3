// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

func TestQuestionsFromRows(t *testing.T) {
	rows := [][]string{
		{"ID", "Category", "Does the vendor encrypt data at rest?"},
		{"1", "Crypto", "Does the vendor encrypt data at rest?", "Is TLS 1.2 enforced for all traffic?"},
		{},
		{"3", "Short?", "No question mark in this long cell"},
		{"4", "Is MFA enforced for all administrators?"},
	}

	got := QuestionsFromRows(rows)

	require.Len(t, got, 2)
	assert.Equal(t, types.Question{ID: "Q2", Question: "Does the vendor encrypt data at rest?", Category: "General", RowNum: 2}, got[0])
	assert.Equal(t, "Q5", got[1].ID)
	assert.Equal(t, 5, got[1].RowNum)
}

func TestQuestionsFromRows_LengthIsInRunes(t *testing.T) {
	// 20 runes with a '?' is too short; 21 is enough.
	rows := [][]string{{"header"}, {"ééééééééééééééééééé?"}, {"éééééééééééééééééééé?"}}
	got := QuestionsFromRows(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Q3", got[0].ID)
}

func TestQuestionsFromRows_Empty(t *testing.T) {
	assert.Empty(t, QuestionsFromRows(nil))
	assert.NotNil(t, QuestionsFromRows(nil))
}

func TestLoadQuestionnaire_CSV(t *testing.T) {
	path := writeFile(t, "q.csv", "id,question\n1,\"Do you perform annual penetration tests?\"\n2,n/a\n")
	got, err := LoadQuestionnaire(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Q2", got[0].ID)
	assert.Equal(t, "Do you perform annual penetration tests?", got[0].Question)
}

func TestLoadQuestionnaire_YAML(t *testing.T) {
	list := writeFile(t, "q.yaml", `
- id: AC-1
  question: Is MFA enforced for all administrators?
  category: Access Control
- question: Do you maintain an incident response plan?
`)
	got, err := LoadQuestionnaire(list)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.Question{ID: "AC-1", Question: "Is MFA enforced for all administrators?", Category: "Access Control", RowNum: 1}, got[0])
	assert.Equal(t, "Q2", got[1].ID)
	assert.Equal(t, "General", got[1].Category)

	keyed := writeFile(t, "q.yml", "questions:\n  - id: X\n    question: Are backups encrypted?\n")
	got, err = LoadQuestionnaire(keyed)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "X", got[0].ID)

	invalid := writeFile(t, "bad.yaml", "- id: X\n  question: Backups are encrypted\n")
	_, err = LoadQuestionnaire(invalid)
	require.Error(t, err)
}

func TestLoadQuestionnaire_Workbook(t *testing.T) {
	path := writeWorkbook(t, "caiq.xlsx", map[string][][]any{
		"Sheet1": {
			{"Intro"},
			{"This sheet is not the questionnaire, is it?"},
		},
		"Questionnaire": {
			{"ID", "Question"},
			{"1", "Do you encrypt customer data in transit?"},
			{"2", 42},
		},
	})

	got, err := LoadQuestionnaire(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Q2", got[0].ID)
	assert.Equal(t, "Do you encrypt customer data in transit?", got[0].Question)
}

func TestLoadQuestionnaire_Unsupported(t *testing.T) {
	_, err := LoadQuestionnaire(writeFile(t, "q.txt", "plain"))
	require.Error(t, err)
}

func TestPickSheet(t *testing.T) {
	assert.Equal(t, "Questions", pickSheet([]string{"Cover", "Assessment", "Questions"}))
	assert.Equal(t, "Assessment", pickSheet([]string{"Cover", "Assessment"}))
	assert.Equal(t, "Cover", pickSheet([]string{"Cover", "Notes"}))
	assert.Equal(t, "", pickSheet(nil))
}
