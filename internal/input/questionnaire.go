// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/bonial-oss/vendor-assess/internal/types"
)

// Sheets searched for questions, in order, before the first sheet.
var questionSheets = []string{"Questions", "Questionnaire", "Assessment"}

// minQuestionRunes is the length a cell must exceed to count as a question.
const minQuestionRunes = 20

// LoadQuestionnaire reads questions from an xlsx, csv, yaml or json file.
func LoadQuestionnaire(path string) ([]types.Question, error) {
	head, err := readHead(path)
	if err != nil {
		return nil, fmt.Errorf("reading questionnaire: %w", err)
	}

	switch format := Detect(path, head); format {
	case FormatXLSX:
		return questionsFromWorkbook(path)
	case FormatCSV:
		return questionsFromCSV(path)
	case FormatYAML, FormatJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading questionnaire: %w", err)
		}
		return ParseQuestionsYAML(data)
	default:
		return nil, fmt.Errorf("unsupported questionnaire format: %s", path)
	}
}

// QuestionsFromRows scans spreadsheet rows below the header row. The first
// cell in a row that reads like a question becomes the question text; rows
// without one are skipped. IDs follow the 1-based row number ("Q2").
func QuestionsFromRows(rows [][]string) []types.Question {
	questions := []types.Question{}
	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		for _, cell := range rows[i] {
			if utf8.RuneCountInString(cell) <= minQuestionRunes || !strings.Contains(cell, "?") {
				continue
			}
			q, err := types.NewQuestion(fmt.Sprintf("Q%d", rowNum), cell, types.DefaultCategory, rowNum)
			if err == nil {
				questions = append(questions, q)
			}
			break
		}
	}
	return questions
}

// ParseQuestionsYAML decodes a question list, either bare or under a
// "questions" key. Entries without an id are numbered by position.
func ParseQuestionsYAML(data []byte) ([]types.Question, error) {
	var entries []types.Question
	if err := yaml.Unmarshal(data, &entries); err != nil {
		var doc struct {
			Questions []types.Question `yaml:"questions"`
		}
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("parsing questionnaire: %w", err)
		}
		entries = doc.Questions
	}

	questions := make([]types.Question, 0, len(entries))
	for i, e := range entries {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("Q%d", i+1)
		}
		rowNum := e.RowNum
		if rowNum == 0 {
			rowNum = i + 1
		}
		q, err := types.NewQuestion(id, e.Question, e.Category, rowNum)
		if err != nil {
			return nil, fmt.Errorf("parsing questionnaire: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func questionsFromWorkbook(path string) ([]types.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening questionnaire: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return []types.Question{}, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return QuestionsFromRows(rows), nil
}

func pickSheet(names []string) string {
	for _, want := range questionSheets {
		if slices.Contains(names, want) {
			return want
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

func questionsFromCSV(path string) ([]types.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening questionnaire: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing questionnaire csv: %w", err)
	}
	return QuestionsFromRows(rows), nil
}
