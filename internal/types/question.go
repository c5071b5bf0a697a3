// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"strings"
)

// DefaultCategory is assigned to questions loaded without a category.
const DefaultCategory = "General"

// Question is a single questionnaire entry. ID is its identity.
type Question struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Category string `json:"category" yaml:"category"`
	RowNum   int    `json:"row_num" yaml:"row_num"`
}

// NewQuestion builds a question, requiring an id and a '?' in the text.
func NewQuestion(id, text, category string, rowNum int) (Question, error) {
	if id == "" {
		return Question{}, fmt.Errorf("question id is empty")
	}
	if !strings.Contains(text, "?") {
		return Question{}, fmt.Errorf("question %s: text %q contains no '?'", id, text)
	}
	if category == "" {
		category = DefaultCategory
	}
	return Question{ID: id, Question: text, Category: category, RowNum: rowNum}, nil
}

// ScoredEvidence is an evidence item with its similarity to one question.
type ScoredEvidence struct {
	EvidenceItem
	SimilarityScore float64 `json:"similarity_score"`
}

// QuestionMapping is the outcome of matching evidence to one question.
type QuestionMapping struct {
	QuestionID string           `json:"question_id"`
	Question   string           `json:"question"`
	Category   string           `json:"category"`
	Answer     string           `json:"answer"`
	Evidence   []ScoredEvidence `json:"evidence"`
	Confidence Confidence       `json:"confidence"`
	Gaps       []string         `json:"gaps"`
}

// TopScore returns the similarity of the best evidence, or 0 without any.
func (m *QuestionMapping) TopScore() float64 {
	if len(m.Evidence) == 0 {
		return 0
	}
	return m.Evidence[0].SimilarityScore
}
