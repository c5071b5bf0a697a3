// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

// Package similarity scores how closely a piece of evidence answers a
// questionnaire question.
package similarity

import "strings"

// Scorer rates evidence text against a question. Implementations return a
// value in [0,1] and must be safe for concurrent use.
type Scorer interface {
	Score(question, evidenceText string) float64
}

// Lexical scores by token overlap: the share of the question's distinct
// tokens that also occur in the evidence. Tokens are lower-cased
// whitespace-separated words.
type Lexical struct{}

// Score implements Scorer.
func (Lexical) Score(question, evidenceText string) float64 {
	q := tokenSet(question)
	if len(q) == 0 {
		return 0
	}
	e := tokenSet(evidenceText)
	var shared int
	for tok := range q {
		if _, ok := e[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(q))
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
