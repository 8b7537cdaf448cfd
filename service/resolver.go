package service

import (
	"regexp"
	"strings"
)

// The resolver rewrites "Q3" style references into the literal question text
// found in the uploaded question paper, so retrieval runs against the real
// question instead of its number.

var (
	questionRefRe = regexp.MustCompile(`(?i)(?:\bq(?:uestion)?\s*|#)(\d+)\b`)

	// Start of a numbered question or of an option letter; used to find
	// where a captured question ends.
	questionBoundaryRe = regexp.MustCompile(`(?i)(?:\bq(?:uestion)?\s*)?\d+\s*[.):]|\b[a-e][.)]`)

	trailingOptionRe = regexp.MustCompile(`(?i)\s[a-e]$`)
)

// ResolveQuestionRef scans the question for a question-number reference and,
// when the paper text contains that question, returns its literal text. The
// original question is returned unchanged otherwise.
func ResolveQuestionRef(question, paperText string) string {
	m := questionRefRe.FindStringSubmatch(question)
	if m == nil {
		return question
	}
	num := m[1]

	resolved := findQuestionText(paperText, num)
	if resolved == "" {
		return question
	}
	return resolved
}

func findQuestionText(paperText, num string) string {
	startRe, err := regexp.Compile(`(?i)\b(?:q(?:uestion)?\s*)?` + num + `\s*[.):]`)
	if err != nil {
		return ""
	}
	loc := startRe.FindStringIndex(paperText)
	if loc == nil {
		return ""
	}

	rest := paperText[loc[1]:]
	if end := questionBoundaryRe.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}

	text := strings.TrimSpace(rest)
	// A dangling option letter can survive when the boundary regex cut just
	// before its punctuation.
	text = strings.TrimSpace(trailingOptionRe.ReplaceAllString(text, ""))
	if len(text) <= 5 {
		return ""
	}
	return text
}
