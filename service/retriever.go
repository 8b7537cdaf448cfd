package service

import (
	"strings"

	"github.com/tieubaoca/docqa-be/types"
)

// ChunkSelector picks the context chunks for a question. withSource tells
// the selector whether chunks carry the [NOTES]/[PAPER] label on the wire,
// so matching runs against exactly the text the model will see. The
// production implementation is keyword substring matching; the interface
// keeps callers stable if it is ever swapped for real ranking.
type ChunkSelector interface {
	Select(mode types.Mode, question string, chunks []types.Chunk, withSource bool) []types.Chunk
}

// Instructional fluff stripped from verbatim questions before keyword
// extraction. Phrases first, then single words.
var verbatimStopPhrases = []string{
	"explain the",
	"in detail",
	"tell me about",
	"according to the document",
}

var verbatimStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "from": {}, "with": {},
	"what": {}, "which": {}, "where": {}, "when": {}, "how": {}, "why": {},
	"does": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"explain": {}, "describe": {}, "define": {}, "briefly": {}, "detail": {},
	"about": {}, "please": {}, "give": {}, "list": {},
}

var comparisonStopWords = map[string]struct{}{
	"compare": {}, "difference": {}, "differentiate": {}, "distinguish": {},
	"between": {}, "and": {}, "the": {},
}

// KeywordSelector selects a chunk when any extracted keyword is a literal
// substring of the chunk's lowercased text, scanning in store order up to a
// mode-dependent cap. minChunks > 0 backfills leading chunks when fewer
// matched; the default policy is 0 (an empty context is allowed and the
// model's own not-found sentence handles it).
type KeywordSelector struct {
	verbatimLimit   int
	comparisonLimit int
	minChunks       int
}

func NewKeywordSelector(verbatimLimit, comparisonLimit, minChunks int) *KeywordSelector {
	return &KeywordSelector{
		verbatimLimit:   verbatimLimit,
		comparisonLimit: comparisonLimit,
		minChunks:       minChunks,
	}
}

func (s *KeywordSelector) Select(mode types.Mode, question string, chunks []types.Chunk, withSource bool) []types.Chunk {
	keywords := ExtractKeywords(mode, question)
	limit := s.verbatimLimit
	if mode == types.ModeComparison {
		limit = s.comparisonLimit
	}

	var selected []types.Chunk
	for _, chunk := range chunks {
		if len(selected) >= limit {
			break
		}
		if matchesAny(strings.ToLower(chunk.Tagged(withSource)), keywords) || len(selected) < s.minChunks {
			selected = append(selected, chunk)
		}
	}
	return selected
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ExtractKeywords lowercases and tokenizes the question, stripping the
// stop list for the given mode and any token of length <= 2.
func ExtractKeywords(mode types.Mode, question string) []string {
	q := strings.ToLower(question)

	stop := verbatimStopWords
	if mode == types.ModeComparison {
		stop = comparisonStopWords
	} else {
		for _, phrase := range verbatimStopPhrases {
			q = strings.ReplaceAll(q, phrase, " ")
		}
	}

	var keywords []string
	for _, tok := range strings.Fields(q) {
		tok = strings.Trim(tok, "?.,!;:\"'()")
		if len(tok) <= 2 {
			continue
		}
		if _, ok := stop[tok]; ok {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}
