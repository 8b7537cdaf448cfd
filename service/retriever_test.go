package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docqa-be/types"
)

func makeChunks(texts ...string) []types.Chunk {
	chunks := make([]types.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = types.Chunk{Source: types.SourceNotes, Page: i + 1, Text: text, Seq: i}
	}
	return chunks
}

func TestSelectMatchesBySubstring(t *testing.T) {
	s := NewKeywordSelector(20, 30, 0)
	chunks := makeChunks(
		"Remote anchoring enables IoT devices to verify state.",
		"Totally unrelated content about cooking.",
	)

	selected := s.Select(types.ModeVerbatim, "What is remote anchoring?", chunks, false)
	require.Len(t, selected, 1)
	require.Equal(t, 1, selected[0].Page)
}

func TestSelectZeroOverlapReturnsEmpty(t *testing.T) {
	s := NewKeywordSelector(20, 30, 0)
	chunks := makeChunks("alpha", "beta")

	selected := s.Select(types.ModeVerbatim, "quantum entanglement?", chunks, false)
	require.Empty(t, selected)
}

// In single-document mode chunks go out without the [NOTES] label, so a
// question word like "notes" must not match the provenance prefix of every
// chunk.
func TestSelectSourceLabelNotMatchedWhenHidden(t *testing.T) {
	s := NewKeywordSelector(20, 30, 0)
	chunks := makeChunks("alpha content", "beta content")

	selected := s.Select(types.ModeVerbatim, "explain the notes", chunks, false)
	require.Empty(t, selected)

	selected = s.Select(types.ModeVerbatim, "explain the notes", chunks, true)
	require.Len(t, selected, 2, "label is matchable once it is shown to the model")
}

func TestSelectComparisonCap(t *testing.T) {
	s := NewKeywordSelector(20, 30, 0)
	var texts []string
	for i := 0; i < 100; i++ {
		texts = append(texts, fmt.Sprintf("chunk %d mentions encryption", i))
	}

	selected := s.Select(types.ModeComparison, "compare encryption and hashing", makeChunks(texts...), false)
	require.Len(t, selected, 30)
}

func TestSelectMinChunksBackfill(t *testing.T) {
	s := NewKeywordSelector(20, 30, 5)
	chunks := makeChunks("a", "b", "c", "d", "e", "f", "g")

	selected := s.Select(types.ModeVerbatim, "nothing matches this", chunks, false)
	require.Len(t, selected, 5)
	require.Equal(t, 1, selected[0].Page, "backfill keeps store order")
}

func TestExtractKeywordsVerbatim(t *testing.T) {
	kws := ExtractKeywords(types.ModeVerbatim, "Explain the remote anchoring protocol briefly")
	require.Contains(t, kws, "remote")
	require.Contains(t, kws, "anchoring")
	require.Contains(t, kws, "protocol")
	require.NotContains(t, kws, "explain")
	require.NotContains(t, kws, "briefly")
	require.NotContains(t, kws, "the")
}

func TestExtractKeywordsComparison(t *testing.T) {
	kws := ExtractKeywords(types.ModeComparison, "compare the difference between AES and DES")
	require.Equal(t, []string{"aes", "des"}, kws)
}

func TestExtractKeywordsDropsShortTokens(t *testing.T) {
	kws := ExtractKeywords(types.ModeVerbatim, "is it an os?")
	require.Empty(t, kws)
}
