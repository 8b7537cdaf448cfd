package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docqa-be/store"
	"github.com/tieubaoca/docqa-be/types"
)

func newTestQueryService(ai AIService, renderer PageRenderer) (*QueryService, *store.ChunkStore, *store.History) {
	chunkStore := store.NewChunkStore()
	history := store.NewHistory(5, 50)
	selector := NewKeywordSelector(20, 30, 0)
	qs := NewQueryService(chunkStore, history, ai, selector, renderer, QueryConfig{
		HistoryEntries: 5,
		RenderZoom:     2.0,
	})
	return qs, chunkStore, history
}

func seedThreePages(s *store.ChunkStore) string {
	return s.ReplacePrimary([]types.Chunk{
		{Source: types.SourceNotes, Page: 1, Text: "Introduction to the system.", Seq: 0},
		{Source: types.SourceNotes, Page: 2, Text: "Remote anchoring enables IoT devices to prove their state.", Seq: 1},
		{Source: types.SourceNotes, Page: 3, Text: "Conclusion and future work.", Seq: 2},
	}, "/tmp/notes.pdf")
}

func TestAnswerNoDocument(t *testing.T) {
	qs, _, _ := newTestQueryService(&fakeAI{}, nil)
	_, err := qs.Answer(context.Background(), "anything", "")
	require.ErrorIs(t, err, ErrNoDocument)
}

func TestAnswerStaleDocumentID(t *testing.T) {
	qs, chunkStore, _ := newTestQueryService(&fakeAI{}, nil)
	seedThreePages(chunkStore)

	_, err := qs.Answer(context.Background(), "anything", "not-the-current-id")
	require.ErrorIs(t, err, ErrStaleDocument)
}

func TestAnswerAIUnavailable(t *testing.T) {
	qs, chunkStore, _ := newTestQueryService(nil, nil)
	seedThreePages(chunkStore)

	_, err := qs.Answer(context.Background(), "What is remote anchoring?", "")
	require.ErrorIs(t, err, ErrAIUnavailable)
}

func TestAnswerFullTextBypassesModel(t *testing.T) {
	ai := &fakeAI{response: "must not be used"}
	qs, chunkStore, _ := newTestQueryService(ai, nil)
	seedThreePages(chunkStore)

	resp, err := qs.Answer(context.Background(), "extract all text", "")
	require.NoError(t, err)
	require.Equal(t, types.ModeFullText, resp.Mode)
	require.Empty(t, ai.requests, "FULL_TEXT never calls the model")
	require.Equal(t, "Full document dump (3 chunks)", resp.Sources)
	require.Contains(t, resp.Answer, "[Page 1] Introduction to the system.")
	require.Contains(t, resp.Answer, "[Page 3] Conclusion and future work.")
}

func TestAnswerVerbatimEndToEnd(t *testing.T) {
	ai := &fakeAI{response: "Remote anchoring enables IoT devices to prove their state. [Page 2]"}
	qs, chunkStore, _ := newTestQueryService(ai, nil)
	docID := seedThreePages(chunkStore)

	resp, err := qs.Answer(context.Background(), "What is remote anchoring?", docID)
	require.NoError(t, err)
	require.Equal(t, types.ModeVerbatim, resp.Mode)
	require.Equal(t, docID, resp.DocumentID)

	require.Len(t, ai.requests, 1)
	req := ai.requests[0]
	require.Contains(t, req.Prompt, "Remote anchoring enables IoT devices")
	require.Contains(t, req.Prompt, "User Question: What is remote anchoring?")
	require.Contains(t, req.SystemInstruction, "verbatim quote")
	require.Contains(t, req.SystemInstruction, NotFoundSentence)
}

func TestAnswerComparisonCitationSuffix(t *testing.T) {
	ai := &fakeAI{response: "| Aspect | A | B |"}
	qs, chunkStore, _ := newTestQueryService(ai, nil)
	chunkStore.ReplacePrimary([]types.Chunk{
		{Source: types.SourceNotes, Page: 4, Text: "TCP is connection oriented.", Seq: 0},
		{Source: types.SourceNotes, Page: 7, Text: "UDP is connectionless.", Seq: 1},
	}, "/tmp/notes.pdf")

	resp, err := qs.Answer(context.Background(), "compare TCP and UDP", "")
	require.NoError(t, err)
	require.Equal(t, types.ModeComparison, resp.Mode)

	require.Len(t, ai.requests, 1)
	require.Contains(t, ai.requests[0].Prompt, "Sources: [Page 4], [Page 7]")
	require.Contains(t, ai.requests[0].SystemInstruction, "three columns")
}

func TestAnswerEmptyContextStillCallsModel(t *testing.T) {
	ai := &fakeAI{response: NotFoundSentence}
	qs, chunkStore, _ := newTestQueryService(ai, nil)
	seedThreePages(chunkStore)

	resp, err := qs.Answer(context.Background(), "zzzzz qqqqq", "")
	require.NoError(t, err)
	require.Equal(t, NotFoundSentence, resp.Answer)
	require.Len(t, ai.requests, 1)
	require.Contains(t, ai.requests[0].Prompt, "CONTEXT:\n")
}

func TestAnswerCompletionErrorSurfaces(t *testing.T) {
	ai := &fakeAI{err: errors.New("quota exceeded")}
	qs, chunkStore, _ := newTestQueryService(ai, nil)
	seedThreePages(chunkStore)

	_, err := qs.Answer(context.Background(), "What is remote anchoring?", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestAnswerFigureRendered(t *testing.T) {
	ai := &fakeAI{response: "The diagram shows the flow. [Page 7] [FIG:Page 7]"}
	renderer := &fakeRenderer{png: []byte("fake png bytes")}
	qs, chunkStore, _ := newTestQueryService(ai, renderer)
	seedThreePages(chunkStore)

	resp, err := qs.Answer(context.Background(), "What is remote anchoring?", "")
	require.NoError(t, err)
	require.Equal(t, []int{7}, renderer.calls)
	require.True(t, strings.HasPrefix(resp.ImageData, "data:image/png;base64,"))
}

func TestAnswerFigureRenderFailureIsSwallowed(t *testing.T) {
	ai := &fakeAI{response: "See the diagram. [FIG:Page 7]"}
	renderer := &fakeRenderer{err: errors.New("render boom")}
	qs, chunkStore, _ := newTestQueryService(ai, renderer)
	seedThreePages(chunkStore)

	resp, err := qs.Answer(context.Background(), "What is remote anchoring?", "")
	require.NoError(t, err, "render failures never fail the request")
	require.Empty(t, resp.ImageData)
	require.Equal(t, "See the diagram. [FIG:Page 7]", resp.Answer)
}

func TestAnswerHistoryInPrompt(t *testing.T) {
	ai := &fakeAI{response: "first answer"}
	qs, chunkStore, _ := newTestQueryService(ai, nil)
	seedThreePages(chunkStore)

	_, err := qs.Answer(context.Background(), "What is remote anchoring?", "")
	require.NoError(t, err)

	ai.response = "second answer"
	_, err = qs.Answer(context.Background(), "Tell me more about anchoring", "")
	require.NoError(t, err)

	require.Len(t, ai.requests, 2)
	require.Contains(t, ai.requests[1].Prompt, "Previous conversation:")
	require.Contains(t, ai.requests[1].Prompt, "Q: What is remote anchoring?")
	require.Contains(t, ai.requests[1].Prompt, "A: first answer")
}

func TestAnswerResolvesQuestionPaperReference(t *testing.T) {
	ai := &fakeAI{response: "Remote anchoring enables IoT devices to prove their state. [Page 2]"}
	qs, chunkStore, _ := newTestQueryService(ai, nil)
	seedThreePages(chunkStore)
	chunkStore.AppendSecondary(
		[]types.Chunk{{Source: types.SourcePaper, Page: 1, Text: "Q1. What is remote anchoring?", Seq: 3}},
		"/tmp/paper.pdf",
		"Q1. What is remote anchoring?\nQ2. Define TCP.",
	)

	resp, err := qs.Answer(context.Background(), "answer Q1", "")
	require.NoError(t, err)
	require.Equal(t, types.ModeVerbatim, resp.Mode)
	require.Contains(t, ai.requests[0].Prompt, "User Question: What is remote anchoring?")
	require.Contains(t, ai.requests[0].Prompt, "Remote anchoring enables IoT devices")
}

func TestExtractFigureNoMarker(t *testing.T) {
	qs, chunkStore, _ := newTestQueryService(&fakeAI{}, &fakeRenderer{})
	seedThreePages(chunkStore)

	fig := qs.ExtractFigure(context.Background(), "plain answer with no marker")
	require.False(t, fig.Cited)
	require.Empty(t, fig.DataURI)
}
