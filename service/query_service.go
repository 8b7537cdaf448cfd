package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tieubaoca/docqa-be/store"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

var (
	// ErrNoDocument means no primary document has been uploaded yet.
	ErrNoDocument = errors.New("please upload a PDF first")
	// ErrStaleDocument means the query carried a document_id that no longer
	// matches the loaded document.
	ErrStaleDocument = errors.New("document has been replaced since upload")
)

const contextSeparator = "\n---\n"

// QueryConfig carries the pipeline tunables that varied across deployments.
type QueryConfig struct {
	HistoryEntries    int           // past exchanges included in the prompt
	RenderZoom        float64       // zoom for figure page rendering
	CompletionTimeout time.Duration // per completion call
}

// FigureResult is the outcome of figure post-processing: not cited, cited
// and rendered, or cited but failed to render. Render failures never fail
// the request.
type FigureResult struct {
	Cited   bool
	Page    int
	DataURI string
	Err     error
}

// QueryService runs a question through classification, retrieval, prompting
// and answer post-processing.
type QueryService struct {
	chunkStore *store.ChunkStore
	history    *store.History
	ai         AIService
	selector   ChunkSelector
	renderer   PageRenderer
	cfg        QueryConfig
}

func NewQueryService(
	chunkStore *store.ChunkStore,
	history *store.History,
	ai AIService,
	selector ChunkSelector,
	renderer PageRenderer,
	cfg QueryConfig,
) *QueryService {
	return &QueryService{
		chunkStore: chunkStore,
		history:    history,
		ai:         ai,
		selector:   selector,
		renderer:   renderer,
		cfg:        cfg,
	}
}

// Answer resolves, classifies and answers one question. documentID, when
// non-empty, must match the id returned from the upload that produced the
// current store.
func (s *QueryService) Answer(ctx context.Context, question, documentID string) (*types.QueryResponse, error) {
	if s.chunkStore.Empty() {
		return nil, ErrNoDocument
	}
	if documentID != "" && documentID != s.chunkStore.DocumentID() {
		return nil, ErrStaleDocument
	}

	effective := question
	if paperText, ok := s.chunkStore.PaperText(); ok {
		if resolved := ResolveQuestionRef(question, paperText); resolved != question {
			log.Info().Str("question", question).Str("resolved", resolved).Msg("resolved question-paper reference")
			effective = resolved
		}
	}

	mode := ClassifyQuestion(effective)
	log.Info().Str("mode", string(mode)).Str("question", effective).Msg("classified query")

	chunks := s.chunkStore.Snapshot()
	withSource := s.chunkStore.HasPaper()

	// FULL_TEXT is answered locally, no completion call.
	if mode == types.ModeFullText {
		answer := joinChunks(chunks, withSource)
		s.history.Add(question, answer)
		return &types.QueryResponse{
			Answer:     answer,
			Sources:    fmt.Sprintf("Full document dump (%d chunks)", len(chunks)),
			Mode:       mode,
			DocumentID: s.chunkStore.DocumentID(),
		}, nil
	}

	if s.ai == nil {
		return nil, ErrAIUnavailable
	}

	var selected []types.Chunk
	if mode == types.ModeSummary {
		selected = chunks
	} else {
		selected = s.selector.Select(mode, effective, chunks, withSource)
	}
	contextStr := joinChunks(selected, withSource)
	if mode == types.ModeComparison {
		contextStr += citationSuffix(selected)
	}

	prompt := buildPrompt(effective, contextStr, s.history.Last(s.cfg.HistoryEntries))

	callCtx := ctx
	if s.cfg.CompletionTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.CompletionTimeout)
		defer cancel()
	}
	answer, err := s.ai.Generate(callCtx, GenerateRequest{
		Prompt:            prompt,
		SystemInstruction: SystemInstruction(mode),
	})
	if err != nil {
		return nil, fmt.Errorf("completion call failed: %w", err)
	}

	resp := &types.QueryResponse{
		Answer:     answer,
		Sources:    modeDescription(mode, len(selected)),
		Mode:       mode,
		DocumentID: s.chunkStore.DocumentID(),
	}

	if mode == types.ModeVerbatim {
		fig := s.ExtractFigure(ctx, answer)
		if fig.Err != nil {
			log.Warn().Err(fig.Err).Int("page", fig.Page).Msg("figure render failed, returning answer without image")
		}
		resp.ImageData = fig.DataURI
	}

	s.history.Add(question, answer)
	return resp, nil
}

// ExtractFigure scans an answer for the figure marker and renders the cited
// page of the primary document. Best-effort: all failures are reported in
// the result, never as an error to the request.
func (s *QueryService) ExtractFigure(ctx context.Context, answer string) FigureResult {
	idx := strings.Index(answer, FigureMarker)
	if idx < 0 {
		return FigureResult{}
	}
	rest := answer[idx+len(FigureMarker):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return FigureResult{Cited: true, Err: errors.New("unterminated figure marker")}
	}

	var digits strings.Builder
	for _, r := range rest[:end] {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	page, err := strconv.Atoi(digits.String())
	if err != nil {
		return FigureResult{Cited: true, Err: fmt.Errorf("bad figure page: %w", err)}
	}

	if s.renderer == nil {
		return FigureResult{Cited: true, Page: page, Err: errors.New("no renderer configured")}
	}
	png, err := s.renderer.RenderPage(ctx, s.chunkStore.PrimaryPath(), page, s.cfg.RenderZoom)
	if err != nil {
		return FigureResult{Cited: true, Page: page, Err: err}
	}
	return FigureResult{Cited: true, Page: page, DataURI: utils.PNGDataURI(png)}
}

func joinChunks(chunks []types.Chunk, withSource bool) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Tagged(withSource))
	}
	return strings.Join(parts, contextSeparator)
}

// citationSuffix builds the Sources line appended to a comparison context.
// The model is instructed to copy it verbatim rather than invent pages.
func citationSuffix(chunks []types.Chunk) string {
	seen := map[int]struct{}{}
	var pages []int
	for _, c := range chunks {
		if _, ok := seen[c.Page]; !ok {
			seen[c.Page] = struct{}{}
			pages = append(pages, c.Page)
		}
	}
	sort.Ints(pages)

	refs := make([]string, 0, len(pages))
	for _, p := range pages {
		refs = append(refs, fmt.Sprintf("[Page %d]", p))
	}
	return "\n\nSources: " + strings.Join(refs, ", ")
}

func buildPrompt(question, contextStr string, history []types.HistoryEntry) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, e := range history {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", e.Question, e.Answer)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User Question: %s\n\nCONTEXT:\n%s", question, contextStr)
	return b.String()
}

func modeDescription(mode types.Mode, chunkCount int) string {
	switch mode {
	case types.ModeComparison:
		return fmt.Sprintf("Tabular comparison from %d matched chunks", chunkCount)
	case types.ModeSummary:
		return fmt.Sprintf("Whole-document summary over %d chunks", chunkCount)
	default:
		return fmt.Sprintf("Verbatim extraction from %d matched chunks", chunkCount)
	}
}
