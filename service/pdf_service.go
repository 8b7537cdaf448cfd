package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tieubaoca/docqa-be/types"
)

const (
	ocrSystemInstruction = "You are an OCR engine. Transcribe every piece of text visible in the " +
		"image exactly as written, preserving reading order. Output the text only, with no commentary."
	ocrPrompt = "Extract all text from this page."

	// Zoom used when rendering a page for the OCR fallback.
	ocrRenderZoom = 2.0
)

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	ChunkSize:   500,
	OCRMinChars: 100,
}

// PDFService turns an uploaded PDF into page-tagged chunks. Pages whose
// native text is too short are treated as scans and run through the vision
// model; pages that stay empty get a sentinel placeholder so page numbering
// never drifts.
type PDFService struct {
	chunkSize   int
	ocrMinChars int
	extractor   TextExtractor
	renderer    PageRenderer
	vision      AIService // may be nil; OCR fallback is then skipped
}

func NewPDFService(config types.DocumentServiceConfig, extractor TextExtractor, renderer PageRenderer, vision AIService) *PDFService {
	return &PDFService{
		chunkSize:   config.ChunkSize,
		ocrMinChars: config.OCRMinChars,
		extractor:   extractor,
		renderer:    renderer,
		vision:      vision,
	}
}

// ProcessPDF extracts and chunks every page of the file. It returns the
// chunks and the document's concatenated text, or an error if any page fails:
// ingestion is all-or-nothing, nothing is committed on failure.
func (s *PDFService) ProcessPDF(ctx context.Context, filePath string, source types.SourceLabel) ([]types.Chunk, string, error) {
	totalPages, err := s.extractor.PageCount(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read pdf: %w", err)
	}
	log.Info().Str("file", filePath).Int("pages", totalPages).Str("source", string(source)).Msg("processing pdf")

	var chunks []types.Chunk
	var fullText strings.Builder
	seq := 0
	for page := 1; page <= totalPages; page++ {
		text, err := s.extractor.ExtractPage(filePath, page)
		if err != nil {
			return nil, "", fmt.Errorf("page %d: %w", page, err)
		}

		if len(strings.TrimSpace(text)) < s.ocrMinChars && totalPages > 1 {
			ocrText, err := s.ocrPage(ctx, filePath, page)
			if err != nil {
				return nil, "", fmt.Errorf("ocr fallback on page %d: %w", page, err)
			}
			if ocrText != "" {
				text = ocrText
			}
		}
		if strings.TrimSpace(text) == "" {
			text = fmt.Sprintf("[Page %d contains no extractable text]", page)
		}

		fullText.WriteString(text)
		fullText.WriteString("\n")

		// Slices are counted in runes, never bytes: a multibyte character
		// must not be split across two chunks.
		runes := []rune(text)
		for off := 0; off < len(runes); off += s.chunkSize {
			end := off + s.chunkSize
			if end > len(runes) {
				end = len(runes)
			}
			chunks = append(chunks, types.Chunk{
				Source: source,
				Page:   page,
				Text:   string(runes[off:end]),
				Seq:    seq,
			})
			seq++
		}
	}

	return chunks, fullText.String(), nil
}

// ocrPage renders the page and asks the vision model for a verbatim
// transcription. Skipped entirely when no vision client is configured.
func (s *PDFService) ocrPage(ctx context.Context, filePath string, page int) (string, error) {
	if s.vision == nil || s.renderer == nil {
		return "", nil
	}
	log.Info().Str("file", filePath).Int("page", page).Msg("native text too short, running ocr fallback")

	png, err := s.renderer.RenderPage(ctx, filePath, page, ocrRenderZoom)
	if err != nil {
		return "", err
	}
	text, err := s.vision.Generate(ctx, GenerateRequest{
		Prompt:            ocrPrompt,
		SystemInstruction: ocrSystemInstruction,
		ImagePNG:          png,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
