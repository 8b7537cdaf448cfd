package types

import "fmt"

// SourceLabel marks which uploaded document a chunk came from.
type SourceLabel string

const (
	SourceNotes SourceLabel = "NOTES"
	SourcePaper SourceLabel = "PAPER"
)

// Chunk is a fixed-size slice of one page's extracted text. Page and Source
// are provenance metadata; concatenating a page's chunks in Seq order
// reproduces the page text exactly.
type Chunk struct {
	Source SourceLabel // Which document the chunk belongs to
	Page   int         // 1-based page number
	Text   string      // Raw slice of the page text, at most chunk size chars
	Seq    int         // Position within the whole document
}

// Tagged renders the chunk the way it is shown to the model. The
// [NOTES]/[PAPER] label is only emitted once a second document is loaded,
// matching the single-document wire format otherwise.
func (c Chunk) Tagged(withSource bool) string {
	if withSource && c.Source != "" {
		return fmt.Sprintf("[%s] [Page %d] %s", c.Source, c.Page, c.Text)
	}
	return fmt.Sprintf("[Page %d] %s", c.Page, c.Text)
}

// DocumentServiceConfig contains configuration options for PDF processing
type DocumentServiceConfig struct {
	ChunkSize   int // Maximum size for text chunks
	OCRMinChars int // Below this many native chars a page is treated as scanned
}
