package types

// Mode is the response policy chosen for a single query.
type Mode string

const (
	ModeFullText   Mode = "FULL_TEXT"
	ModeVerbatim   Mode = "VERBATIM"
	ModeComparison Mode = "COMPARISON"
	ModeSummary    Mode = "SUMMARY"
)

type QueryRequest struct {
	Question string `json:"question"`
	// DocumentID optionally pins the query to the document version returned
	// by upload. Empty means "whatever is currently loaded".
	DocumentID string `json:"document_id,omitempty"`
}

// HistoryEntry is one past exchange kept for prompt context. Answer is
// truncated at write time.
type HistoryEntry struct {
	Question string
	Answer   string
}
