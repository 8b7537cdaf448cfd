package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tieubaoca/docqa-be/types"
)

// ChunkStore holds the chunks of the currently loaded documents. One store
// exists per process; a primary upload replaces its contents wholesale while
// a secondary upload appends. All access goes through a single RWMutex so a
// query never observes a half-replaced store.
type ChunkStore struct {
	mu            sync.RWMutex
	chunks        []types.Chunk
	documentID    string
	primaryPath   string
	secondaryPath string
	paperText     string
	hasPaper      bool
}

func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// ReplacePrimary swaps in a freshly chunked primary document and returns the
// new document version id. Any previously appended secondary document is
// dropped with it.
func (s *ChunkStore) ReplacePrimary(chunks []types.Chunk, path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = chunks
	s.primaryPath = path
	s.secondaryPath = ""
	s.paperText = ""
	s.hasPaper = false
	s.documentID = uuid.NewString()
	return s.documentID
}

// AppendSecondary adds a question paper's chunks without clearing existing
// ones. fullText is the paper's concatenated text, kept for question-number
// resolution. The document id is unchanged: the primary context it names is
// still valid.
func (s *ChunkStore) AppendSecondary(chunks []types.Chunk, path, fullText string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	s.secondaryPath = path
	s.paperText = fullText
	s.hasPaper = true
	if s.documentID == "" {
		s.documentID = uuid.NewString()
	}
	return s.documentID
}

// Snapshot returns the chunks in store order. The returned slice is a copy;
// callers may hold it across a concurrent replace.
func (s *ChunkStore) Snapshot() []types.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

func (s *ChunkStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func (s *ChunkStore) Empty() bool {
	return s.Count() == 0
}

func (s *ChunkStore) DocumentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documentID
}

func (s *ChunkStore) PrimaryPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.primaryPath
}

// PaperText returns the secondary document's concatenated text, if one is
// loaded.
func (s *ChunkStore) PaperText() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paperText, s.hasPaper
}

func (s *ChunkStore) HasPaper() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasPaper
}
