package store

import (
	"sync"

	"github.com/tieubaoca/docqa-be/types"
)

// History is the rolling ledger of past exchanges included in prompts.
// Answers are truncated at write time so the ledger stays bounded in memory,
// and the whole ledger is cleared when the primary document is replaced.
type History struct {
	mu          sync.Mutex
	entries     []types.HistoryEntry
	maxEntries  int
	answerLimit int
}

func NewHistory(maxEntries, answerLimit int) *History {
	return &History{
		maxEntries:  maxEntries,
		answerLimit: answerLimit,
	}
}

func (h *History) Add(question, answer string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(answer) > h.answerLimit {
		answer = answer[:h.answerLimit] + "..."
	}
	h.entries = append(h.entries, types.HistoryEntry{Question: question, Answer: answer})
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}
}

// Last returns up to n most recent entries, oldest first.
func (h *History) Last(n int) []types.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]types.HistoryEntry, n)
	copy(out, h.entries[len(h.entries)-n:])
	return out
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
