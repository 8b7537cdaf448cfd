package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryTruncatesAnswers(t *testing.T) {
	h := NewHistory(5, 50)
	long := strings.Repeat("x", 80)
	h.Add("q", long)

	entries := h.Last(5)
	require.Len(t, entries, 1)
	require.Equal(t, strings.Repeat("x", 50)+"...", entries[0].Answer)
}

func TestHistoryBoundedOnWrite(t *testing.T) {
	h := NewHistory(3, 50)
	h.Add("q1", "a1")
	h.Add("q2", "a2")
	h.Add("q3", "a3")
	h.Add("q4", "a4")

	entries := h.Last(10)
	require.Len(t, entries, 3)
	require.Equal(t, "q2", entries[0].Question)
	require.Equal(t, "q4", entries[2].Question)
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(5, 50)
	h.Add("q", "a")
	h.Clear()
	require.Empty(t, h.Last(5))
}
