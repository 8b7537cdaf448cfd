package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docqa-be/types"
)

func TestClassifyDefaultsToVerbatim(t *testing.T) {
	require.Equal(t, types.ModeVerbatim, ClassifyQuestion("What is remote anchoring?"))
}

func TestClassifyComparisonTriggers(t *testing.T) {
	for _, q := range []string{
		"compare TCP and UDP",
		"what is the difference between AES and DES",
		"differentiate supervised and unsupervised learning",
		"Distinguish stack from heap",
	} {
		require.Equal(t, types.ModeComparison, ClassifyQuestion(q), q)
	}
}

func TestClassifyFullTextTriggers(t *testing.T) {
	require.Equal(t, types.ModeFullText, ClassifyQuestion("extract all text"))
	require.Equal(t, types.ModeFullText, ClassifyQuestion("give me the whole document"))
}

func TestClassifySummaryTrigger(t *testing.T) {
	require.Equal(t, types.ModeSummary, ClassifyQuestion("scan the whole pdf and summarize it"))
}

// Rule order is authoritative: a full-text trigger wins over a comparison
// word in the same question.
func TestClassifyPrecedence(t *testing.T) {
	require.Equal(t, types.ModeFullText, ClassifyQuestion("extract all text and compare the sections"))
}
