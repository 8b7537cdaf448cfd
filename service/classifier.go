package service

import (
	"strings"

	"github.com/tieubaoca/docqa-be/types"
)

// NotFoundSentence is the exact failure sentence the model is instructed to
// emit when the answer is absent from context.
const NotFoundSentence = "The required information was not found in the uploaded document."

// FigureMarker is the reserved token the model emits when a cited page
// contains a figure or diagram.
const FigureMarker = "[FIG:Page "

type modeRule struct {
	mode     types.Mode
	triggers []string
}

// Classification is an ordered table of substring triggers; the first
// matching rule wins, so FULL_TEXT beats a comparison word appearing in the
// same question. Adding a mode is a data change.
var modeRules = []modeRule{
	{types.ModeFullText, []string{
		"extract all text",
		"full text",
		"entire text",
		"whole document",
		"all the text",
		"complete text",
		"dump the document",
	}},
	{types.ModeComparison, []string{
		"compare",
		"difference",
		"differentiate",
		"distinguish",
	}},
	{types.ModeSummary, []string{
		"scan the whole pdf",
		"scan the entire pdf",
		"summarize the whole",
		"summarize the entire",
		"summarise the whole",
	}},
}

// ClassifyQuestion picks the response mode for a question. Matching is plain
// substring containment on the lowercased question, not intent parsing.
func ClassifyQuestion(question string) types.Mode {
	q := strings.ToLower(question)
	for _, rule := range modeRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(q, trigger) {
				return rule.mode
			}
		}
	}
	return types.ModeVerbatim
}

const verbatimInstruction = "You are an expert document query assistant. " +
	"STRICTLY AND ONLY use the CONTEXT provided below to answer the user's question. " +
	"DO NOT reword, summarize, or translate the text. " +
	"Your answer MUST be a direct, verbatim quote from the context. " +
	"Always include the source page number (e.g., [Page X]) in your response. " +
	"If the quoted text refers to a figure or diagram, also emit the marker [FIG:Page X] for that page. " +
	"If the answer is not in the CONTEXT, state: '" + NotFoundSentence + "'"

const comparisonInstruction = "You are an expert document query assistant. " +
	"Using ONLY the CONTEXT provided below, compare the concepts the user asks about. " +
	"Respond with a Markdown table of exactly three columns: the aspect being compared, " +
	"the first concept, and the second concept. Every cell must come from the context, never invented. " +
	"After the table, reproduce the Sources line from the end of the context exactly as written. " +
	"Do not invent page numbers. " +
	"If the concepts are not in the CONTEXT, state: '" + NotFoundSentence + "'"

const summaryInstruction = "You are an expert document query assistant. " +
	"Read the ENTIRE CONTEXT below, which is the full text of a scanned document, " +
	"and produce a structured summary with section headings. " +
	"Cite the source page number (e.g., [Page X]) after every point. " +
	"Do not add information that is not in the CONTEXT."

// SystemInstruction returns the fixed per-mode instruction. FULL_TEXT never
// reaches the model, so it has none.
func SystemInstruction(mode types.Mode) string {
	switch mode {
	case types.ModeComparison:
		return comparisonInstruction
	case types.ModeSummary:
		return summaryInstruction
	default:
		return verbatimInstruction
	}
}
