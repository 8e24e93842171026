package domain

// Labels of the fixed clause categories. Keys of ClauseSummary.
const (
	ClauseLaytime           = "Laytime"
	ClauseDemurrage         = "Demurrage"
	ClauseDispatch          = "Dispatch"
	ClauseNoticeOfReadiness = "Notice of Readiness"
	ClauseFreight           = "Freight"
	ClauseArbitration       = "Arbitration"
	ClauseLaw               = "Law"
	ClauseNumbers           = "Clause Numbers"
)

// ClauseMatch is the output of a single rule: every span it captured,
// trimmed, in order of appearance in the source text.
type ClauseMatch struct {
	Label string   `json:"label"`
	Spans []string `json:"spans"`
}

// ClauseSummary maps clause labels to their matched spans. Labels with no
// matches are absent, not present with empty slices. An empty map is a
// valid terminal state, not an error.
type ClauseSummary map[string][]string

// IsEmpty reports whether no rule matched.
func (s ClauseSummary) IsEmpty() bool {
	return len(s) == 0
}

// AISummaryResult is the unstructured fallback used when no clause rule
// matched but the document still carried text. The note flags it as such.
type AISummaryResult struct {
	Note       string `json:"note"`
	LLMSummary string `json:"llm_summary"`
}

// ClauseMatcher isolates clause blocks from extracted text. It never
// fails; text with no recognizable clauses yields an empty summary.
type ClauseMatcher interface {
	Match(text string) ClauseSummary
}
