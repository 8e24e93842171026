package service

import (
	"regexp"
	"strings"

	"maritime-ai-server/internal/domain"
)

// clauseRule captures the paragraph from a trigger keyword up to the next
// blank line or end of text. The clause body is the first capture group;
// the terminator is consumed, never part of the span.
type clauseRule struct {
	label   string
	pattern *regexp.Regexp
}

func (r clauseRule) eval(text string) domain.ClauseMatch {
	found := r.pattern.FindAllStringSubmatch(text, -1)
	match := domain.ClauseMatch{Label: r.label}
	for _, m := range found {
		match.Spans = append(match.Spans, strings.TrimSpace(m[1]))
	}
	return match
}

// ClauseMatcher extracts the fixed clause categories from charter party
// text. Rules are independent; a keyword inside another clause's paragraph
// still starts its own match, so overlapping bodies may be reported twice.
type ClauseMatcher struct {
	rules []clauseRule
}

// NewClauseMatcher compiles the eight clause rules.
func NewClauseMatcher() *ClauseMatcher {
	return &ClauseMatcher{
		rules: []clauseRule{
			{domain.ClauseLaytime, regexp.MustCompile(`(?is)(laytime.*?)(?:\n\s*\n|$)`)},
			{domain.ClauseDemurrage, regexp.MustCompile(`(?is)(demurrage.*?)(?:\n\s*\n|$)`)},
			{domain.ClauseDispatch, regexp.MustCompile(`(?is)(dispatch.*?)(?:\n\s*\n|$)`)},
			{domain.ClauseNoticeOfReadiness, regexp.MustCompile(`(?is)((?:notice of readiness|nor).*?)(?:\n\s*\n|$)`)},
			{domain.ClauseFreight, regexp.MustCompile(`(?is)(freight.*?)(?:\n\s*\n|$)`)},
			{domain.ClauseArbitration, regexp.MustCompile(`(?is)(arbitration.*?)(?:\n\s*\n|$)`)},
			{domain.ClauseLaw, regexp.MustCompile(`(?is)((?:law|applicable law).*?)(?:\n\s*\n|$)`)},
			{domain.ClauseNumbers, regexp.MustCompile(`(?im)(^clause\s+\d+.*?)(?:\n\s*\n|$)`)},
		},
	}
}

// Match runs every rule over the text. Labels with no matches are omitted;
// within a label, spans keep their order of appearance.
func (m *ClauseMatcher) Match(text string) domain.ClauseSummary {
	summary := domain.ClauseSummary{}
	for _, rule := range m.rules {
		match := rule.eval(text)
		if len(match.Spans) == 0 {
			continue
		}
		summary[match.Label] = match.Spans
	}
	return summary
}
