package service

import (
	"reflect"
	"testing"

	"maritime-ai-server/internal/domain"
)

func TestClauseMatcher_Match_Example(t *testing.T) {
	matcher := NewClauseMatcher()

	text := "Demurrage shall accrue at USD 10,000 per day.\n\nFreight payable on signing B/L.\n\n"
	want := domain.ClauseSummary{
		domain.ClauseDemurrage: {"Demurrage shall accrue at USD 10,000 per day."},
		domain.ClauseFreight:   {"Freight payable on signing B/L."},
	}

	if got := matcher.Match(text); !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected summary %#v", got)
	}
}

func TestClauseMatcher_Match_Labels(t *testing.T) {
	matcher := NewClauseMatcher()

	tests := []struct {
		label string
		text  string
		want  []string
	}{
		{
			label: domain.ClauseLaytime,
			text:  "Laytime shall commence at 0800 hours.\n\nOther terms follow.\n",
			want:  []string{"Laytime shall commence at 0800 hours."},
		},
		{
			label: domain.ClauseDemurrage,
			text:  "Demurrage at USD 10,000 per day pro rata.\n\n",
			want:  []string{"Demurrage at USD 10,000 per day pro rata."},
		},
		{
			label: domain.ClauseDispatch,
			text:  "Dispatch money at USD 2,500 per day.\n\n",
			want:  []string{"Dispatch money at USD 2,500 per day."},
		},
		{
			label: domain.ClauseNoticeOfReadiness,
			text:  "NOR to be tendered on arrival whether in berth or not.\n\n",
			want:  []string{"NOR to be tendered on arrival whether in berth or not."},
		},
		{
			label: domain.ClauseNoticeOfReadiness,
			text:  "Notice of Readiness to be given in writing during office hours.\n\n",
			want:  []string{"Notice of Readiness to be given in writing during office hours."},
		},
		{
			label: domain.ClauseFreight,
			text:  "Freight at USD 22.50 per metric ton.\n\n",
			want:  []string{"Freight at USD 22.50 per metric ton."},
		},
		{
			label: domain.ClauseArbitration,
			text:  "Arbitration to be settled in London.\n\n",
			want:  []string{"Arbitration to be settled in London."},
		},
		{
			// The span starts at the trigger keyword, not at the start of
			// the surrounding sentence.
			label: domain.ClauseLaw,
			text:  "Governing law: English law.\n\n",
			want:  []string{"law: English law."},
		},
	}

	for _, tt := range tests {
		got := matcher.Match(tt.text)
		if !reflect.DeepEqual(got[tt.label], tt.want) {
			t.Errorf("Match(%q)[%s] = %#v, want %#v", tt.text, tt.label, got[tt.label], tt.want)
		}
	}
}

func TestClauseMatcher_Match_ParagraphCapture(t *testing.T) {
	matcher := NewClauseMatcher()

	// The clause body runs across lines up to the next blank line, and a
	// whitespace-only line counts as blank.
	text := "Laytime for loading: 36 running hours.\nLaytime for discharging: 48 running hours.\n   \nDemurrage as per clause 7.\n\n"
	got := matcher.Match(text)

	want := []string{"Laytime for loading: 36 running hours.\nLaytime for discharging: 48 running hours."}
	if !reflect.DeepEqual(got[domain.ClauseLaytime], want) {
		t.Errorf("unexpected laytime spans %#v", got[domain.ClauseLaytime])
	}
}

func TestClauseMatcher_Match_MultipleSpansInOrder(t *testing.T) {
	matcher := NewClauseMatcher()

	text := "Demurrage at loading port: USD 8,000.\n\nShifting at charterers' risk.\n\ndemurrage at discharging port: USD 9,000.\n\n"
	got := matcher.Match(text)

	want := []string{
		"Demurrage at loading port: USD 8,000.",
		"demurrage at discharging port: USD 9,000.",
	}
	if !reflect.DeepEqual(got[domain.ClauseDemurrage], want) {
		t.Errorf("unexpected demurrage spans %#v", got[domain.ClauseDemurrage])
	}
}

func TestClauseMatcher_Match_CaseInsensitiveAndTrimmed(t *testing.T) {
	matcher := NewClauseMatcher()

	text := "LAYTIME TO COUNT FROM 1400 HOURS.   \n\n"
	got := matcher.Match(text)

	want := []string{"LAYTIME TO COUNT FROM 1400 HOURS."}
	if !reflect.DeepEqual(got[domain.ClauseLaytime], want) {
		t.Errorf("unexpected spans %#v", got[domain.ClauseLaytime])
	}
}

func TestClauseMatcher_Match_EndOfTextTerminates(t *testing.T) {
	matcher := NewClauseMatcher()

	got := matcher.Match("Freight payable within five banking days")

	want := []string{"Freight payable within five banking days"}
	if !reflect.DeepEqual(got[domain.ClauseFreight], want) {
		t.Errorf("unexpected spans %#v", got[domain.ClauseFreight])
	}
}

func TestClauseMatcher_Match_ClauseNumbers(t *testing.T) {
	matcher := NewClauseMatcher()

	// The clause-number rule is line-anchored and captures single lines; a
	// reference to a clause mid-line does not count.
	text := "Clause 5 Demurrage\nRate as agreed between parties.\n\nclause 12 Arbitration in London.\nSee clause 7 for details.\n"
	got := matcher.Match(text)

	want := []string{"Clause 5 Demurrage", "clause 12 Arbitration in London."}
	if !reflect.DeepEqual(got[domain.ClauseNumbers], want) {
		t.Errorf("unexpected clause number spans %#v", got[domain.ClauseNumbers])
	}
}

func TestClauseMatcher_Match_OverlappingBodiesReportedTwice(t *testing.T) {
	matcher := NewClauseMatcher()

	// A demurrage sentence inside the freight paragraph is reported under
	// both labels; overlapping captures are acceptable duplication.
	text := "Freight and demurrage terms:\nDemurrage at USD 5,000 daily.\n\n"
	got := matcher.Match(text)

	wantFreight := []string{"Freight and demurrage terms:\nDemurrage at USD 5,000 daily."}
	if !reflect.DeepEqual(got[domain.ClauseFreight], wantFreight) {
		t.Errorf("unexpected freight spans %#v", got[domain.ClauseFreight])
	}
	wantDemurrage := []string{"demurrage terms:\nDemurrage at USD 5,000 daily."}
	if !reflect.DeepEqual(got[domain.ClauseDemurrage], wantDemurrage) {
		t.Errorf("unexpected demurrage spans %#v", got[domain.ClauseDemurrage])
	}
}

func TestClauseMatcher_Match_NoMatches(t *testing.T) {
	matcher := NewClauseMatcher()

	tests := []string{
		"",
		"The vessel sailed without incident.",
	}
	for _, text := range tests {
		got := matcher.Match(text)
		if !got.IsEmpty() {
			t.Errorf("Match(%q): expected empty summary, got %#v", text, got)
		}
	}

	// Absent labels are omitted entirely, not present with empty slices.
	got := matcher.Match("Demurrage at USD 10,000 per day.\n\n")
	if _, ok := got[domain.ClauseLaytime]; ok {
		t.Errorf("expected Laytime to be absent, got %#v", got)
	}
}
