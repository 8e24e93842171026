package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"maritime-ai-server/internal/domain"
)

type fakeLLMClient struct {
	name       string
	answer     string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (c *fakeLLMClient) Name() string { return c.name }

func (c *fakeLLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	c.calls++
	c.lastSystem = system
	c.lastUser = user
	return c.answer, c.err
}

func newTestSummarizer(hosted, local *fakeLLMClient, hostedConfigured bool) *Summarizer {
	return NewSummarizer(hosted, local, hostedConfigured, &MockLogger{})
}

func TestSummarizer_Ask_HostedLeadsWhenConfigured(t *testing.T) {
	hosted := &fakeLLMClient{name: "openai", answer: "hosted answer"}
	local := &fakeLLMClient{name: "ollama", answer: "local answer"}
	s := newTestSummarizer(hosted, local, true)

	if got := s.Ask(context.Background(), "what is laytime?", ""); got != "hosted answer" {
		t.Errorf("unexpected answer %q", got)
	}
	if local.calls != 0 {
		t.Errorf("expected local backend untouched, got %d calls", local.calls)
	}
	if hosted.lastSystem != systemPrompt {
		t.Errorf("unexpected system prompt %q", hosted.lastSystem)
	}
}

func TestSummarizer_Ask_FallsBackOnError(t *testing.T) {
	hosted := &fakeLLMClient{name: "openai", err: errors.New("401 unauthorized")}
	local := &fakeLLMClient{name: "ollama", answer: "local answer"}
	s := newTestSummarizer(hosted, local, true)

	if got := s.Ask(context.Background(), "hello", ""); got != "local answer" {
		t.Errorf("unexpected answer %q", got)
	}
	if hosted.calls != 1 || local.calls != 1 {
		t.Errorf("expected both backends tried once, got hosted=%d local=%d", hosted.calls, local.calls)
	}
}

func TestSummarizer_Ask_SkipsBlankAnswer(t *testing.T) {
	hosted := &fakeLLMClient{name: "openai", answer: "   \n"}
	local := &fakeLLMClient{name: "ollama", answer: "local answer"}
	s := newTestSummarizer(hosted, local, true)

	if got := s.Ask(context.Background(), "hello", ""); got != "local answer" {
		t.Errorf("unexpected answer %q", got)
	}
}

func TestSummarizer_Ask_LocalOnlyWithoutCredential(t *testing.T) {
	hosted := &fakeLLMClient{name: "openai", answer: "hosted answer"}
	local := &fakeLLMClient{name: "ollama", answer: "local answer"}
	s := newTestSummarizer(hosted, local, false)

	if got := s.Ask(context.Background(), "hello", ""); got != "local answer" {
		t.Errorf("unexpected answer %q", got)
	}
	if hosted.calls != 0 {
		t.Errorf("expected hosted backend untouched, got %d calls", hosted.calls)
	}
}

func TestSummarizer_Ask_ExplicitEngineOverride(t *testing.T) {
	// Naming a backend moves it to the front even when its credential is
	// missing, and the other backend stays as fallback.
	hosted := &fakeLLMClient{name: "openai", answer: "hosted answer"}
	local := &fakeLLMClient{name: "ollama", err: errors.New("connection refused")}
	s := newTestSummarizer(hosted, local, false)

	if got := s.Ask(context.Background(), "hello", " OpenAI "); got != "hosted answer" {
		t.Errorf("unexpected answer %q", got)
	}
	if local.calls != 0 {
		t.Errorf("expected local backend untouched, got %d calls", local.calls)
	}

	if got := s.Ask(context.Background(), "hello", "ollama"); got != "hosted answer" {
		t.Errorf("unexpected fallback answer %q", got)
	}
	if local.calls != 1 {
		t.Errorf("expected local backend tried first, got %d calls", local.calls)
	}
}

func TestSummarizer_Ask_AllBackendsDown(t *testing.T) {
	hosted := &fakeLLMClient{name: "openai", err: errors.New("timeout")}
	local := &fakeLLMClient{name: "ollama", err: errors.New("connection refused")}
	s := newTestSummarizer(hosted, local, true)

	if got := s.Ask(context.Background(), "hello", ""); got != domain.AIUnavailable {
		t.Errorf("expected %q, got %q", domain.AIUnavailable, got)
	}
}

func TestSummarizer_SummarizeContract_PrefixesPrompt(t *testing.T) {
	local := &fakeLLMClient{name: "ollama", answer: "summary"}
	s := newTestSummarizer(&fakeLLMClient{name: "openai"}, local, false)

	text := "Demurrage at USD 10,000 per day."
	if got := s.SummarizeContract(context.Background(), text); got != "summary" {
		t.Errorf("unexpected answer %q", got)
	}
	if want := contractPrompt + text; local.lastUser != want {
		t.Errorf("unexpected prompt %q", local.lastUser)
	}
}

func TestSummarizer_SummarizeContract_TruncatesLongText(t *testing.T) {
	local := &fakeLLMClient{name: "ollama", answer: "summary"}
	s := newTestSummarizer(&fakeLLMClient{name: "openai"}, local, false)

	// Multi-byte runes prove the cut counts characters, not bytes.
	text := strings.Repeat("ä", maxContractChars+500)
	s.SummarizeContract(context.Background(), text)

	if !strings.HasPrefix(local.lastUser, contractPrompt) {
		t.Fatalf("expected contract prompt prefix, got %q", local.lastUser[:40])
	}
	sent := strings.TrimPrefix(local.lastUser, contractPrompt)
	if n := utf8.RuneCountInString(sent); n != maxContractChars {
		t.Errorf("expected %d runes sent, got %d", maxContractChars, n)
	}
}
