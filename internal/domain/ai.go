package domain

import "context"

// AIUnavailable is the fixed placeholder answer used when every configured
// language-model backend failed.
const AIUnavailable = "(AI unavailable)"

// LLMClient is a single language-model backend. The hosted API and the
// local daemon implement the same contract and are interchangeable.
type LLMClient interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// Summarizer answers free-text questions through a ranked list of LLM
// backends, trying each in order until one succeeds. It never fails: when
// every backend is down it answers with the AIUnavailable placeholder.
type Summarizer interface {
	// Ask answers a general message. engine forces "openai" or "ollama" to
	// the front of the ranking; empty ranks by credential availability.
	Ask(ctx context.Context, message, engine string) string

	// SummarizeContract asks for a charter party summary of text, sending
	// at most its first 4000 characters.
	SummarizeContract(ctx context.Context, text string) string
}
