package service

import (
	"context"
	"strings"

	"maritime-ai-server/internal/domain"
)

// systemPrompt is shared by every backend so answers stay consistent when
// the chain falls from one provider to the other.
const systemPrompt = "You are a helpful maritime and general knowledge assistant. " +
	"Answer clearly and concisely. Use system time for current date/time."

// contractPrompt prefixes the extracted text sent to the fallback summary.
const contractPrompt = "Summarize this charter party contract:\n\n"

// maxContractChars bounds how much extracted text is sent to a backend.
const maxContractChars = 4000

// Summarizer answers through a ranked list of LLM backends: the first
// backend that returns a non-empty answer wins, and when every backend is
// down the fixed placeholder is returned. It never surfaces an error.
type Summarizer struct {
	hosted           domain.LLMClient
	local            domain.LLMClient
	hostedConfigured bool
	logger           domain.Logger
}

// NewSummarizer creates a new summarizer over the hosted and local backends
func NewSummarizer(hosted, local domain.LLMClient, hostedConfigured bool, logger domain.Logger) *Summarizer {
	return &Summarizer{
		hosted:           hosted,
		local:            local,
		hostedConfigured: hostedConfigured,
		logger:           logger,
	}
}

// Ask answers a free-text message. An explicit engine name moves that
// backend to the front of the ranking; otherwise the hosted backend leads
// only when its credential is configured.
func (s *Summarizer) Ask(ctx context.Context, message, engine string) string {
	for _, client := range s.ranked(engine) {
		answer, err := client.Complete(ctx, systemPrompt, message)
		if err != nil {
			s.logger.Warn("LLM backend failed", "backend", client.Name(), "error", err)
			continue
		}
		if strings.TrimSpace(answer) == "" {
			s.logger.Warn("LLM backend returned empty answer", "backend", client.Name())
			continue
		}
		return answer
	}
	return domain.AIUnavailable
}

// SummarizeContract asks for a contract summary of text, sending at most
// its first 4000 characters.
func (s *Summarizer) SummarizeContract(ctx context.Context, text string) string {
	if runes := []rune(text); len(runes) > maxContractChars {
		text = string(runes[:maxContractChars])
	}
	return s.Ask(ctx, contractPrompt+text, "")
}

// ranked returns the backends in the order they should be tried.
func (s *Summarizer) ranked(engine string) []domain.LLMClient {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case s.hosted.Name():
		return []domain.LLMClient{s.hosted, s.local}
	case s.local.Name():
		return []domain.LLMClient{s.local, s.hosted}
	}
	if s.hostedConfigured {
		return []domain.LLMClient{s.hosted, s.local}
	}
	return []domain.LLMClient{s.local}
}
