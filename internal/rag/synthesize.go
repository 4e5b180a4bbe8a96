package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

const (
	// MaxAnswerTokens bounds generated output length.
	MaxAnswerTokens = 600

	// AnswerTemperature favors determinism over creativity.
	AnswerTemperature = 0.2
)

// CompletionModel is the opaque text-in/text-out completion endpoint.
type CompletionModel interface {
	GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string, opts ...llms.CallOption) (string, error)
}

// Answer is the result of answer synthesis. Degraded marks the apology path
// taken when the completion endpoint failed; Err then carries the cause so
// callers can tell real answers from fallbacks without string inspection.
type Answer struct {
	Text     string
	Degraded bool
	Err      error
}

// Synthesizer sends the composed context to the language model.
type Synthesizer struct {
	model  CompletionModel
	logger *slog.Logger
}

// NewSynthesizer creates a synthesizer over model.
func NewSynthesizer(model CompletionModel, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{model: model, logger: logger}
}

// Synthesize generates the answer for a composed prompt. A completion
// failure is deliberately swallowed here, the one place in the pipeline
// where that happens, so the chat loop stays alive: the user gets an
// apology carrying the error detail and the session continues.
func (s *Synthesizer) Synthesize(ctx context.Context, userPrompt string) Answer {
	text, err := s.model.GenerateWithSystem(ctx, SystemPrompt, userPrompt,
		llms.WithMaxTokens(MaxAnswerTokens),
		llms.WithTemperature(AnswerTemperature),
	)
	if err != nil {
		s.logger.Warn("answer synthesis failed", "error", err)
		return Answer{
			Text:     fmt.Sprintf("Sorry, I encountered an error generating the response: %v", err),
			Degraded: true,
			Err:      err,
		}
	}

	return Answer{Text: text}
}
