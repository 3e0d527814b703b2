// Package grammar orchestrates grammar checking: a cached call to an
// AI completion endpoint with a rule-based heuristic fallback.
package grammar

import (
	"context"
	"errors"
	"log/slog"

	"inkwell/internal/llm"
)

// Completer is the slice of the LLM client this service needs.
type Completer interface {
	Complete(ctx context.Context, req *llm.CompletionRequest) (string, error)
}

// Result source markers let clients distinguish the two result shapes
// without parsing the payload.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
	SourceCache    = "cache"
)

// Result is a single grammar-check outcome. Text is either the AI path's
// raw JSON or a plain advisory string from the fallback; callers must be
// prepared for both.
type Result struct {
	Text   string `json:"result"`
	Source string `json:"source"`
}

// Service runs grammar checks. AI failures never propagate to the caller;
// they degrade to the heuristic fallback instead.
type Service struct {
	completer Completer
	cache     Cache
	model     string
	logger    *slog.Logger
}

// NewService creates a grammar-check service. cache may be nil, which
// disables memoization (every request hits the AI endpoint).
func NewService(completer Completer, cache Cache, model string, logger *slog.Logger) *Service {
	return &Service{
		completer: completer,
		cache:     cache,
		model:     model,
		logger:    logger,
	}
}

// Check runs the grammar check for text.
//
// Order: cache lookup, then the AI endpoint, then the heuristic fallback.
// Only successful AI responses are cached - a cancelled or failed call must
// not pin the fallback result for future identical requests, which would
// hide the AI path once the endpoint recovers.
func (s *Service) Check(ctx context.Context, text string) *Result {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, text)
		if err == nil {
			return &Result{Text: cached, Source: SourceCache}
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("grammar cache lookup failed", "error", err)
		}
	}

	req := &llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "user", Content: BuildPrompt(text)},
		},
		Temperature: 0.3,
		MaxTokens:   800,
	}

	aiResult, err := s.completer.Complete(ctx, req)
	if err != nil {
		s.logger.Info("AI grammar check unavailable, using fallback", "error", err)
		return &Result{Text: FallbackCheck(text), Source: SourceFallback}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, text, aiResult); err != nil {
			s.logger.Warn("grammar cache store failed", "error", err)
		}
	}

	return &Result{Text: aiResult, Source: SourceAI}
}
