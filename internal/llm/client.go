// Package llm provides a minimal client for OpenRouter-compatible
// chat-completions endpoints. The request/response shapes follow the OpenAI
// Chat Completions API specification, which OpenRouter exposes as a unified
// endpoint for various models.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/domain"
)

// Message represents a single message in the conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the payload sent to the provider.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client is a bearer-authenticated chat-completions client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new completion client. The HTTP client carries its own
// timeout as a backstop; callers should still pass request-scoped contexts.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Complete posts the request and returns the first choice's message content.
// Any transport, status or decode failure is reported as
// domain.ErrServiceUnavailable so callers can treat the endpoint as a single
// unreliable dependency.
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("completion endpoint unreachable", "error", err)
		return "", fmt.Errorf("call completion endpoint: %v: %w", err, domain.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded amount for the log, never for the caller
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("completion endpoint returned non-2xx",
			"status", resp.StatusCode,
			"body", string(snippet),
		)
		return "", fmt.Errorf("completion endpoint status %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", domain.ErrServiceUnavailable)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices: %w", domain.ErrServiceUnavailable)
	}

	return parsed.Choices[0].Message.Content, nil
}
