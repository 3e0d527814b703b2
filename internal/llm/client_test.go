package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotAuth string
	var gotReq CompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"corrected":"Hello."}`}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())
	out, err := client.Complete(context.Background(), &CompletionRequest{
		Model:       "test-model",
		Messages:    []Message{{Role: "user", Content: "fix this"}},
		Temperature: 0.3,
		MaxTokens:   800,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if out != `{"corrected":"Hello."}` {
		t.Errorf("unexpected content: %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != "test-model" || gotReq.MaxTokens != 800 {
		t.Errorf("request not forwarded: %+v", gotReq)
	}
}

func TestCompleteNon2xxIsServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())
	_, err := client.Complete(context.Background(), &CompletionRequest{Model: "m"})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestCompleteUnreachableIsServiceUnavailable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key", testLogger())
	_, err := client.Complete(context.Background(), &CompletionRequest{Model: "m"})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
	// The transport failure stays in the chain for diagnosability
	if err == nil || !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Errorf("transport detail missing from error: %v", err)
	}
}

func TestCompleteEmptyChoicesIsServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())
	_, err := client.Complete(context.Background(), &CompletionRequest{Model: "m"})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}
