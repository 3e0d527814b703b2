package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGrammarRateLimitExhaustsBucket(t *testing.T) {
	limited := GrammarRateLimit(20)(okHandler())

	// The first 20 requests in the hour pass
	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/grammar/check", nil)
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d unexpectedly limited: %d", i+1, rec.Code)
		}
	}

	// The 21st gets a 429 with a retry-after reflecting the refill
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/grammar/check", nil)
	limited.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	header := rec.Header().Get("X-Rate-Limit-Retry-After-Seconds")
	retryAfter, err := strconv.Atoi(header)
	if err != nil {
		t.Fatalf("missing or bad retry-after header %q: %v", header, err)
	}
	// 20/hour refill means one token every 180 seconds
	if retryAfter <= 0 || retryAfter > 180 {
		t.Errorf("retry-after %d outside expected refill window", retryAfter)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("429 body is not JSON: %v", err)
	}
	if _, ok := body["retry_after"]; !ok {
		t.Errorf("429 body missing retry_after: %v", body)
	}
}

func TestGrammarRateLimitSetsRemainingHeader(t *testing.T) {
	limited := GrammarRateLimit(20)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/grammar/check", nil)
	limited.ServeHTTP(rec, req)

	if rec.Header().Get("X-Rate-Limit-Remaining") == "" {
		t.Error("allowed response missing X-Rate-Limit-Remaining")
	}
}

func TestGrammarRateLimitIgnoresOtherPaths(t *testing.T) {
	limited := GrammarRateLimit(1)(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("non-grammar path limited on request %d", i+1)
		}
	}
}

func TestGrammarRateLimitExemptsPreflight(t *testing.T) {
	limited := GrammarRateLimit(1)(okHandler())

	// Drain the bucket
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/grammar/check", nil))

	// OPTIONS still passes
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/grammar/check", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("preflight was rate limited: %d", rec.Code)
	}
}
