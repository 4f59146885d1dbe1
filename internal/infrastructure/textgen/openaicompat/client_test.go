package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fakedata/internal/ports"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1760000000,
  "model": "test-model",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "  Package arrived damaged  "}
  }]
}`

func TestGenerateReturnsTrimmedChoice(t *testing.T) {
	bodies := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		bodies <- body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Model: "test-model"})
	got := client.Generate(context.Background(), ports.TextRequest{
		Prompt:          "Generate a short support issue type",
		MaxOutputTokens: 64,
		Temperature:     0.7,
	})
	if got != "Package arrived damaged" {
		t.Fatalf("Generate() = %q", got)
	}
	body := <-bodies
	if body["model"] != "test-model" {
		t.Fatalf("model = %v", body["model"])
	}
}

func TestGenerateServerErrorReturnsFallbackWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	if got := client.Generate(context.Background(), ports.TextRequest{Prompt: "p"}); got != ports.TextFallback {
		t.Fatalf("Generate() = %q, want %q", got, ports.TextFallback)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestGenerateEmptyChoicesReturnsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	if got := client.Generate(context.Background(), ports.TextRequest{Prompt: "p"}); got != ports.TextFallback {
		t.Fatalf("Generate() = %q, want %q", got, ports.TextFallback)
	}
}
