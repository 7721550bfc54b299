package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docsmith/docsmith/internal/port/llm"
	"github.com/docsmith/docsmith/internal/resilience"
)

func completionReply(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + mustQuote(content) + `}}]}`
}

func mustQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestCompleteSuccess(t *testing.T) {
	var captured struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gsk_test" {
			t.Errorf("authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionReply("hello back")))
	}))
	defer srv.Close()

	c := NewClient("gsk_test", srv.URL, 5*time.Second)
	reply, err := c.Complete(context.Background(), llm.CompletionRequest{
		Model:        "llama3-70b-8192",
		SystemPrompt: "be helpful",
		UserPrompt:   "hello",
		Temperature:  0.7,
		MaxTokens:    2000,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != "hello back" {
		t.Errorf("reply = %q", reply)
	}

	if captured.Model != "llama3-70b-8192" || captured.Temperature != 0.7 || captured.MaxTokens != 2000 {
		t.Errorf("unexpected request %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Errorf("unexpected messages %+v", captured.Messages)
	}
}

func TestCompleteMissingAPIKey(t *testing.T) {
	c := NewClient("", "http://unused", time.Second)
	_, err := c.Complete(context.Background(), llm.CompletionRequest{Model: "m", UserPrompt: "p"})
	if err == nil || !strings.Contains(err.Error(), "api key not configured") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("gsk_test", srv.URL, time.Second)
	_, err := c.Complete(context.Background(), llm.CompletionRequest{Model: "m", UserPrompt: "p"})
	if err == nil || !strings.Contains(err.Error(), "groq API error 429") {
		t.Fatalf("expected 429 error, got %v", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient("gsk_test", srv.URL, time.Second)
	_, err := c.Complete(context.Background(), llm.CompletionRequest{Model: "m", UserPrompt: "p"})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("expected no-choices error, got %v", err)
	}
}

func TestCompleteBreakerOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("gsk_test", srv.URL, time.Second)
	c.SetBreaker(resilience.NewBreaker(2, time.Minute))

	req := llm.CompletionRequest{Model: "m", UserPrompt: "p"}
	for i := 0; i < 2; i++ {
		if _, err := c.Complete(context.Background(), req); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	// Circuit is now open; the server must not be hit again.
	_, err := c.Complete(context.Background(), req)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestNameAndDefaults(t *testing.T) {
	c := NewClient("k", "", 0)
	if c.Name() != "groq" {
		t.Errorf("name = %s", c.Name())
	}
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s", c.baseURL)
	}
}
