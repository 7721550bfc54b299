// Package agno provides a client for a self-hosted agent runtime that
// exposes an OpenAI-compatible completions surface. It backs the openai,
// anthropic and local providers, which the runtime proxies.
package agno

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docsmith/docsmith/internal/port/llm"
	"github.com/docsmith/docsmith/internal/resilience"
)

// Config holds connection settings for the runtime.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to an agno runtime instance.
type Client struct {
	name       string
	cfg        Config
	httpClient *http.Client
	breaker    *resilience.Breaker
}

// NewClient creates a runtime client. The name identifies which provider
// the runtime should route the request to.
func NewClient(name string, cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Client{
		name: name,
		cfg:  cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SetBreaker attaches a circuit breaker to all outgoing calls.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

// Name returns the provider adapter name.
func (c *Client) Name() string {
	return c.name
}

type runMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type runRequest struct {
	Provider    string       `json:"provider"`
	Model       string       `json:"model"`
	Messages    []runMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
}

type runResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// Complete performs one completion run against the runtime.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if c.cfg.BaseURL == "" {
		return "", fmt.Errorf("%s: runtime base URL not configured", c.name)
	}

	body, err := json.Marshal(runRequest{
		Provider: c.name,
		Model:    req.Model,
		Messages: []runMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal run request: %w", err)
	}

	var out runResponse
	call := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/runs", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return fmt.Errorf("http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("runtime error %d: %s", resp.StatusCode, string(data))
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("unmarshal run response: %w", err)
		}
		return nil
	}

	if c.breaker != nil {
		err = c.breaker.Execute(call)
	} else {
		err = call()
	}
	if err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("runtime run failed: %s", out.Error)
	}
	return out.Content, nil
}
