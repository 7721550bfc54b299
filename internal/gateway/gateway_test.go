package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/domain/document"
	"github.com/docsmith/docsmith/internal/domain/provider"
	"github.com/docsmith/docsmith/internal/port/llm"
)

// stubCompleter returns a fixed reply or error and records the requests it saw.
type stubCompleter struct {
	reply    string
	err      error
	requests []llm.CompletionRequest
}

func (s *stubCompleter) Name() string { return "stub" }

func (s *stubCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testAgent() *agent.Agent {
	return &agent.Agent{
		ID:   "a1",
		Name: "writer",
		Type: agent.TypeMarkdownGenerator,
		Config: agent.Config{
			Provider:    provider.Groq,
			ModelID:     "llama3-70b-8192",
			Temperature: 0.7,
			MaxTokens:   2000,
		},
	}
}

func TestValidatePromptParsesReply(t *testing.T) {
	stub := &stubCompleter{reply: `{"is_valid": true, "confidence": 0.85, "project_type": "api", "suggestions": ["add a database choice"]}`}
	g := New(stub)

	result := g.ValidatePrompt(context.Background(), "Build a REST API for todo items", testAgent())

	if !result.IsValid {
		t.Error("expected valid result")
	}
	if result.ConfidenceScore != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", result.ConfidenceScore)
	}
	if result.IdentifiedProjectType != "api" {
		t.Errorf("expected project type api, got %q", result.IdentifiedProjectType)
	}
	if len(stub.requests) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(stub.requests))
	}
	if stub.requests[0].Temperature != validationTemperature {
		t.Errorf("expected validation temperature %v, got %v", validationTemperature, stub.requests[0].Temperature)
	}
}

func TestValidatePromptToleratesAlternateKeys(t *testing.T) {
	stub := &stubCompleter{reply: `{"is_valid": false, "confidence_score": 0.4, "identified_project_type": "web_app", "missing_information": ["target users"]}`}
	g := New(stub)

	result := g.ValidatePrompt(context.Background(), "make a website", testAgent())

	if result.ConfidenceScore != 0.4 {
		t.Errorf("expected confidence_score key honored, got %v", result.ConfidenceScore)
	}
	if result.IdentifiedProjectType != "web_app" {
		t.Errorf("expected identified_project_type key honored, got %q", result.IdentifiedProjectType)
	}
	if len(result.MissingInformation) != 1 {
		t.Errorf("expected missing_information carried over, got %v", result.MissingInformation)
	}
}

func TestValidatePromptParseFailureFallback(t *testing.T) {
	stub := &stubCompleter{reply: "I think this prompt looks fine to me!"}
	g := New(stub)

	result := g.ValidatePrompt(context.Background(), "anything", testAgent())

	if result.IsValid {
		t.Error("expected invalid on parse failure")
	}
	if result.ConfidenceScore != 0.5 {
		t.Errorf("expected confidence 0.5, got %v", result.ConfidenceScore)
	}
	if len(result.MissingInformation) != 1 || result.MissingInformation[0] != "could not process validation response" {
		t.Errorf("expected fixed parse-failure marker, got %v", result.MissingInformation)
	}
}

func TestValidatePromptTransportFailureFallback(t *testing.T) {
	stub := &stubCompleter{err: errors.New("connection refused")}
	g := New(stub)

	result := g.ValidatePrompt(context.Background(), "anything", testAgent())

	if result.IsValid {
		t.Error("expected invalid on transport failure")
	}
	if result.ConfidenceScore != 0.0 {
		t.Errorf("expected confidence 0.0, got %v", result.ConfidenceScore)
	}
	if len(result.MissingInformation) == 0 || !strings.Contains(result.MissingInformation[0], "connection refused") {
		t.Errorf("expected error embedded in missing_information, got %v", result.MissingInformation)
	}
}

func TestExtractProjectMetadata(t *testing.T) {
	stub := &stubCompleter{reply: `{"project_name": "TaskFlow", "project_type": "api", "technologies": ["go", "postgres"], "description": "a todo API"}`}
	g := New(stub)

	meta := g.ExtractProjectMetadata(context.Background(), "Build a REST API for todo items", testAgent())

	if meta.ProjectName != "TaskFlow" || meta.ProjectType != "api" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if len(meta.Technologies) != 2 {
		t.Errorf("expected technologies carried over, got %v", meta.Technologies)
	}
}

func TestExtractProjectMetadataFallbacks(t *testing.T) {
	longPrompt := strings.Repeat("x", 250)

	t.Run("transport failure", func(t *testing.T) {
		g := New(&stubCompleter{err: errors.New("boom")})
		meta := g.ExtractProjectMetadata(context.Background(), longPrompt, testAgent())

		if meta.ProjectName != "Extracted Project" || meta.ProjectType != "web_app" {
			t.Errorf("unexpected fallback: %+v", meta)
		}
		if len([]rune(meta.Description)) != 203 || !strings.HasSuffix(meta.Description, "...") {
			t.Errorf("expected 200-char truncated description, got %d chars", len(meta.Description))
		}
	})

	t.Run("parse failure", func(t *testing.T) {
		g := New(&stubCompleter{reply: "no json here"})
		meta := g.ExtractProjectMetadata(context.Background(), "short prompt", testAgent())

		if meta.ProjectName != "Extracted Project" {
			t.Errorf("unexpected fallback name %q", meta.ProjectName)
		}
		if meta.Description != "short prompt" {
			t.Errorf("expected untruncated short prompt, got %q", meta.Description)
		}
	})

	t.Run("empty fields defaulted", func(t *testing.T) {
		g := New(&stubCompleter{reply: `{"technologies": ["go"]}`})
		meta := g.ExtractProjectMetadata(context.Background(), "prompt", testAgent())

		if meta.ProjectName != "Untitled Project" {
			t.Errorf("expected default name, got %q", meta.ProjectName)
		}
		if meta.ProjectType != "web_app" {
			t.Errorf("expected default type, got %q", meta.ProjectType)
		}
		if meta.Description != "no description provided" {
			t.Errorf("expected default description, got %q", meta.Description)
		}
	})
}

func TestGenerateMarkdownDocument(t *testing.T) {
	stub := &stubCompleter{reply: "```markdown\n# TaskFlow\n\nA todo API.\n```"}
	g := New(stub)

	content, err := g.GenerateMarkdownDocument(context.Background(), "Build a todo API",
		document.TypeReadme, document.ProjectMetadata{ProjectName: "TaskFlow"}, testAgent(), []string{"keep it short"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if content != "# TaskFlow\n\nA todo API." {
		t.Errorf("expected fence stripped, got %q", content)
	}

	req := stub.requests[0]
	if !strings.Contains(req.UserPrompt, "TaskFlow") {
		t.Error("expected project name in generation prompt")
	}
	if !strings.Contains(req.UserPrompt, "keep it short") {
		t.Error("expected custom instructions in generation prompt")
	}
	if req.Temperature != 0.7 || req.MaxTokens != 2000 {
		t.Errorf("expected agent config honored, got temp=%v max=%d", req.Temperature, req.MaxTokens)
	}
}

func TestGenerateMarkdownDocumentTransportError(t *testing.T) {
	g := New(&stubCompleter{err: errors.New("rate limited")})

	_, err := g.GenerateMarkdownDocument(context.Background(), "prompt",
		document.TypeReadme, document.ProjectMetadata{}, testAgent(), nil)
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestGenerateTopicOutlineMVPTemplate(t *testing.T) {
	stub := &stubCompleter{reply: "# content"}
	g := New(stub)

	_, err := g.GenerateMarkdownDocument(context.Background(), "Gere o MVP em tópicos",
		document.TypeProjectProposal, document.ProjectMetadata{ProjectName: "Shop"}, testAgent(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	prompt := stub.requests[0].UserPrompt
	for _, section := range mvpTopicSections {
		if !strings.Contains(prompt, section) {
			t.Errorf("expected section %q in the topic-outline prompt", section)
		}
	}
	if !strings.Contains(prompt, "2000") {
		t.Error("expected minimum length target in the topic-outline prompt")
	}
}

func TestImprovePromptSkipsValidPrompts(t *testing.T) {
	stub := &stubCompleter{reply: "should not be used"}
	g := New(stub)

	improved, err := g.ImprovePrompt(context.Background(), "already fine",
		document.ValidationResult{IsValid: true}, testAgent())
	if err != nil {
		t.Fatalf("improve: %v", err)
	}
	if improved != "already fine" {
		t.Errorf("expected prompt unchanged, got %q", improved)
	}
	if len(stub.requests) != 0 {
		t.Error("expected no provider call for a valid prompt")
	}
}

func TestImprovePromptRewrites(t *testing.T) {
	stub := &stubCompleter{reply: "  Build a REST API for todos using Go and Postgres.  "}
	g := New(stub)

	improved, err := g.ImprovePrompt(context.Background(), "make an api",
		document.ValidationResult{IsValid: false, Suggestions: []string{"name the stack"}}, testAgent())
	if err != nil {
		t.Fatalf("improve: %v", err)
	}
	if improved != "Build a REST API for todos using Go and Postgres." {
		t.Errorf("expected trimmed rewrite, got %q", improved)
	}
}

func TestImprovePromptTransportError(t *testing.T) {
	g := New(&stubCompleter{err: errors.New("down")})

	_, err := g.ImprovePrompt(context.Background(), "bad prompt",
		document.ValidationResult{IsValid: false}, testAgent())
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestAnalyzeDocumentQuality(t *testing.T) {
	t.Run("parsed scores", func(t *testing.T) {
		g := New(&stubCompleter{reply: `{"overall_score": 8.5, "clarity": 9, "completeness": 8, "technical_quality": 8, "usefulness": 9, "comments": "solid"}`})
		report := g.AnalyzeDocumentQuality(context.Background(), "# Doc", testAgent())

		if report.OverallScore != 8.5 || report.Comments != "solid" {
			t.Errorf("unexpected report: %+v", report)
		}
	})

	t.Run("parse failure yields neutral scores", func(t *testing.T) {
		g := New(&stubCompleter{reply: "Looks pretty good overall."})
		report := g.AnalyzeDocumentQuality(context.Background(), "# Doc", testAgent())

		if report.OverallScore != 7.0 || report.Clarity != 7.0 || report.Usefulness != 7.0 {
			t.Errorf("expected neutral 7.0 scores, got %+v", report)
		}
		if report.Comments != "Looks pretty good overall." {
			t.Errorf("expected raw reply in comments, got %q", report.Comments)
		}
	})

	t.Run("transport failure yields degraded score", func(t *testing.T) {
		g := New(&stubCompleter{err: errors.New("timeout")})
		report := g.AnalyzeDocumentQuality(context.Background(), "# Doc", testAgent())

		if report.OverallScore != 5.0 {
			t.Errorf("expected overall 5.0, got %v", report.OverallScore)
		}
		if !strings.Contains(report.Error, "timeout") {
			t.Errorf("expected error message, got %q", report.Error)
		}
	})
}

func TestRegisterAgentMetadata(t *testing.T) {
	g := New(&stubCompleter{})
	a := testAgent()

	meta, err := g.RegisterAgent(context.Background(), a)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if meta["provider"] != "stub" || meta["provider_agent_id"] != a.ID {
		t.Errorf("unexpected metadata: %v", meta)
	}
	if meta["provider_status"] != "created" || meta["creation_source"] != "api" {
		t.Errorf("unexpected bookkeeping values: %v", meta)
	}
}

// memCache is a minimal cache for exercising the validation cache path.
type memCache struct {
	data map[string][]byte
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestValidatePromptCaching(t *testing.T) {
	stub := &stubCompleter{reply: `{"is_valid": true, "confidence": 0.9}`}
	g := New(stub, WithCache(&memCache{data: map[string][]byte{}}, time.Minute))

	first := g.ValidatePrompt(context.Background(), "Build a todo API", testAgent())
	second := g.ValidatePrompt(context.Background(), "Build a todo API", testAgent())

	if !first.IsValid || !second.IsValid {
		t.Error("expected both results valid")
	}
	if len(stub.requests) != 1 {
		t.Errorf("expected a single provider call with cache enabled, got %d", len(stub.requests))
	}

	// A different prompt misses the cache.
	_ = g.ValidatePrompt(context.Background(), "Build a blog", testAgent())
	if len(stub.requests) != 2 {
		t.Errorf("expected cache miss for different prompt, got %d calls", len(stub.requests))
	}
}
