// Package llm defines the LLM gateway port and the completion capability
// implemented by provider adapters.
package llm

import (
	"context"

	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/domain/document"
)

// CompletionRequest is a single chat-completion call to a provider.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// Completer is the capability a provider adapter must implement: one
// fallible chat-completion call returning the model's raw text reply.
type Completer interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// QualityReport scores a document on four dimensions plus an overall score.
// Scores use a 1-10 scale. When the provider call itself failed, Error holds
// the failure message and the overall score is degraded.
type QualityReport struct {
	OverallScore     float64 `json:"overall_score"`
	Clarity          float64 `json:"clarity,omitempty"`
	Completeness     float64 `json:"completeness,omitempty"`
	TechnicalQuality float64 `json:"technical_quality,omitempty"`
	Usefulness       float64 `json:"usefulness,omitempty"`
	Comments         string  `json:"comments,omitempty"`
	Error            string  `json:"error,omitempty"`
}

// Gateway translates domain requests into provider completion calls and
// parses the replies defensively.
//
// ValidatePrompt, ExtractProjectMetadata, and AnalyzeDocumentQuality never
// fail: on parse or transport errors they return conservative fallback
// values. GenerateMarkdownDocument and ImprovePrompt return errors, because
// there is no meaningful placeholder content to substitute.
type Gateway interface {
	// RegisterAgent registers the agent on the provider side and returns
	// provider bookkeeping metadata to merge into the agent's metadata map.
	RegisterAgent(ctx context.Context, a *agent.Agent) (map[string]string, error)

	ValidatePrompt(ctx context.Context, prompt string, a *agent.Agent) document.ValidationResult
	ExtractProjectMetadata(ctx context.Context, prompt string, a *agent.Agent) document.ProjectMetadata
	GenerateMarkdownDocument(ctx context.Context, prompt string, t document.Type, meta document.ProjectMetadata, a *agent.Agent, customInstructions []string) (string, error)
	ImprovePrompt(ctx context.Context, prompt string, validation document.ValidationResult, a *agent.Agent) (string, error)
	AnalyzeDocumentQuality(ctx context.Context, content string, a *agent.Agent) QualityReport
}
