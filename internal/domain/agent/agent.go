// Package agent defines the Agent domain entity and its configuration.
package agent

import (
	"time"

	"github.com/docsmith/docsmith/internal/domain/provider"
)

// Status represents the current state of an agent.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusError      Status = "error"
	StatusCompleted  Status = "completed"
)

// Type classifies what an agent is specialized in.
type Type string

const (
	TypeMarkdownGenerator Type = "markdown_generator"
	TypeProjectAnalyzer   Type = "project_analyzer"
	TypeDocumentValidator Type = "document_validator"
)

// Config binds an agent to a provider model and its completion settings.
type Config struct {
	Provider     provider.Provider `json:"model_provider"`
	ModelID      string            `json:"model_id"`
	Temperature  float64           `json:"temperature"`
	MaxTokens    int               `json:"max_tokens"`
	Tools        []string          `json:"tools,omitempty"`
	Instructions []string          `json:"instructions,omitempty"`
}

// Agent represents a configured binding to an LLM model with a lifecycle status.
type Agent struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        Type              `json:"agent_type"`
	Description string            `json:"description"`
	Status      Status            `json:"status"`
	Config      Config            `json:"config"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// UpdateStatus sets the agent status and refreshes UpdatedAt.
// Transitions are unrestricted among the four states.
func (a *Agent) UpdateStatus(s Status) {
	a.Status = s
	a.UpdatedAt = time.Now().UTC()
}

// IsAvailable reports whether the agent can accept new work.
func (a *Agent) IsAvailable() bool {
	return a.Status == StatusIdle || a.Status == StatusCompleted
}
