package agent

import (
	"fmt"
	"strings"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/provider"
)

const maxNameLength = 255

// CreateRequest carries the input for creating a new agent.
type CreateRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"agent_type"`
	Description  string   `json:"description"`
	Provider     string   `json:"model_provider"`
	ModelID      string   `json:"model_id"`
	Temperature  float64  `json:"temperature"`
	MaxTokens    int      `json:"max_tokens"`
	Tools        []string `json:"tools,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
}

// ParseType validates an agent type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeMarkdownGenerator, TypeProjectAnalyzer, TypeDocumentValidator:
		return Type(s), nil
	}
	return "", fmt.Errorf("%w: invalid agent type %q", domain.ErrValidation, s)
}

// ParseStatus validates an agent status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusIdle, StatusProcessing, StatusError, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: invalid agent status %q", domain.ErrValidation, s)
}

// Validate checks the request and returns the resulting Config.
// All failures wrap domain.ErrValidation.
func (r CreateRequest) Validate() (Config, error) {
	if strings.TrimSpace(r.Name) == "" {
		return Config{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(r.Name) > maxNameLength {
		return Config{}, fmt.Errorf("%w: name exceeds %d characters", domain.ErrValidation, maxNameLength)
	}
	if _, err := ParseType(r.Type); err != nil {
		return Config{}, err
	}

	p, err := provider.Parse(r.Provider)
	if err != nil {
		return Config{}, err
	}
	if r.ModelID == "" {
		return Config{}, fmt.Errorf("%w: model_id is required", domain.ErrValidation)
	}
	if !p.SupportsModel(r.ModelID) {
		return Config{}, fmt.Errorf("%w: model %q is not supported by provider %q", domain.ErrValidation, r.ModelID, p)
	}
	if r.Temperature < 0.0 || r.Temperature > 2.0 {
		return Config{}, fmt.Errorf("%w: temperature must be between 0.0 and 2.0", domain.ErrValidation)
	}
	if bound := p.MaxTokensBound(); r.MaxTokens < 1 || r.MaxTokens > bound {
		return Config{}, fmt.Errorf("%w: max_tokens must be between 1 and %d for provider %q", domain.ErrValidation, bound, p)
	}

	return Config{
		Provider:     p,
		ModelID:      r.ModelID,
		Temperature:  r.Temperature,
		MaxTokens:    r.MaxTokens,
		Tools:        append([]string(nil), r.Tools...),
		Instructions: append([]string(nil), r.Instructions...),
	}, nil
}
