// Package gateway translates domain requests into LLM chat-completion calls
// and parses the replies defensively, because model output is free text that
// may or may not contain valid JSON.
package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/domain/document"
	"github.com/docsmith/docsmith/internal/port/cache"
	"github.com/docsmith/docsmith/internal/port/llm"
)

// Gateway implements llm.Gateway over a single provider Completer.
//
// The fallback asymmetry is deliberate and part of the contract: validation,
// extraction, and quality analysis substitute conservative placeholder values
// on any failure, while generation and improvement surface errors, since no
// placeholder content would be meaningful.
type Gateway struct {
	completer llm.Completer
	cache     cache.Cache
	cacheTTL  time.Duration
	group     singleflight.Group
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCache caches validation results by prompt/model hash for the given TTL,
// and collapses concurrent identical validation calls into one provider call.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(g *Gateway) {
		g.cache = c
		g.cacheTTL = ttl
	}
}

// New creates a Gateway over the given provider completer.
func New(completer llm.Completer, opts ...Option) *Gateway {
	g := &Gateway{completer: completer}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RegisterAgent records the agent with the provider adapter and returns the
// bookkeeping metadata to merge into the agent's metadata map.
func (g *Gateway) RegisterAgent(_ context.Context, a *agent.Agent) (map[string]string, error) {
	slog.Info("registering agent with provider",
		"agent_id", a.ID, "provider", g.completer.Name(), "model", a.Config.ModelID)
	return map[string]string{
		"provider":          g.completer.Name(),
		"provider_agent_id": a.ID,
		"provider_status":   "created",
		"creation_source":   "api",
	}, nil
}

// validationPayload tolerates both key spellings seen in model replies.
type validationPayload struct {
	IsValid               bool     `json:"is_valid"`
	Confidence            float64  `json:"confidence"`
	ConfidenceScore       float64  `json:"confidence_score"`
	ProjectType           string   `json:"project_type"`
	IdentifiedProjectType string   `json:"identified_project_type"`
	Issues                []string `json:"issues"`
	MissingInformation    []string `json:"missing_information"`
	Suggestions           []string `json:"suggestions"`
}

// ValidatePrompt judges whether the prompt carries enough information to
// scaffold a minimal project. It never fails: parse errors and transport
// errors both degrade into a conservative ValidationResult.
func (g *Gateway) ValidatePrompt(ctx context.Context, prompt string, a *agent.Agent) document.ValidationResult {
	key := g.cacheKey("validate", a.Config.ModelID, prompt)
	if cached, ok := g.cachedValidation(ctx, key); ok {
		return cached
	}

	v, _, _ := g.group.Do(key, func() (any, error) {
		return g.validate(ctx, prompt, a, key), nil
	})
	return v.(document.ValidationResult)
}

func (g *Gateway) validate(ctx context.Context, prompt string, a *agent.Agent, key string) document.ValidationResult {
	reply, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Model:        a.Config.ModelID,
		SystemPrompt: validationSystemPrompt,
		UserPrompt:   validationPrompt(prompt),
		Temperature:  validationTemperature,
		MaxTokens:    validationMaxTokens,
	})
	if err != nil {
		slog.Error("prompt validation call failed", "agent_id", a.ID, "error", err)
		return document.ValidationResult{
			IsValid:            false,
			ConfidenceScore:    0.0,
			MissingInformation: []string{"internal error: " + err.Error()},
			Suggestions:        []string{"try again later"},
		}
	}

	var payload validationPayload
	if err := decodeJSONObject(reply, &payload); err != nil {
		slog.Error("prompt validation reply is not JSON", "agent_id", a.ID, "error", err)
		return document.ValidationResult{
			IsValid:            false,
			ConfidenceScore:    0.5,
			MissingInformation: []string{"could not process validation response"},
			Suggestions:        []string{"try rephrasing the prompt"},
		}
	}

	confidence := payload.Confidence
	if confidence == 0 {
		confidence = payload.ConfidenceScore
	}
	projectType := payload.ProjectType
	if projectType == "" {
		projectType = payload.IdentifiedProjectType
	}
	missing := payload.Issues
	if missing == nil {
		missing = payload.MissingInformation
	}

	result := document.ValidationResult{
		IsValid:               payload.IsValid,
		ConfidenceScore:       confidence,
		IdentifiedProjectType: projectType,
		MissingInformation:    missing,
		Suggestions:           payload.Suggestions,
	}
	g.storeValidation(ctx, key, result)
	return result
}

type metadataPayload struct {
	ProjectName       string   `json:"project_name"`
	ProjectType       string   `json:"project_type"`
	Technologies      []string `json:"technologies"`
	Description       string   `json:"description"`
	TargetAudience    string   `json:"target_audience"`
	ComplexityLevel   string   `json:"complexity_level"`
	EstimatedDuration string   `json:"estimated_duration"`
}

// ExtractProjectMetadata infers structured project facts from the prompt.
// Never fails: on any error it falls back to a placeholder whose description
// is the prompt truncated to 200 characters.
func (g *Gateway) ExtractProjectMetadata(ctx context.Context, prompt string, a *agent.Agent) document.ProjectMetadata {
	fallback := document.ProjectMetadata{
		ProjectName: "Extracted Project",
		ProjectType: "web_app",
		Description: truncate(prompt, 200),
	}

	reply, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Model:        a.Config.ModelID,
		SystemPrompt: extractionSystemPrompt,
		UserPrompt:   extractionPrompt(prompt),
		Temperature:  extractionTemperature,
		MaxTokens:    extractionMaxTokens,
	})
	if err != nil {
		slog.Error("metadata extraction call failed", "agent_id", a.ID, "error", err)
		return fallback
	}

	var payload metadataPayload
	if err := decodeJSONObject(reply, &payload); err != nil {
		slog.Error("metadata extraction reply is not JSON", "agent_id", a.ID, "error", err)
		return fallback
	}

	meta := document.ProjectMetadata{
		ProjectName:       payload.ProjectName,
		ProjectType:       payload.ProjectType,
		Technologies:      payload.Technologies,
		Description:       payload.Description,
		TargetAudience:    payload.TargetAudience,
		ComplexityLevel:   payload.ComplexityLevel,
		EstimatedDuration: payload.EstimatedDuration,
	}
	if meta.ProjectName == "" {
		meta.ProjectName = "Untitled Project"
	}
	if meta.ProjectType == "" {
		meta.ProjectType = "web_app"
	}
	if meta.Description == "" {
		meta.Description = "no description provided"
	}
	return meta
}

// GenerateMarkdownDocument produces the Markdown content for a document.
// This is the one gateway operation allowed to fail loudly: there is no
// meaningful placeholder for generated content.
func (g *Gateway) GenerateMarkdownDocument(ctx context.Context, prompt string, t document.Type, meta document.ProjectMetadata, a *agent.Agent, customInstructions []string) (string, error) {
	topicOutline := isTopicOutlineMVP(prompt)
	maxTokens := a.Config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultGenerationMaxTokens
	}

	reply, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Model:        a.Config.ModelID,
		SystemPrompt: generationSystemMessage(a.Config.Instructions, topicOutline),
		UserPrompt:   generationPrompt(prompt, t, meta, customInstructions),
		Temperature:  a.Config.Temperature,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s document: %v", domain.ErrGeneration, t, err)
	}

	slog.Info("document content generated", "agent_id", a.ID, "document_type", t)
	return MarkdownContent(reply), nil
}

// ImprovePrompt rewrites an invalid prompt addressing the validation issues.
// Prompts that already validated are returned unchanged without a model call.
func (g *Gateway) ImprovePrompt(ctx context.Context, prompt string, validation document.ValidationResult, a *agent.Agent) (string, error) {
	if validation.IsValid {
		return prompt, nil
	}

	reply, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Model:        a.Config.ModelID,
		SystemPrompt: improvementSystemPrompt,
		UserPrompt:   improvementPrompt(prompt, validation),
		Temperature:  improvementTemperature,
		MaxTokens:    improvementMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: improve prompt: %v", domain.ErrGeneration, err)
	}
	return strings.TrimSpace(reply), nil
}

type qualityPayload struct {
	OverallScore     float64 `json:"overall_score"`
	Clarity          float64 `json:"clarity"`
	Completeness     float64 `json:"completeness"`
	TechnicalQuality float64 `json:"technical_quality"`
	Usefulness       float64 `json:"usefulness"`
	Comments         string  `json:"comments"`
}

// AnalyzeDocumentQuality scores the document content on four dimensions.
// Never fails: a parse failure yields neutral mid-range scores with the raw
// reply as comments; a transport failure yields a degraded overall score.
func (g *Gateway) AnalyzeDocumentQuality(ctx context.Context, content string, a *agent.Agent) llm.QualityReport {
	reply, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Model:        a.Config.ModelID,
		SystemPrompt: qualitySystemPrompt,
		UserPrompt:   qualityPrompt(content),
		Temperature:  qualityTemperature,
		MaxTokens:    qualityMaxTokens,
	})
	if err != nil {
		slog.Error("quality analysis call failed", "agent_id", a.ID, "error", err)
		return llm.QualityReport{
			OverallScore: 5.0,
			Error:        "analysis failed: " + err.Error(),
		}
	}

	var payload qualityPayload
	if err := decodeJSONObject(reply, &payload); err != nil {
		return llm.QualityReport{
			OverallScore:     7.0,
			Clarity:          7.0,
			Completeness:     7.0,
			TechnicalQuality: 7.0,
			Usefulness:       7.0,
			Comments:         reply,
		}
	}

	return llm.QualityReport{
		OverallScore:     payload.OverallScore,
		Clarity:          payload.Clarity,
		Completeness:     payload.Completeness,
		TechnicalQuality: payload.TechnicalQuality,
		Usefulness:       payload.Usefulness,
		Comments:         payload.Comments,
	}
}

func (g *Gateway) cacheKey(op, model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "|" + prompt))
	return op + ":" + hex.EncodeToString(sum[:])
}

func (g *Gateway) cachedValidation(ctx context.Context, key string) (document.ValidationResult, bool) {
	if g.cache == nil {
		return document.ValidationResult{}, false
	}
	data, ok, err := g.cache.Get(ctx, key)
	if err != nil || !ok {
		return document.ValidationResult{}, false
	}
	var result document.ValidationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return document.ValidationResult{}, false
	}
	return result, true
}

func (g *Gateway) storeValidation(ctx context.Context, key string, result document.ValidationResult) {
	if g.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, key, data, g.cacheTTL); err != nil {
		slog.Debug("validation cache write failed", "error", err)
	}
}
