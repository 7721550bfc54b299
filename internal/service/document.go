package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docsmith/docsmith/internal/adapter/otel"
	"github.com/docsmith/docsmith/internal/adapter/ws"
	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/domain/document"
	"github.com/docsmith/docsmith/internal/gateway"
	"github.com/docsmith/docsmith/internal/port/broadcast"
	"github.com/docsmith/docsmith/internal/port/llm"
	"github.com/docsmith/docsmith/internal/port/store"
)

// DocumentService orchestrates the prompt-to-document generation pipeline
// and document lifecycle operations.
type DocumentService struct {
	docs             store.DocumentStore
	agents           store.AgentStore
	registry         *gateway.Registry
	hub              broadcast.Broadcaster
	metrics          *otel.Metrics
	maxContentLength int
}

// NewDocumentService creates a new DocumentService. maxContentLength bounds
// document content accepted on update; metrics may be nil.
func NewDocumentService(docs store.DocumentStore, agents store.AgentStore, reg *gateway.Registry, hub broadcast.Broadcaster, metrics *otel.Metrics, maxContentLength int) *DocumentService {
	if hub == nil {
		hub = broadcast.Noop{}
	}
	return &DocumentService{
		docs:             docs,
		agents:           agents,
		registry:         reg,
		hub:              hub,
		metrics:          metrics,
		maxContentLength: maxContentLength,
	}
}

// GenerateRequest carries the input for one generation pipeline run.
type GenerateRequest struct {
	AgentID            string   `json:"agent_id"`
	Prompt             string   `json:"prompt"`
	DocumentType       string   `json:"document_type"`
	CustomInstructions []string `json:"custom_instructions,omitempty"`
}

// Generate runs the full pipeline: load agent, validate the prompt, extract
// metadata, generate content, persist. The pipeline is terminal on first
// error; no partial document is persisted.
func (s *DocumentService) Generate(ctx context.Context, req GenerateRequest) (*document.Document, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	docType, err := document.ParseType(req.DocumentType)
	if err != nil {
		return nil, err
	}

	a, err := s.agents.FindByID(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}
	gw, err := s.registry.ForProvider(a.Config.Provider)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.StartGenerationSpan(ctx, a.ID, string(docType))
	defer span.End()
	start := time.Now()
	if s.metrics != nil {
		s.metrics.GenerationsStarted.Add(ctx, 1)
	}

	s.setAgentStatus(ctx, a, agent.StatusProcessing)

	validation := gw.ValidatePrompt(ctx, req.Prompt, a)
	if s.metrics != nil {
		s.metrics.ValidationsRun.Add(ctx, 1)
	}
	if !validation.IsValid {
		s.setAgentStatus(ctx, a, agent.StatusError)
		if s.metrics != nil {
			s.metrics.GenerationsFailed.Add(ctx, 1)
		}
		return nil, fmt.Errorf("%w: prompt rejected: %s", domain.ErrValidation, strings.Join(validation.Suggestions, "; "))
	}

	meta := gw.ExtractProjectMetadata(ctx, req.Prompt, a)

	content, err := gw.GenerateMarkdownDocument(ctx, req.Prompt, docType, meta, a, req.CustomInstructions)
	if err != nil {
		s.setAgentStatus(ctx, a, agent.StatusError)
		if s.metrics != nil {
			s.metrics.GenerationsFailed.Add(ctx, 1)
		}
		return nil, err
	}

	doc := document.New(uuid.NewString(), docType, content, meta, validation, a.ID)
	saved, err := s.docs.Save(ctx, doc)
	if err != nil {
		s.setAgentStatus(ctx, a, agent.StatusError)
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.setAgentStatus(ctx, a, agent.StatusCompleted)
	if s.metrics != nil {
		s.metrics.GenerationsCompleted.Add(ctx, 1)
		s.metrics.GenerationDuration.Record(ctx, time.Since(start).Seconds())
		s.metrics.DocumentWordCount.Record(ctx, int64(saved.WordCount()))
	}

	slog.Info("document generated",
		"document_id", saved.ID,
		"agent_id", a.ID,
		"project", saved.ProjectMetadata.ProjectName,
		"words", saved.WordCount())
	s.hub.BroadcastEvent(ctx, ws.EventDocumentGenerated, ws.DocumentGeneratedEvent{
		DocumentID:  saved.ID,
		AgentID:     a.ID,
		ProjectName: saved.ProjectMetadata.ProjectName,
		WordCount:   saved.WordCount(),
		Valid:       saved.ValidationResult.IsValid,
		Confidence:  saved.ValidationResult.ConfidenceScore,
	})

	return saved, nil
}

// ValidatePrompt runs only the validation step. The agent must exist; the
// result itself never carries a transport error.
func (s *DocumentService) ValidatePrompt(ctx context.Context, agentID, prompt string) (document.ValidationResult, error) {
	a, err := s.agents.FindByID(ctx, agentID)
	if err != nil {
		return document.ValidationResult{}, err
	}
	gw, err := s.registry.ForProvider(a.Config.Provider)
	if err != nil {
		return document.ValidationResult{}, err
	}

	ctx, span := otel.StartValidationSpan(ctx, a.ID, a.Config.ModelID)
	defer span.End()

	result := gw.ValidatePrompt(ctx, prompt, a)
	if s.metrics != nil {
		s.metrics.ValidationsRun.Add(ctx, 1)
	}
	return result, nil
}

// ExtractMetadata runs only the metadata extraction step.
func (s *DocumentService) ExtractMetadata(ctx context.Context, agentID, prompt string) (document.ProjectMetadata, error) {
	a, err := s.agents.FindByID(ctx, agentID)
	if err != nil {
		return document.ProjectMetadata{}, err
	}
	gw, err := s.registry.ForProvider(a.Config.Provider)
	if err != nil {
		return document.ProjectMetadata{}, err
	}
	return gw.ExtractProjectMetadata(ctx, prompt, a), nil
}

// ImprovePrompt validates the prompt and, when it falls short, asks the
// model for a rewritten version. Valid prompts come back unchanged.
func (s *DocumentService) ImprovePrompt(ctx context.Context, agentID, prompt string) (improved string, validation document.ValidationResult, err error) {
	a, err := s.agents.FindByID(ctx, agentID)
	if err != nil {
		return "", document.ValidationResult{}, err
	}
	gw, err := s.registry.ForProvider(a.Config.Provider)
	if err != nil {
		return "", document.ValidationResult{}, err
	}

	validation = gw.ValidatePrompt(ctx, prompt, a)
	improved, err = gw.ImprovePrompt(ctx, prompt, validation, a)
	if err != nil {
		return "", validation, err
	}
	return improved, validation, nil
}

// AnalyzeQuality scores an existing document's content using its owning
// agent's model. The returned report is always populated, degraded on
// provider failure.
func (s *DocumentService) AnalyzeQuality(ctx context.Context, documentID string) (llm.QualityReport, error) {
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		return llm.QualityReport{}, err
	}
	if doc.AgentID == "" {
		return llm.QualityReport{}, fmt.Errorf("%w: document %s has no owning agent", domain.ErrValidation, documentID)
	}
	a, err := s.agents.FindByID(ctx, doc.AgentID)
	if err != nil {
		return llm.QualityReport{}, err
	}
	gw, err := s.registry.ForProvider(a.Config.Provider)
	if err != nil {
		return llm.QualityReport{}, err
	}
	return gw.AnalyzeDocumentQuality(ctx, doc.Content, a), nil
}

// Get returns a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*document.Document, error) {
	return s.docs.FindByID(ctx, id)
}

// UpdateRequest carries the mutable fields of a document. Nil fields are
// left untouched.
type UpdateRequest struct {
	Content *string  `json:"content,omitempty"`
	Status  *string  `json:"status,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Update applies a partial update. A content change bumps the patch version;
// a status change is broadcast.
func (s *DocumentService) Update(ctx context.Context, id string, req UpdateRequest) (*document.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		if len(*req.Content) > s.maxContentLength {
			return nil, fmt.Errorf("%w: content exceeds %d characters", domain.ErrValidation, s.maxContentLength)
		}
		doc.UpdateContent(*req.Content)
	}
	if req.Status != nil {
		status, err := document.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		doc.UpdateStatus(status)
	}
	for _, tag := range req.Tags {
		if t := strings.TrimSpace(tag); t != "" {
			doc.AddTag(t)
		}
	}

	saved, err := s.docs.Save(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	if req.Status != nil {
		s.hub.BroadcastEvent(ctx, ws.EventDocumentStatus, ws.DocumentStatusEvent{
			DocumentID: saved.ID,
			Status:     string(saved.Status),
			Version:    saved.Version,
		})
	}
	return saved, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	deleted, err := s.docs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
	}
	return nil
}

// List returns a filtered, paginated document listing and the post-filter
// total.
func (s *DocumentService) List(ctx context.Context, f DocumentFilter, p Page) ([]*document.Document, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	all, err := s.docs.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total := paginate(filterDocuments(all, f), p)
	return page, total, nil
}

// ByAgent returns all documents generated by one agent.
func (s *DocumentService) ByAgent(ctx context.Context, agentID string) ([]*document.Document, error) {
	if _, err := s.agents.FindByID(ctx, agentID); err != nil {
		return nil, err
	}
	return s.docs.FindByAgentID(ctx, agentID)
}

// ByProject returns documents whose project name contains the given name,
// case-insensitively.
func (s *DocumentService) ByProject(ctx context.Context, name string) ([]*document.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}
	return s.docs.FindByProjectName(ctx, name)
}

// Stats returns the read-only document aggregate.
func (s *DocumentService) Stats(ctx context.Context) (store.Stats, error) {
	return s.docs.Stats(ctx)
}

// setAgentStatus updates and broadcasts an agent status change, logging
// rather than failing the pipeline when the write is lost.
func (s *DocumentService) setAgentStatus(ctx context.Context, a *agent.Agent, status agent.Status) {
	updated, err := s.agents.UpdateStatus(ctx, a.ID, status)
	if err != nil {
		slog.Warn("update agent status", "agent_id", a.ID, "status", status, "error", err)
		return
	}
	s.hub.BroadcastEvent(ctx, ws.EventAgentStatus, ws.AgentStatusEvent{
		AgentID: updated.ID,
		Name:    updated.Name,
		Status:  string(updated.Status),
	})
}
