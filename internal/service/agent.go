// Package service implements the use-case orchestration between the HTTP
// adapter, the stores, and the LLM gateway.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docsmith/docsmith/internal/adapter/ws"
	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/gateway"
	"github.com/docsmith/docsmith/internal/port/broadcast"
	"github.com/docsmith/docsmith/internal/port/store"
)

// AgentService handles the agent lifecycle.
type AgentService struct {
	store    store.AgentStore
	registry *gateway.Registry
	hub      broadcast.Broadcaster
}

// NewAgentService creates a new AgentService.
func NewAgentService(st store.AgentStore, reg *gateway.Registry, hub broadcast.Broadcaster) *AgentService {
	if hub == nil {
		hub = broadcast.Noop{}
	}
	return &AgentService{store: st, registry: reg, hub: hub}
}

// Create validates the request, registers the agent with its provider, and
// persists it. Duplicate names are rejected before any provider call.
func (s *AgentService) Create(ctx context.Context, req agent.CreateRequest) (*agent.Agent, error) {
	cfg, err := req.Validate()
	if err != nil {
		return nil, err
	}
	agentType, err := agent.ParseType(req.Type)
	if err != nil {
		return nil, err
	}

	if existing, err := s.store.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: agent with name %q already exists", domain.ErrValidation, req.Name)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check agent name: %w", err)
	}

	now := time.Now().UTC()
	a := &agent.Agent{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Type:        agentType,
		Description: req.Description,
		Status:      agent.StatusIdle,
		Config:      cfg,
		CreatedAt:   now,
		UpdatedAt:   now,
		Metadata:    map[string]string{},
	}

	gw, err := s.registry.ForProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}
	meta, err := gw.RegisterAgent(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("%w: register agent with provider %s: %v", domain.ErrGeneration, cfg.Provider, err)
	}
	for k, v := range meta {
		a.Metadata[k] = v
	}

	saved, err := s.store.Save(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("save agent: %w", err)
	}

	slog.Info("agent created", "agent_id", saved.ID, "name", saved.Name, "provider", cfg.Provider)
	s.hub.BroadcastEvent(ctx, ws.EventAgentStatus, ws.AgentStatusEvent{
		AgentID: saved.ID,
		Name:    saved.Name,
		Status:  string(saved.Status),
	})

	return saved, nil
}

// Get returns an agent by ID.
func (s *AgentService) Get(ctx context.Context, id string) (*agent.Agent, error) {
	return s.store.FindByID(ctx, id)
}

// List returns a filtered, paginated agent listing and the post-filter total.
func (s *AgentService) List(ctx context.Context, f AgentFilter, p Page) ([]*agent.Agent, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total := paginate(filterAgents(all, f), p)
	return page, total, nil
}

// Available returns agents that can accept new work.
func (s *AgentService) Available(ctx context.Context) ([]*agent.Agent, error) {
	return s.store.FindAvailable(ctx)
}

// UpdateStatus transitions an agent's status and broadcasts the change.
func (s *AgentService) UpdateStatus(ctx context.Context, id string, status agent.Status) (*agent.Agent, error) {
	updated, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastEvent(ctx, ws.EventAgentStatus, ws.AgentStatusEvent{
		AgentID: updated.ID,
		Name:    updated.Name,
		Status:  string(updated.Status),
	})
	return updated, nil
}

// Delete removes an agent. Documents created by the agent are kept.
func (s *AgentService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: agent %s", domain.ErrNotFound, id)
	}
	slog.Info("agent deleted", "agent_id", id)
	return nil
}

// StatusReport is the payload for the agent status endpoint.
type StatusReport struct {
	AgentID      string    `json:"agent_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	ModelID      string    `json:"model_id"`
	Provider     string    `json:"model_provider"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Status returns a point-in-time status report for one agent.
func (s *AgentService) Status(ctx context.Context, id string) (*StatusReport, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StatusReport{
		AgentID:      a.ID,
		Name:         a.Name,
		Status:       string(a.Status),
		ModelID:      a.Config.ModelID,
		Provider:     string(a.Config.Provider),
		CreatedAt:    a.CreatedAt,
		LastActivity: a.UpdatedAt,
	}, nil
}
