package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/domain/provider"
)

func newTestAgent(id, name string) *agent.Agent {
	now := time.Now().UTC()
	return &agent.Agent{
		ID:     id,
		Name:   name,
		Type:   agent.TypeMarkdownGenerator,
		Status: agent.StatusIdle,
		Config: agent.Config{
			Provider:    provider.Groq,
			ModelID:     "llama3-70b-8192",
			Temperature: 0.7,
			MaxTokens:   2000,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAgentRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewAgentStore()

	original := newTestAgent("a1", "writer")
	before := original.UpdatedAt

	if _, err := s.Save(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.FindByID(ctx, "a1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "writer" || got.Config.ModelID != "llama3-70b-8192" {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.UpdatedAt.Before(before) {
		t.Errorf("UpdatedAt went backwards: %v < %v", got.UpdatedAt, before)
	}
}

func TestAgentFindByIDNotFound(t *testing.T) {
	s := NewAgentStore()
	if _, err := s.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAgentFindByNameIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewAgentStore()
	_, _ = s.Save(ctx, newTestAgent("a1", "writer"))

	first, err := s.FindByName(ctx, "writer")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := s.FindByName(ctx, "writer")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("lookups disagree: %s vs %s", first.ID, second.ID)
	}
}

func TestAgentSaveReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewAgentStore()
	a := newTestAgent("a1", "writer")
	_, _ = s.Save(ctx, a)

	// Mutating the caller's struct must not reach the store.
	a.Name = "changed"

	got, _ := s.FindByID(ctx, "a1")
	if got.Name != "writer" {
		t.Errorf("store shares memory with caller: %s", got.Name)
	}
}

func TestAgentFindAvailable(t *testing.T) {
	ctx := context.Background()
	s := NewAgentStore()

	idle := newTestAgent("a1", "idle-agent")
	busy := newTestAgent("a2", "busy-agent")
	busy.Status = agent.StatusProcessing
	_, _ = s.Save(ctx, idle)
	_, _ = s.Save(ctx, busy)

	available, err := s.FindAvailable(ctx)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if len(available) != 1 || available[0].ID != "a1" {
		t.Errorf("expected only a1 available, got %v", available)
	}
}

func TestAgentUpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := NewAgentStore()
	_, _ = s.Save(ctx, newTestAgent("a1", "writer"))

	updated, err := s.UpdateStatus(ctx, "a1", agent.StatusProcessing)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != agent.StatusProcessing {
		t.Errorf("expected processing, got %s", updated.Status)
	}

	if _, err := s.UpdateStatus(ctx, "missing", agent.StatusIdle); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAgentDelete(t *testing.T) {
	ctx := context.Background()
	s := NewAgentStore()
	_, _ = s.Save(ctx, newTestAgent("a1", "writer"))

	deleted, err := s.Delete(ctx, "a1")
	if err != nil || !deleted {
		t.Fatalf("expected delete true, got %v %v", deleted, err)
	}
	deleted, err = s.Delete(ctx, "a1")
	if err != nil || deleted {
		t.Fatalf("expected delete false on second call, got %v %v", deleted, err)
	}

	n, _ := s.Count(ctx)
	if n != 0 {
		t.Errorf("expected empty store, got %d", n)
	}
}

func TestAgentListAllAndCount(t *testing.T) {
	ctx := context.Background()
	s := NewAgentStore()
	_, _ = s.Save(ctx, newTestAgent("a1", "one"))
	_, _ = s.Save(ctx, newTestAgent("a2", "two"))

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 agents, got %d", len(all))
	}
	n, _ := s.Count(ctx)
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
}
