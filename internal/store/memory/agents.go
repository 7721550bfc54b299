// Package memory implements the store ports with map-backed, mutex-guarded
// in-process collections. Contents are volatile: a restart loses everything.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/agent"
)

// AgentStore keeps agents in a map keyed by id.
//
// The mutex guards the map itself; read-modify-write sequences spanning
// multiple calls are not transactional, so concurrent writers to the same
// agent can still lose updates.
type AgentStore struct {
	mu     sync.RWMutex
	agents map[string]*agent.Agent
}

// NewAgentStore creates an empty agent store.
func NewAgentStore() *AgentStore {
	return &AgentStore{agents: make(map[string]*agent.Agent)}
}

// Save upserts the agent by id and refreshes UpdatedAt.
func (s *AgentStore) Save(_ context.Context, a *agent.Agent) (*agent.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.UpdatedAt = time.Now().UTC()
	cp := *a
	s.agents[a.ID] = &cp
	return a, nil
}

// FindByID returns the agent or ErrNotFound.
func (s *AgentStore) FindByID(_ context.Context, id string) (*agent.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[id]
	if !ok {
		return nil, fmt.Errorf("agent %q: %w", id, domain.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

// FindByName scans for the first agent with the given name.
func (s *AgentStore) FindByName(_ context.Context, name string) (*agent.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.agents {
		if a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("agent named %q: %w", name, domain.ErrNotFound)
}

// FindByType returns all agents of the given type.
func (s *AgentStore) FindByType(_ context.Context, t agent.Type) ([]*agent.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*agent.Agent
	for _, a := range s.agents {
		if a.Type == t {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// FindAvailable returns agents whose status is idle.
func (s *AgentStore) FindAvailable(_ context.Context) ([]*agent.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*agent.Agent
	for _, a := range s.agents {
		if a.Status == agent.StatusIdle {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UpdateStatus sets the status of an existing agent.
func (s *AgentStore) UpdateStatus(_ context.Context, id string, status agent.Status) (*agent.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agents[id]
	if !ok {
		return nil, fmt.Errorf("agent %q: %w", id, domain.ErrNotFound)
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

// Delete removes the agent; the bool reports whether it existed.
func (s *AgentStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[id]; !ok {
		return false, nil
	}
	delete(s.agents, id)
	return true, nil
}

// ListAll returns every agent in map-iteration (arbitrary) order.
func (s *AgentStore) ListAll(_ context.Context) ([]*agent.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*agent.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// Count returns the number of stored agents.
func (s *AgentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents), nil
}
