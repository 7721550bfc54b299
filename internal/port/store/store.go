// Package store defines the port interfaces for agent and document storage.
package store

import (
	"context"

	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/domain/document"
)

// AgentStore is the port interface for the agent collection.
// ListAll iteration order is unspecified; callers must sort if they care.
type AgentStore interface {
	// Save upserts by id and refreshes UpdatedAt.
	Save(ctx context.Context, a *agent.Agent) (*agent.Agent, error)
	FindByID(ctx context.Context, id string) (*agent.Agent, error)
	// FindByName returns the first agent with the given name, or ErrNotFound.
	FindByName(ctx context.Context, name string) (*agent.Agent, error)
	FindByType(ctx context.Context, t agent.Type) ([]*agent.Agent, error)
	// FindAvailable returns agents with status idle.
	FindAvailable(ctx context.Context) ([]*agent.Agent, error)
	// UpdateStatus returns ErrNotFound when the agent is absent.
	UpdateStatus(ctx context.Context, id string, status agent.Status) (*agent.Agent, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]*agent.Agent, error)
	Count(ctx context.Context) (int, error)
}

// Stats is a read-only aggregate over the document collection, used for
// observability only.
type Stats struct {
	TotalDocuments int            `json:"total_documents"`
	TotalWords     int            `json:"total_words"`
	ByStatus       map[string]int `json:"by_status"`
	ByType         map[string]int `json:"by_type"`
	ByAgent        map[string]int `json:"by_agent"`
}

// DocumentStore is the port interface for the document collection.
type DocumentStore interface {
	Save(ctx context.Context, d *document.Document) (*document.Document, error)
	FindByID(ctx context.Context, id string) (*document.Document, error)
	FindByType(ctx context.Context, t document.Type) ([]*document.Document, error)
	FindByAgentID(ctx context.Context, agentID string) ([]*document.Document, error)
	// FindByProjectName matches the metadata project name by case-insensitive
	// substring, mirroring the listing filter.
	FindByProjectName(ctx context.Context, name string) ([]*document.Document, error)
	// SearchByTags returns documents carrying at least one of the given tags,
	// case-insensitively.
	SearchByTags(ctx context.Context, tags []string) ([]*document.Document, error)
	UpdateStatus(ctx context.Context, id string, status document.Status) (*document.Document, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]*document.Document, error)
	Stats(ctx context.Context) (Stats, error)
}
