package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/document"
	"github.com/docsmith/docsmith/internal/port/store"
)

// DocumentStore keeps generated documents in a map keyed by id.
// Same concurrency caveats as AgentStore.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document.Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document.Document)}
}

// Save upserts the document by id and refreshes UpdatedAt.
func (s *DocumentStore) Save(_ context.Context, d *document.Document) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.UpdatedAt = time.Now().UTC()
	cp := cloneDocument(d)
	s.docs[d.ID] = cp
	return d, nil
}

// FindByID returns the document or ErrNotFound.
func (s *DocumentStore) FindByID(_ context.Context, id string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	return cloneDocument(d), nil
}

// FindByType returns all documents of the given type.
func (s *DocumentStore) FindByType(_ context.Context, t document.Type) ([]*document.Document, error) {
	return s.filter(func(d *document.Document) bool { return d.Type == t }), nil
}

// FindByAgentID returns all documents generated by the given agent.
func (s *DocumentStore) FindByAgentID(_ context.Context, agentID string) ([]*document.Document, error) {
	return s.filter(func(d *document.Document) bool { return d.AgentID == agentID }), nil
}

// FindByProjectName matches the metadata project name by case-insensitive
// substring, the same semantics the listing filter uses.
func (s *DocumentStore) FindByProjectName(_ context.Context, name string) ([]*document.Document, error) {
	needle := strings.ToLower(name)
	return s.filter(func(d *document.Document) bool {
		return strings.Contains(strings.ToLower(d.ProjectMetadata.ProjectName), needle)
	}), nil
}

// SearchByTags returns documents carrying at least one of the given tags.
func (s *DocumentStore) SearchByTags(_ context.Context, tags []string) ([]*document.Document, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	return s.filter(func(d *document.Document) bool { return d.HasAnyTag(tags) }), nil
}

// UpdateStatus sets the review status of an existing document.
func (s *DocumentStore) UpdateStatus(_ context.Context, id string, status document.Status) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	d.Status = status
	d.UpdatedAt = time.Now().UTC()
	return cloneDocument(d), nil
}

// Delete removes the document; the bool reports whether it existed.
func (s *DocumentStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return false, nil
	}
	delete(s.docs, id)
	return true, nil
}

// ListAll returns every document in map-iteration (arbitrary) order.
func (s *DocumentStore) ListAll(_ context.Context) ([]*document.Document, error) {
	return s.filter(func(*document.Document) bool { return true }), nil
}

// Stats aggregates counts by status, type, and agent plus the total word
// count across all documents.
func (s *DocumentStore) Stats(_ context.Context) (store.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := store.Stats{
		TotalDocuments: len(s.docs),
		ByStatus:       make(map[string]int),
		ByType:         make(map[string]int),
		ByAgent:        make(map[string]int),
	}
	for _, d := range s.docs {
		stats.ByStatus[string(d.Status)]++
		stats.ByType[string(d.Type)]++
		agentKey := d.AgentID
		if agentKey == "" {
			agentKey = "unknown"
		}
		stats.ByAgent[agentKey]++
		stats.TotalWords += d.WordCount()
	}
	return stats, nil
}

func (s *DocumentStore) filter(keep func(*document.Document) bool) []*document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*document.Document
	for _, d := range s.docs {
		if keep(d) {
			out = append(out, cloneDocument(d))
		}
	}
	return out
}

func cloneDocument(d *document.Document) *document.Document {
	cp := *d
	cp.Tags = append([]string(nil), d.Tags...)
	cp.ProjectMetadata.Technologies = append([]string(nil), d.ProjectMetadata.Technologies...)
	cp.ValidationResult.MissingInformation = append([]string(nil), d.ValidationResult.MissingInformation...)
	cp.ValidationResult.Suggestions = append([]string(nil), d.ValidationResult.Suggestions...)
	return &cp
}
