package service

import (
	"fmt"
	"strings"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/domain/document"
)

const (
	minLimit = 1
	maxLimit = 100
)

// Page carries validated pagination parameters.
type Page struct {
	Limit  int
	Offset int
}

// Validate checks the pagination bounds. Invalid values fail fast before
// any store access.
func (p Page) Validate() error {
	if p.Limit < minLimit || p.Limit > maxLimit {
		return fmt.Errorf("%w: limit must be between %d and %d", domain.ErrValidation, minLimit, maxLimit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", domain.ErrValidation)
	}
	return nil
}

// AgentFilter narrows an agent listing. Zero values mean no constraint.
type AgentFilter struct {
	Type   agent.Type
	Status agent.Status
}

func (f AgentFilter) matches(a *agent.Agent) bool {
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}

// DocumentFilter narrows a document listing. Filters combine conjunctively;
// ProjectName matches by case-insensitive substring and Tags by intersection.
type DocumentFilter struct {
	Type        document.Type
	Status      document.Status
	AgentID     string
	ProjectName string
	Tags        []string
}

func (f DocumentFilter) matches(d *document.Document) bool {
	if f.Type != "" && d.Type != f.Type {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.AgentID != "" && d.AgentID != f.AgentID {
		return false
	}
	if f.ProjectName != "" && !containsFold(d.ProjectMetadata.ProjectName, f.ProjectName) {
		return false
	}
	if len(f.Tags) > 0 && !d.HasAnyTag(f.Tags) {
		return false
	}
	return true
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// paginate slices items after the total count has been taken, so total
// reflects the post-filter, pre-pagination size.
func paginate[T any](items []T, p Page) (page []T, total int) {
	total = len(items)
	if p.Offset >= total {
		return []T{}, total
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return items[p.Offset:end], total
}

func filterAgents(agents []*agent.Agent, f AgentFilter) []*agent.Agent {
	out := make([]*agent.Agent, 0, len(agents))
	for _, a := range agents {
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out
}

func filterDocuments(docs []*document.Document, f DocumentFilter) []*document.Document {
	out := make([]*document.Document, 0, len(docs))
	for _, d := range docs {
		if f.matches(d) {
			out = append(out, d)
		}
	}
	return out
}
