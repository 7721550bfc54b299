package service

import (
	"errors"
	"testing"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/document"
)

func TestPageValidate(t *testing.T) {
	tests := []struct {
		name    string
		page    Page
		wantErr bool
	}{
		{"valid", Page{Limit: 50, Offset: 0}, false},
		{"min limit", Page{Limit: 1, Offset: 0}, false},
		{"max limit", Page{Limit: 100, Offset: 10}, false},
		{"zero limit", Page{Limit: 0, Offset: 0}, true},
		{"limit too large", Page{Limit: 101, Offset: 0}, true},
		{"negative offset", Page{Limit: 50, Offset: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, total := paginate(items, Page{Limit: 2, Offset: 1})
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(page) != 2 || page[0] != 2 || page[1] != 3 {
		t.Errorf("unexpected page %v", page)
	}

	// Offset past the end yields an empty page with the full total.
	page, total = paginate(items, Page{Limit: 10, Offset: 7})
	if len(page) != 0 || total != 5 {
		t.Errorf("expected empty page with total 5, got %v total=%d", page, total)
	}

	// Limit spanning past the end is clamped.
	page, _ = paginate(items, Page{Limit: 10, Offset: 3})
	if len(page) != 2 {
		t.Errorf("expected clamped page of 2, got %v", page)
	}

	page, total = paginate([]int{}, Page{Limit: 50, Offset: 0})
	if len(page) != 0 || total != 0 {
		t.Errorf("expected empty page and zero total, got %v total=%d", page, total)
	}
}

func TestDocumentFilterConjunctive(t *testing.T) {
	doc := &document.Document{
		Type:            document.TypeReadme,
		Status:          document.StatusDraft,
		AgentID:         "a1",
		ProjectMetadata: document.ProjectMetadata{ProjectName: "TaskFlow"},
		Tags:            []string{"api"},
	}

	tests := []struct {
		name   string
		filter DocumentFilter
		want   bool
	}{
		{"empty filter matches", DocumentFilter{}, true},
		{"all fields match", DocumentFilter{Type: document.TypeReadme, Status: document.StatusDraft, AgentID: "a1", ProjectName: "task", Tags: []string{"API"}}, true},
		{"project substring case-insensitive", DocumentFilter{ProjectName: "FLOW"}, true},
		{"wrong type", DocumentFilter{Type: document.TypeUserGuide}, false},
		{"one mismatch fails all", DocumentFilter{Status: document.StatusDraft, AgentID: "a2"}, false},
		{"tag miss", DocumentFilter{Tags: []string{"frontend"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.matches(doc); got != tt.want {
				t.Errorf("matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
