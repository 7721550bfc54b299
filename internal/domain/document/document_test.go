package document

import (
	"errors"
	"testing"

	"github.com/docsmith/docsmith/internal/domain"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		project string
		docType Type
		want    string
	}{
		{"TaskFlow", TypeReadme, "TaskFlow - Readme"},
		{"TaskFlow", TypeAPIDocumentation, "TaskFlow - Api Documentation"},
		{"shop", TypeTechnicalSpecification, "shop - Technical Specification"},
	}

	for _, tt := range tests {
		if got := Title(tt.project, tt.docType); got != tt.want {
			t.Errorf("Title(%q, %q) = %q, want %q", tt.project, tt.docType, got, tt.want)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	meta := ProjectMetadata{ProjectName: "TaskFlow", Technologies: []string{"go"}}
	validation := ValidationResult{IsValid: true, ConfidenceScore: 0.9}

	d := New("doc-1", TypeReadme, "# TaskFlow", meta, validation, "agent-1")

	if d.Status != StatusDraft {
		t.Errorf("expected draft status, got %s", d.Status)
	}
	if d.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", d.Version)
	}
	if d.Title != "TaskFlow - Readme" {
		t.Errorf("unexpected title %s", d.Title)
	}
	if d.Tags == nil || len(d.Tags) != 0 {
		t.Errorf("expected empty non-nil tags, got %v", d.Tags)
	}

	// Embedded metadata must be a copy, not shared with the caller.
	meta.Technologies[0] = "rust"
	if d.ProjectMetadata.Technologies[0] != "go" {
		t.Error("metadata technologies were not copied")
	}
}

func TestWordCount(t *testing.T) {
	d := &Document{Content: "one  two\nthree\tfour "}
	if got := d.WordCount(); got != 4 {
		t.Errorf("expected 4 words, got %d", got)
	}
	d.Content = ""
	if got := d.WordCount(); got != 0 {
		t.Errorf("expected 0 words for empty content, got %d", got)
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		valid      bool
		confidence float64
		want       bool
	}{
		{"complete", "# Doc", true, 0.8, true},
		{"at threshold", "# Doc", true, 0.7, true},
		{"below threshold", "# Doc", true, 0.69, false},
		{"invalid", "# Doc", false, 0.9, false},
		{"empty content", "", true, 0.9, false},
		{"whitespace content", "   \n\t", true, 0.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Document{
				Content:          tt.content,
				ValidationResult: ValidationResult{IsValid: tt.valid, ConfidenceScore: tt.confidence},
			}
			if got := d.IsComplete(); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateContentBumpsPatchVersion(t *testing.T) {
	d := New("doc-1", TypeReadme, "old", ProjectMetadata{ProjectName: "p"}, ValidationResult{}, "")

	d.UpdateContent("new content")
	if d.Version != "1.0.1" {
		t.Errorf("expected version 1.0.1, got %s", d.Version)
	}
	d.UpdateContent("newer content")
	if d.Version != "1.0.2" {
		t.Errorf("expected version 1.0.2, got %s", d.Version)
	}
	if d.Content != "newer content" {
		t.Errorf("unexpected content %q", d.Content)
	}
}

func TestUpdateContentLeavesUnparsableVersion(t *testing.T) {
	d := &Document{Version: "v2-beta"}
	d.UpdateContent("x")
	if d.Version != "v2-beta" {
		t.Errorf("expected version untouched, got %s", d.Version)
	}
}

func TestAddTagSetSemantics(t *testing.T) {
	d := &Document{}
	d.AddTag("api")
	d.AddTag("api")
	d.AddTag("docs")
	if len(d.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", d.Tags)
	}
}

func TestHasAnyTagCaseInsensitive(t *testing.T) {
	d := &Document{Tags: []string{"API", "backend"}}
	if !d.HasAnyTag([]string{"api"}) {
		t.Error("expected case-insensitive tag match")
	}
	if !d.HasAnyTag([]string{"frontend", "Backend"}) {
		t.Error("expected intersection match")
	}
	if d.HasAnyTag([]string{"frontend"}) {
		t.Error("expected no match for absent tag")
	}
	if d.HasAnyTag(nil) {
		t.Error("expected no match for empty tag list")
	}
}

func TestParseTypeAndStatus(t *testing.T) {
	for _, s := range []string{"readme", "api_documentation", "technical_specification",
		"user_guide", "architecture_document", "project_proposal", "requirements_document"} {
		if _, err := ParseType(s); err != nil {
			t.Errorf("ParseType(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseType("novel"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := ParseStatus("archived"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
