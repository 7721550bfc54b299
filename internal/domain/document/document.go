// Package document defines the generated project document entity and its
// embedded metadata and validation value objects.
package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docsmith/docsmith/internal/domain"
)

// Type enumerates the kinds of project documents that can be generated.
type Type string

const (
	TypeReadme                 Type = "readme"
	TypeAPIDocumentation       Type = "api_documentation"
	TypeTechnicalSpecification Type = "technical_specification"
	TypeUserGuide              Type = "user_guide"
	TypeArchitectureDocument   Type = "architecture_document"
	TypeProjectProposal        Type = "project_proposal"
	TypeRequirementsDocument   Type = "requirements_document"
)

// Status represents the review lifecycle of a document.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReview    Status = "review"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published"
)

// completeConfidence is the minimum validation confidence for a document
// to count as complete.
const completeConfidence = 0.7

// ProjectMetadata holds structured facts inferred from a free-text prompt.
// ComplexityLevel is free-form; the canonical set is simple|medium|complex,
// but call sites are not consistent and the field is not normalized.
type ProjectMetadata struct {
	ProjectName       string   `json:"project_name"`
	ProjectType       string   `json:"project_type"`
	Technologies      []string `json:"technologies"`
	Description       string   `json:"description"`
	TargetAudience    string   `json:"target_audience,omitempty"`
	ComplexityLevel   string   `json:"complexity_level,omitempty"`
	EstimatedDuration string   `json:"estimated_duration,omitempty"`
}

// ValidationResult is the gateway's judgment on whether a prompt contains
// enough information to generate a document. ConfidenceScore is in [0,1]
// by contract but not enforced.
type ValidationResult struct {
	IsValid               bool     `json:"is_valid"`
	ConfidenceScore       float64  `json:"confidence_score"`
	IdentifiedProjectType string   `json:"identified_project_type,omitempty"`
	MissingInformation    []string `json:"missing_information"`
	Suggestions           []string `json:"suggestions"`
}

// Document is a generated Markdown artifact tied to a project, its
// originating agent, and a validation outcome. ProjectMetadata and
// ValidationResult are embedded copies, never shared between documents.
type Document struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Type             Type             `json:"document_type"`
	Content          string           `json:"content"`
	ProjectMetadata  ProjectMetadata  `json:"project_metadata"`
	ValidationResult ValidationResult `json:"validation_result"`
	Status           Status           `json:"status"`
	AgentID          string           `json:"agent_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Version          string           `json:"version"`
	Tags             []string         `json:"tags"`
}

// ParseType validates a document type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeReadme, TypeAPIDocumentation, TypeTechnicalSpecification,
		TypeUserGuide, TypeArchitectureDocument, TypeProjectProposal,
		TypeRequirementsDocument:
		return Type(s), nil
	}
	return "", fmt.Errorf("%w: invalid document type %q", domain.ErrValidation, s)
}

// ParseStatus validates a document status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusReview, StatusApproved, StatusPublished:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: invalid document status %q", domain.ErrValidation, s)
}

// Title derives the document title: "{project name} - {Type Title-Cased}".
func Title(projectName string, t Type) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return projectName + " - " + strings.Join(words, " ")
}

// New constructs a draft document with embedded copies of the metadata and
// validation result.
func New(id string, t Type, content string, meta ProjectMetadata, validation ValidationResult, agentID string) *Document {
	now := time.Now().UTC()
	meta.Technologies = append([]string(nil), meta.Technologies...)
	validation.MissingInformation = append([]string(nil), validation.MissingInformation...)
	validation.Suggestions = append([]string(nil), validation.Suggestions...)
	return &Document{
		ID:               id,
		Title:            Title(meta.ProjectName, t),
		Type:             t,
		Content:          content,
		ProjectMetadata:  meta,
		ValidationResult: validation,
		Status:           StatusDraft,
		AgentID:          agentID,
		CreatedAt:        now,
		UpdatedAt:        now,
		Version:          "1.0.0",
		Tags:             []string{},
	}
}

// WordCount returns the number of whitespace-delimited tokens in the content.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.Content))
}

// IsComplete reports whether the document has content, passed validation,
// and met the confidence threshold.
func (d *Document) IsComplete() bool {
	return strings.TrimSpace(d.Content) != "" &&
		d.ValidationResult.IsValid &&
		d.ValidationResult.ConfidenceScore >= completeConfidence
}

// UpdateContent replaces the content, bumps the patch version, and refreshes
// UpdatedAt. Versions that do not parse as MAJOR.MINOR.PATCH are left as-is.
func (d *Document) UpdateContent(content string) {
	d.Content = content
	d.Version = bumpPatch(d.Version)
	d.UpdatedAt = time.Now().UTC()
}

// UpdateStatus sets the review status and refreshes UpdatedAt.
func (d *Document) UpdateStatus(s Status) {
	d.Status = s
	d.UpdatedAt = time.Now().UTC()
}

// AddTag appends a tag if not already present (set semantics).
func (d *Document) AddTag(tag string) {
	for _, t := range d.Tags {
		if t == tag {
			return
		}
	}
	d.Tags = append(d.Tags, tag)
	d.UpdatedAt = time.Now().UTC()
}

// HasAnyTag reports whether the document carries at least one of the given
// tags, case-insensitively.
func (d *Document) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range d.Tags {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

func bumpPatch(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return version
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return version
	}
	parts[2] = strconv.Itoa(patch + 1)
	return strings.Join(parts, ".")
}
