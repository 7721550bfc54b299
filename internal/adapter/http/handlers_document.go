package http

import (
	"net/http"

	"github.com/docsmith/docsmith/internal/domain/document"
	"github.com/docsmith/docsmith/internal/service"
)

// promptRequest is shared by the validate, extract, and improve endpoints.
type promptRequest struct {
	AgentID string `json:"agent_id"`
	Prompt  string `json:"prompt"`
}

// GenerateDocument handles POST /agents/documents/generate.
func (h *Handlers) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[service.GenerateRequest](w, r)
	if !ok {
		return
	}

	doc, err := h.Documents.Generate(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// ValidatePrompt handles POST /agents/documents/validate-prompt.
func (h *Handlers) ValidatePrompt(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[promptRequest](w, r)
	if !ok {
		return
	}

	result, err := h.Documents.ValidatePrompt(r.Context(), req.AgentID, req.Prompt)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExtractMetadata handles POST /agents/documents/extract-metadata.
func (h *Handlers) ExtractMetadata(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[promptRequest](w, r)
	if !ok {
		return
	}

	meta, err := h.Documents.ExtractMetadata(r.Context(), req.AgentID, req.Prompt)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// ImprovePrompt handles POST /agents/documents/improve-prompt.
func (h *Handlers) ImprovePrompt(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[promptRequest](w, r)
	if !ok {
		return
	}

	improved, validation, err := h.Documents.ImprovePrompt(r.Context(), req.AgentID, req.Prompt)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"original_prompt": req.Prompt,
		"improved_prompt": improved,
		"validation":      validation,
	})
}

// ListDocuments handles GET /agents/documents with pagination and filters.
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	page, ok := readPage(w, r)
	if !ok {
		return
	}

	var filter service.DocumentFilter
	q := r.URL.Query()
	if raw := q.Get("document_type"); raw != "" {
		t, err := document.ParseType(raw)
		if err != nil {
			writeDomainError(w, err, "")
			return
		}
		filter.Type = t
	}
	if raw := q.Get("status"); raw != "" {
		s, err := document.ParseStatus(raw)
		if err != nil {
			writeDomainError(w, err, "")
			return
		}
		filter.Status = s
	}
	filter.AgentID = q.Get("agent_id")
	filter.ProjectName = q.Get("project_name")
	filter.Tags = q["tag"]

	docs, total, err := h.Documents.List(r.Context(), filter, page)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Items:  docs,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetDocument handles GET /agents/documents/{id}.
func (h *Handlers) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Documents.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// UpdateDocument handles PUT /agents/documents/{id}.
func (h *Handlers) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[service.UpdateRequest](w, r)
	if !ok {
		return
	}

	doc, err := h.Documents.Update(r.Context(), urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument handles DELETE /agents/documents/{id}.
func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.Documents.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnalyzeDocumentQuality handles POST /agents/documents/{id}/analyze-quality.
func (h *Handlers) AnalyzeDocumentQuality(w http.ResponseWriter, r *http.Request) {
	report, err := h.Documents.AnalyzeQuality(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ListDocumentsByAgent handles GET /agents/documents/by-agent/{id}.
func (h *Handlers) ListDocumentsByAgent(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Documents.ByAgent(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// ListDocumentsByProject handles GET /agents/documents/by-project/{name}.
func (h *Handlers) ListDocumentsByProject(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Documents.ByProject(r.Context(), urlParam(r, "name"))
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetDocumentStats handles GET /agents/documents/stats.
func (h *Handlers) GetDocumentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Documents.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
