package http

import (
	"net/http"

	"github.com/docsmith/docsmith/internal/domain/agent"
	"github.com/docsmith/docsmith/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Agents    *service.AgentService
	Documents *service.DocumentService
}

// listResponse is the envelope for paginated listings.
type listResponse struct {
	Items  any `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const defaultPageLimit = 50

// CreateAgent handles POST /agents.
func (h *Handlers) CreateAgent(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[agent.CreateRequest](w, r)
	if !ok {
		return
	}

	created, err := h.Agents.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListAgents handles GET /agents with pagination and optional type/status
// filters.
func (h *Handlers) ListAgents(w http.ResponseWriter, r *http.Request) {
	page, ok := readPage(w, r)
	if !ok {
		return
	}

	var filter service.AgentFilter
	if raw := r.URL.Query().Get("agent_type"); raw != "" {
		t, err := agent.ParseType(raw)
		if err != nil {
			writeDomainError(w, err, "")
			return
		}
		filter.Type = t
	}
	if raw := r.URL.Query().Get("agent_status"); raw != "" {
		s, err := agent.ParseStatus(raw)
		if err != nil {
			writeDomainError(w, err, "")
			return
		}
		filter.Status = s
	}

	agents, total, err := h.Agents.List(r.Context(), filter, page)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Items:  agents,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetAgent handles GET /agents/{id}.
func (h *Handlers) GetAgent(w http.ResponseWriter, r *http.Request) {
	a, err := h.Agents.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ListAvailableAgents handles GET /agents/available.
func (h *Handlers) ListAvailableAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Agents.Available(r.Context())
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

// UpdateAgentStatus handles PUT /agents/{id}/status.
func (h *Handlers) UpdateAgentStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Status string `json:"status"`
	}](w, r)
	if !ok {
		return
	}

	status, err := agent.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}

	updated, err := h.Agents.UpdateStatus(r.Context(), urlParam(r, "id"), status)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// GetAgentStatus handles GET /agents/{id}/status.
func (h *Handlers) GetAgentStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.Agents.Status(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DeleteAgent handles DELETE /agents/{id}.
func (h *Handlers) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	if err := h.Agents.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readPage extracts pagination parameters, writing a 400 on malformed values.
// Bounds are validated by the service.
func readPage(w http.ResponseWriter, r *http.Request) (service.Page, bool) {
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return service.Page{}, false
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return service.Page{}, false
	}
	return service.Page{Limit: limit, Offset: offset}, true
}
