package http

import (
	"net/http"
	"time"

	"github.com/docsmith/docsmith/internal/adapter/ws"
	"github.com/docsmith/docsmith/internal/port/store"
	"github.com/docsmith/docsmith/internal/resilience"
)

// HealthHandler reports liveness plus a snapshot of store sizes, breaker
// states, and websocket connections.
type HealthHandler struct {
	Version  string
	Agents   store.AgentStore
	Docs     store.DocumentStore
	Breakers map[string]*resilience.Breaker
	Hub      *ws.Hub
}

// Health handles GET /health. The endpoint is exempt from API key checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":    "ok",
		"version":   h.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.Agents != nil {
		if n, err := h.Agents.Count(r.Context()); err == nil {
			payload["agents"] = n
		}
	}
	if h.Docs != nil {
		if stats, err := h.Docs.Stats(r.Context()); err == nil {
			payload["documents"] = stats.TotalDocuments
		}
	}
	if len(h.Breakers) > 0 {
		states := make(map[string]string, len(h.Breakers))
		for name, b := range h.Breakers {
			states[name] = string(b.State())
		}
		payload["breakers"] = states
	}
	if h.Hub != nil {
		payload["ws_connections"] = h.Hub.ConnectionCount()
	}

	writeJSON(w, http.StatusOK, payload)
}
