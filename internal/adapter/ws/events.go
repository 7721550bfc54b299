package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventAgentStatus       = "agent.status"
	EventDocumentStatus    = "document.status"
	EventDocumentGenerated = "document.generated"
)

// AgentStatusEvent is broadcast when an agent's status changes.
type AgentStatusEvent struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
}

// DocumentStatusEvent is broadcast when a document's workflow status changes.
type DocumentStatusEvent struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Version    string `json:"version"`
}

// DocumentGeneratedEvent is broadcast when a generation pipeline completes.
type DocumentGeneratedEvent struct {
	DocumentID  string  `json:"document_id"`
	AgentID     string  `json:"agent_id"`
	ProjectName string  `json:"project_name"`
	WordCount   int     `json:"word_count"`
	Valid       bool    `json:"valid"`
	Confidence  float64 `json:"confidence"`
}

// BroadcastEvent marshals a typed event payload and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
