package http

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Agents
		r.Post("/agents", h.CreateAgent)
		r.Get("/agents", h.ListAgents)
		r.Get("/agents/available", h.ListAvailableAgents)
		r.Get("/agents/{id}", h.GetAgent)
		r.Put("/agents/{id}/status", h.UpdateAgentStatus)
		r.Get("/agents/{id}/status", h.GetAgentStatus)
		r.Delete("/agents/{id}", h.DeleteAgent)

		// Generation pipeline
		r.Post("/agents/documents/generate", h.GenerateDocument)
		r.Post("/agents/documents/validate-prompt", h.ValidatePrompt)
		r.Post("/agents/documents/extract-metadata", h.ExtractMetadata)
		r.Post("/agents/documents/improve-prompt", h.ImprovePrompt)

		// Documents
		r.Get("/agents/documents", h.ListDocuments)
		r.Get("/agents/documents/stats", h.GetDocumentStats)
		r.Get("/agents/documents/by-agent/{id}", h.ListDocumentsByAgent)
		r.Get("/agents/documents/by-project/{name}", h.ListDocumentsByProject)
		r.Get("/agents/documents/{id}", h.GetDocument)
		r.Put("/agents/documents/{id}", h.UpdateDocument)
		r.Delete("/agents/documents/{id}", h.DeleteDocument)
		r.Post("/agents/documents/{id}/analyze-quality", h.AnalyzeDocumentQuality)
	})
}
