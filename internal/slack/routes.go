package slack

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/slack/events", h.HandleEvents)
	r.Get("/health", h.Health)
}
