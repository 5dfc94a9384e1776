package stockopname

import "github.com/go-chi/chi/v5"

// MountRoutes registers stock opname routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/counts", h.List)
	r.Post("/counts", h.Create)
	r.Get("/counts/{id}", h.Show)
	r.Put("/counts/{id}", h.Update)
	r.Delete("/counts/{id}", h.Delete)
}
