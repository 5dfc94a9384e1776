package installments

import "github.com/go-chi/chi/v5"

// MountRoutes registers installment payment routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/payments", h.Create)
	r.Get("/payments/{id}", h.Show)
	r.Get("/loans/{id}/statement", h.Statement)
}
