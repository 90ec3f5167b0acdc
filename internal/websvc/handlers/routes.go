package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/login", h.LoginHandler)
	r.Get("/success", h.SuccessHandler)
}
