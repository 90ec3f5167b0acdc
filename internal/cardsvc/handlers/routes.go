package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/serverStatus", h.ServerStatusHandler)

	r.Route("/cards", func(r chi.Router) {
		r.Post("/", h.CreateCardHandler)
		r.Get("/", h.ListCardsHandler)
		r.Get("/{id}", h.GetCardHandler)
		r.Put("/{id}", h.UpdateCardHandler)
		r.Delete("/{id}", h.DeleteCardHandler)
	})
}
