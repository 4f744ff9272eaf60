package api

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the API endpoints on a chi router.
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", h.Extract)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.ListCart)
			r.Post("/", h.AddToCart)
			r.Delete("/", h.ClearCart)
			r.Get("/stats", h.CartStats)
			r.Delete("/{id}", h.RemoveFromCart)
		})

		r.Route("/currency", func(r chi.Router) {
			r.Post("/convert", h.ConvertCurrency)
			r.Get("/rates", h.ExchangeRates)
		})
	})
}
