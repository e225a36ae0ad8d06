package stubserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the stub account service routes.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/validate/{id}", h.ValidateAccount)
		r.Get("/balance/{id}", h.GetBalance)
	})

	r.Post("/transfer", h.SubmitTransfer)
	r.Post("/authToken", h.AuthToken)

	return r
}
