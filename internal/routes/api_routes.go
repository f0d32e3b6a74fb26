package routes

import (
	"github.com/StratosphereLabs/flight-logger-sub000/internal/api"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/config"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes mounts the authenticated v1 API.
func RegisterAPIRoutes(r chi.Router, cfg *config.Config, h *api.Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Route("/flights", func(r chi.Router) {
			r.Get("/", h.ListFlightsHandler())
			r.Post("/", h.AddFlightHandler())
			r.Post("/import", h.ImportFlightsHandler())
		})

		r.Get("/stats", h.UserStatsHandler())

		r.Route("/pending", func(r chi.Router) {
			r.Get("/", h.ListPendingHandler())
			r.Post("/approve", h.BulkApprovePendingHandler())
			r.Post("/{id}/approve", h.ApprovePendingHandler())
			r.Post("/{id}/reject", h.RejectPendingHandler())
			r.Post("/{id}/restore", h.RestorePendingHandler())
		})

		r.Post("/calendar/{id}/sync", h.TriggerCalendarSyncHandler())
	})
}
