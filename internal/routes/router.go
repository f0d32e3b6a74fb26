package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/api"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/config"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/logging"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/metrics"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/middleware"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterRoutes builds the router, wires dependencies and starts the
// background workers.
func RegisterRoutes(cfg *config.Config, upSince time.Time) http.Handler {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check sits outside auth
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	w := workers.InitWorkers(
		context.Background(),
		deps.Services.Queue,
		deps.Services.Cache,
		deps.Repo.Sources,
		deps.Repo.Pending,
		deps.Repo.Flights,
	)

	handlers := api.NewHandlers(deps, w)

	RegisterAPIRoutes(r, cfg, handlers)

	return r
}
