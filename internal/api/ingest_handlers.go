package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/auth"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/ingest"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/logging"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"
)

const maxUploadBytes = 10 << 20

// ImportFlightsHandler handles POST /api/v1/flights/import?dialect=...
//
// The declared dialect picks the normalizer; rows are resolved with
// collect-all-results semantics and the per-item outcome list mirrors
// input order.
func (h *Handlers) ImportFlightsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())

		dialect := r.URL.Query().Get("dialect")
		normalizer, err := ingest.ForDialect(dialect, logging.Named("ingest"))
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to read upload", http.StatusBadRequest)
			return
		}

		raws, err := normalizer.Normalize(body)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}
		if len(raws) == 0 {
			common.RespondError(w, initTime, nil, "Upload contains no importable rows", http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Batch.RunCollect(r.Context(), userID, raws)
		if err != nil {
			common.RespondError(w, initTime, err, "Import failed", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Import processed", result)
	}
}

// AddFlightHandler handles POST /api/v1/flights (single record,
// fail-fast).
func (h *Handlers) AddFlightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())

		var req dtos.AddFlightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		raw := dtos.RawFlight{
			SourceRef:     "api",
			DepartureCode: req.DepartureCode,
			ArrivalCode:   req.ArrivalCode,
			AirlineCode:   req.AirlineCode,
			FlightNumber:  req.FlightNumber,
			AircraftText:  req.AircraftText,
			TailNumber:    req.TailNumber,
			LocalDate:     req.LocalDate,
			Comments:      req.Comments,
		}
		raw.Times.GateOut.Scheduled = req.OutTime
		raw.Times.GateOut.Actual = req.OutTimeActual
		raw.Times.GateIn.Scheduled = req.InTime
		raw.Times.GateIn.Actual = req.InTimeActual

		flight, err := h.deps.Services.Batch.RunFailFast(r.Context(), userID, raw)
		if err != nil {
			respondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Flight created", flight, http.StatusCreated)
	}
}

// ListFlightsHandler handles GET /api/v1/flights
func (h *Handlers) ListFlightsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())

		limit, offset := pageParams(r, 50)
		flights, err := h.deps.Repo.Flights.ListByUser(r.Context(), userID, limit, offset)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list flights", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched flights", flights)
	}
}

// UserStatsHandler handles GET /api/v1/stats. Serves the worker-cached
// aggregates, computing them on demand on a cold cache.
func (h *Handlers) UserStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())

		stats := h.workers.Stats.CachedStats(userID)
		if stats == nil {
			if err := h.workers.Stats.Recompute(r.Context(), userID); err != nil {
				common.RespondError(w, initTime, err, "Failed to compute stats", http.StatusInternalServerError)
				return
			}
			stats = h.workers.Stats.CachedStats(userID)
		}

		common.RespondSuccess(w, initTime, "Fetched stats", stats)
	}
}
