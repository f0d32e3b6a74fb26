package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/auth"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ListPendingHandler handles GET /api/v1/pending?status=...
func (h *Handlers) ListPendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())

		items, err := h.deps.Services.Pending.List(r.Context(), userID, r.URL.Query().Get("status"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list pending flights", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched pending flights", items)
	}
}

// ApprovePendingHandler handles POST /api/v1/pending/{id}/approve. The
// optional body carries field overrides applied before resolution.
func (h *Handlers) ApprovePendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())
		id := chi.URLParam(r, "id")

		var overrides *dtos.FlightOverrides
		if r.ContentLength > 0 {
			overrides = &dtos.FlightOverrides{}
			if err := json.NewDecoder(r.Body).Decode(overrides); err != nil {
				common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
				return
			}
		}

		flight, err := h.deps.Services.Pending.Approve(r.Context(), userID, id, overrides)
		if err != nil {
			respondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pending flight approved", flight, http.StatusCreated)
	}
}

// BulkApprovePendingHandler handles POST /api/v1/pending/approve
func (h *Handlers) BulkApprovePendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())

		var req dtos.BulkApproveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(req.PendingIDs) == 0 {
			common.RespondError(w, initTime, nil, "No pending ids supplied", http.StatusBadRequest)
			return
		}

		result := h.deps.Services.Pending.BulkApprove(r.Context(), userID, req.PendingIDs)
		common.RespondSuccess(w, initTime, "Bulk approval processed", result)
	}
}

// RejectPendingHandler handles POST /api/v1/pending/{id}/reject
func (h *Handlers) RejectPendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())
		id := chi.URLParam(r, "id")

		if err := h.deps.Services.Pending.Reject(r.Context(), userID, id); err != nil {
			respondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pending flight rejected", nil)
	}
}

// RestorePendingHandler handles POST /api/v1/pending/{id}/restore
func (h *Handlers) RestorePendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())
		id := chi.URLParam(r, "id")

		if err := h.deps.Services.Pending.Restore(r.Context(), userID, id); err != nil {
			respondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pending flight restored", nil)
	}
}
