package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/auth"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// TriggerCalendarSyncHandler handles POST /api/v1/calendar/{id}/sync.
// The response only acknowledges that a sync task was queued; the worker
// reports the task's own outcome.
func (h *Handlers) TriggerCalendarSyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := auth.GetUserID(r.Context())
		sourceID := chi.URLParam(r, "id")

		src, err := h.deps.Repo.Sources.GetByID(r.Context(), userID, sourceID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to load calendar source", http.StatusInternalServerError)
			return
		}
		if src == nil {
			common.RespondError(w, initTime, nil, "Calendar source not found", http.StatusNotFound)
			return
		}

		taskID, err := h.deps.Services.Queue.EnqueueCalendarSync(r.Context(), sourceID, userID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to queue sync", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Sync queued", dtos.QueuedResponse{
			TaskID: taskID,
			Queued: true,
		}, http.StatusAccepted)
	}
}

// pageParams parses limit/offset query parameters with a default page
// size, capped to keep responses bounded.
func pageParams(r *http.Request, defaultLimit int) (int, int) {
	limit := defaultLimit
	if qs := r.URL.Query().Get("limit"); qs != "" {
		if n, err := strconv.Atoi(qs); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if qs := r.URL.Query().Get("offset"); qs != "" {
		if n, err := strconv.Atoi(qs); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
