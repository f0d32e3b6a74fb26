// Package api contains the HTTP handlers for the ingestion pipeline and
// the pending flight lifecycle.
package api

import (
	"net/http"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/engine"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/pending"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/workers"
)

// Handlers bundles the handler set with its dependencies
type Handlers struct {
	deps    *Dependencies
	workers *workers.Workers
}

// NewHandlers creates the handler set
func NewHandlers(deps *Dependencies, w *workers.Workers) *Handlers {
	return &Handlers{
		deps:    deps,
		workers: w,
	}
}

// respondDomainError maps structured domain failures onto HTTP codes:
// per-record resolution failures are the caller's data problem (422),
// lifecycle violations are 404 or 409, everything else is a 500.
func respondDomainError(w http.ResponseWriter, initTime time.Time, err error) {
	switch e := err.(type) {
	case *engine.ResolutionError:
		common.RespondError(w, initTime, e, "", http.StatusUnprocessableEntity)
	case *pending.LifecycleError:
		code := http.StatusConflict
		if e.Code == constants.ErrCodeNotFound {
			code = http.StatusNotFound
		}
		common.RespondError(w, initTime, e, "", code)
	default:
		common.RespondError(w, initTime, err, "Internal error", http.StatusInternalServerError)
	}
}
