// Package pending implements the lifecycle of calendar-derived flight
// candidates: PENDING -> APPROVED/REJECTED, with REJECTED -> PENDING
// restore and time-boxed expiration.
package pending

import (
	"context"
	"fmt"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db/repositories"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/engine"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/metrics"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LifecycleError reports an invalid or raced state transition.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func notFound(id string) *LifecycleError {
	return &LifecycleError{
		Code:    constants.ErrCodeNotFound,
		Message: fmt.Sprintf("no pending flight %q in the expected state", id),
	}
}

func invalidState(id, status string) *LifecycleError {
	return &LifecycleError{
		Code:    constants.ErrCodeInvalidState,
		Message: fmt.Sprintf("pending flight %q is %s", id, status),
	}
}

// Service drives pending flight transitions. Transitions are guarded by a
// status precondition in the UPDATE, so two concurrent approvals of the
// same item cannot both create a flight: the loser matches no PENDING row
// and fails with NotFound.
type Service struct {
	db      *gorm.DB
	pending *repositories.PendingFlightRepository
	flights *repositories.FlightRepository
	engine  *engine.ResolutionEngine
	queue   *common.TaskQueueService
	log     *zap.SugaredLogger
	metrics *metrics.MetricsRegistry
}

// NewService creates a new pending flight lifecycle service
func NewService(
	db *gorm.DB,
	pendingRepo *repositories.PendingFlightRepository,
	flightRepo *repositories.FlightRepository,
	eng *engine.ResolutionEngine,
	queue *common.TaskQueueService,
	log *zap.SugaredLogger,
	reg *metrics.MetricsRegistry,
) *Service {
	return &Service{
		db:      db,
		pending: pendingRepo,
		flights: flightRepo,
		engine:  eng,
		queue:   queue,
		log:     log,
		metrics: reg,
	}
}

// List returns the user's pending flights, optionally filtered by status
func (s *Service) List(ctx context.Context, userID, status string) ([]entities.PendingFlight, error) {
	return s.pending.ListByUser(ctx, userID, status)
}

// Approve runs the resolution engine over the merge of user overrides and
// the parsed candidate fields (overrides win). On success the flight is
// created and the candidate marked APPROVED in one transaction; on
// resolution failure the candidate stays PENDING and the failure is
// surfaced.
func (s *Service) Approve(ctx context.Context, userID, id string, overrides *dtos.FlightOverrides) (*entities.Flight, error) {
	pf, err := s.pending.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if pf == nil {
		s.countTransition("approve", "not_found")
		return nil, notFound(id)
	}
	if pf.Status != entities.PendingStatusPending {
		// APPROVED is terminal for the approve path
		s.countTransition("approve", "invalid_state")
		return nil, invalidState(id, pf.Status)
	}

	raw := MergeOverrides(pf.ParsedData, overrides)
	raw.SourceRef = "pending:" + pf.ID

	resolved, resErr, err := s.engine.Resolve(ctx, &raw)
	if err != nil {
		return nil, err
	}
	if resErr != nil {
		// Candidate stays PENDING for the user to fix and retry
		s.countTransition("approve", "resolution_failed")
		return nil, resErr
	}

	flight := resolved.ToEntity(userID)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.pending.WithTx(tx).TransitionStatus(ctx, id, entities.PendingStatusPending, entities.PendingStatusApproved)
		if err != nil {
			return err
		}
		if rows == 0 {
			// A concurrent approval got here first
			return notFound(id)
		}
		return tx.Create(flight).Error
	})
	if err != nil {
		if _, ok := err.(*LifecycleError); ok {
			s.countTransition("approve", "raced")
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", constants.ErrCodePersistenceFailure, err)
	}

	s.countTransition("approve", "ok")
	if s.queue != nil {
		if _, err := s.queue.EnqueueStatsRecompute(ctx, userID); err != nil {
			s.log.Warnw("Failed to queue stats recompute", "user_id", userID, "error", err.Error())
		}
	}

	return flight, nil
}

// BulkApprove approves several candidates with collect-all-results
// semantics: one failure is recorded and the rest keep going, and the
// outcome list matches input order.
func (s *Service) BulkApprove(ctx context.Context, userID string, ids []string) *dtos.BatchResult {
	result := &dtos.BatchResult{
		Outcomes: make([]dtos.ItemOutcome, len(ids)),
	}

	for i, id := range ids {
		outcome := &result.Outcomes[i]
		outcome.Index = i
		outcome.SourceRef = "pending:" + id

		flight, err := s.Approve(ctx, userID, id, nil)
		if err != nil {
			outcome.Success = false
			outcome.Error = err.Error()
			switch e := err.(type) {
			case *LifecycleError:
				outcome.ErrorCode = e.Code
			case *engine.ResolutionError:
				outcome.ErrorCode = e.Code
			default:
				outcome.ErrorCode = constants.ErrCodePersistenceFailure
			}
			result.Failed++
			continue
		}

		outcome.Success = true
		outcome.FlightID = flight.ID
		result.Created++
	}

	return result
}

// Reject moves a PENDING candidate to REJECTED. No resolution happens.
func (s *Service) Reject(ctx context.Context, userID, id string) error {
	pf, err := s.pending.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if pf == nil {
		s.countTransition("reject", "not_found")
		return notFound(id)
	}

	rows, err := s.pending.TransitionStatus(ctx, id, entities.PendingStatusPending, entities.PendingStatusRejected)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.countTransition("reject", "invalid_state")
		return invalidState(id, pf.Status)
	}

	s.countTransition("reject", "ok")
	return nil
}

// Restore moves a REJECTED candidate back to PENDING and resets its
// expiration to now plus the pending lifetime. Only REJECTED rows match;
// restoring a PENDING or APPROVED item fails.
func (s *Service) Restore(ctx context.Context, userID, id string) error {
	pf, err := s.pending.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if pf == nil {
		s.countTransition("restore", "not_found")
		return notFound(id)
	}

	rows, err := s.pending.Restore(ctx, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if rows == 0 {
		s.countTransition("restore", "invalid_state")
		return invalidState(id, pf.Status)
	}

	s.countTransition("restore", "ok")
	return nil
}

func (s *Service) countTransition(transition, result string) {
	if s.metrics != nil {
		s.metrics.PendingTransitionsTotal.WithLabelValues(transition, result).Inc()
	}
}

// MergeOverrides applies the field-by-field "input value wins if present,
// else parsed value" rule and shapes the result as a raw flight for the
// resolution engine.
func MergeOverrides(parsed entities.ParsedFlightData, ov *dtos.FlightOverrides) dtos.RawFlight {
	if ov == nil {
		ov = &dtos.FlightOverrides{}
	}

	raw := dtos.RawFlight{
		DepartureCode: pick(ov.DepartureCode, parsed.DepartureCode),
		ArrivalCode:   pick(ov.ArrivalCode, parsed.ArrivalCode),
		AirlineCode:   pick(ov.AirlineCode, parsed.AirlineCode),
		FlightNumber:  parsed.FlightNumber,
		AircraftText:  pick(ov.AircraftText, parsed.AircraftText),
		TailNumber:    pick(ov.TailNumber, parsed.TailNumber),
		LocalDate:     pick(ov.LocalDate, parsed.LocalDate),
	}
	if ov.FlightNumber != nil {
		raw.FlightNumber = ov.FlightNumber
	}
	raw.Times.GateOut.Scheduled = pick(ov.OutTime, parsed.OutTime)
	raw.Times.GateIn.Scheduled = pick(ov.InTime, parsed.InTime)

	return raw
}

func pick(override, parsed string) string {
	if override != "" {
		return override
	}
	return parsed
}
