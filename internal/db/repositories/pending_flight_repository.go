package repositories

import (
	"context"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	"gorm.io/gorm"
)

// PendingFlightRepository handles pending flight table operations.
// Status transitions are guarded by a status precondition in the UPDATE,
// so a raced second transition simply matches no row.
type PendingFlightRepository struct {
	db *gorm.DB
}

// NewPendingFlightRepository creates a new pending flight repository
func NewPendingFlightRepository(db *gorm.DB) *PendingFlightRepository {
	return &PendingFlightRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *PendingFlightRepository) WithTx(tx *gorm.DB) *PendingFlightRepository {
	return &PendingFlightRepository{db: tx}
}

// Create inserts a pending flight
func (r *PendingFlightRepository) Create(ctx context.Context, pf *entities.PendingFlight) error {
	return r.db.WithContext(ctx).Create(pf).Error
}

// GetByID fetches a pending flight scoped to a user via its calendar source
func (r *PendingFlightRepository) GetByID(ctx context.Context, userID, id string) (*entities.PendingFlight, error) {
	var pf entities.PendingFlight

	err := r.db.WithContext(ctx).
		Joins("JOIN calendar_sources ON calendar_sources.id = pending_flights.calendar_source_id").
		Where("pending_flights.id = ? AND calendar_sources.user_id = ?", id, userID).
		First(&pf).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &pf, nil
}

// FindByEventUID fetches the candidate created for a calendar event, if any
func (r *PendingFlightRepository) FindByEventUID(ctx context.Context, sourceID, eventUID string) (*entities.PendingFlight, error) {
	var pf entities.PendingFlight

	err := r.db.WithContext(ctx).
		Where("calendar_source_id = ? AND event_uid = ?", sourceID, eventUID).
		First(&pf).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &pf, nil
}

// ListByUser returns a user's pending flights in a given status
func (r *PendingFlightRepository) ListByUser(ctx context.Context, userID, status string) ([]entities.PendingFlight, error) {
	var pfs []entities.PendingFlight

	q := r.db.WithContext(ctx).
		Joins("JOIN calendar_sources ON calendar_sources.id = pending_flights.calendar_source_id").
		Where("calendar_sources.user_id = ?", userID)
	if status != "" {
		q = q.Where("pending_flights.status = ?", status)
	}

	err := q.Order("pending_flights.created_at").Find(&pfs).Error
	return pfs, err
}

// TransitionStatus moves a pending flight from one status to another. It
// returns the number of rows updated; zero means the row was not in the
// expected state (or does not exist), which callers surface as NotFound.
func (r *PendingFlightRepository) TransitionStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.PendingFlight{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)

	return res.RowsAffected, res.Error
}

// Restore moves a REJECTED pending flight back to PENDING and resets its
// expiration to now + the pending lifetime.
func (r *PendingFlightRepository) Restore(ctx context.Context, id string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.PendingFlight{}).
		Where("id = ? AND status = ?", id, entities.PendingStatusRejected).
		Updates(map[string]interface{}{
			"status":     entities.PendingStatusPending,
			"expires_at": now.AddDate(0, 0, entities.PendingExpiryDays),
		})

	return res.RowsAffected, res.Error
}

// DeleteExpired removes undecided candidates past their expiration.
// APPROVED and REJECTED rows are kept as history.
func (r *PendingFlightRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", entities.PendingStatusPending, now).
		Delete(&entities.PendingFlight{})

	return res.RowsAffected, res.Error
}
