package repositories

import (
	"context"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	"gorm.io/gorm"
)

// CalendarSourceRepository handles calendar source table operations
type CalendarSourceRepository struct {
	db *gorm.DB
}

// NewCalendarSourceRepository creates a new calendar source repository
func NewCalendarSourceRepository(db *gorm.DB) *CalendarSourceRepository {
	return &CalendarSourceRepository{db: db}
}

// GetByID fetches a calendar source owned by the given user
func (r *CalendarSourceRepository) GetByID(ctx context.Context, userID, id string) (*entities.CalendarSource, error) {
	var src entities.CalendarSource

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&src).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &src, nil
}

// ListEnabled returns all enabled sources (used by the sync worker)
func (r *CalendarSourceRepository) ListEnabled(ctx context.Context) ([]entities.CalendarSource, error) {
	var srcs []entities.CalendarSource

	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Find(&srcs).Error

	return srcs, err
}

// MarkSynced records a completed sync pass
func (r *CalendarSourceRepository) MarkSynced(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.CalendarSource{}).
		Where("id = ?", id).
		Update("last_sync_at", at).Error
}
