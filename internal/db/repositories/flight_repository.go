package repositories

import (
	"context"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	"gorm.io/gorm"
)

// FlightRepository handles flight table operations
type FlightRepository struct {
	db *gorm.DB
}

// NewFlightRepository creates a new flight repository
func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// Create inserts a single flight
func (r *FlightRepository) Create(ctx context.Context, flight *entities.Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

// CreateBatch inserts all flights inside one transaction. The whole
// sub-batch commits or rolls back together; a mid-batch infrastructure
// failure never leaves a partial import behind.
func (r *FlightRepository) CreateBatch(ctx context.Context, flights []*entities.Flight) error {
	if len(flights) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range flights {
			if err := tx.Create(f).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByUser returns a user's flights, newest departure first
func (r *FlightRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entities.Flight, error) {
	var flights []entities.Flight

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("out_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&flights).Error

	return flights, err
}

// CountByUser returns the number of flights owned by a user
func (r *FlightRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Flight{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// SumDurationByUser returns the user's total logged minutes
func (r *FlightRepository) SumDurationByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&entities.Flight{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(duration_min), 0)").
		Scan(&total).Error
	return total, err
}
