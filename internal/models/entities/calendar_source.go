package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalendarSource is a user-owned iCalendar feed that produces pending
// flight candidates during sync.
type CalendarSource struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	UserID     string    `gorm:"column:user_id;type:uuid;not null;index"`
	URL        string    `gorm:"column:url;type:text;not null"`
	Enabled    bool      `gorm:"column:enabled;default:true"`
	AutoImport bool      `gorm:"column:auto_import;default:false"`
	LastSyncAt *time.Time `gorm:"column:last_sync_at"`
	CreatedAt  time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for GORM
func (CalendarSource) TableName() string {
	return "calendar_sources"
}

// BeforeCreate assigns the id client-side so backends without
// gen_random_uuid (sqlite) behave the same
func (c *CalendarSource) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
