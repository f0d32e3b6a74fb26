package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pending flight lifecycle states
const (
	PendingStatusPending  = "PENDING"
	PendingStatusApproved = "APPROVED"
	PendingStatusRejected = "REJECTED"
)

// PendingExpiryDays is the lifetime granted to a pending flight on
// creation and on restore from REJECTED.
const PendingExpiryDays = 30

// ParsedFlightData is the typed field bag extracted from a calendar event.
// Every field is optional; the approve path merges user overrides over it
// field by field (override wins when present).
type ParsedFlightData struct {
	DepartureCode string `json:"departureCode,omitempty"`
	ArrivalCode   string `json:"arrivalCode,omitempty"`
	AirlineCode   string `json:"airlineCode,omitempty"`
	FlightNumber  *int   `json:"flightNumber,omitempty"`
	LocalDate     string `json:"localDate,omitempty"`
	OutTime       string `json:"outTime,omitempty"`
	InTime        string `json:"inTime,omitempty"`
	AircraftText  string `json:"aircraftText,omitempty"`
	TailNumber    string `json:"tailNumber,omitempty"`
	Summary       string `json:"summary,omitempty"`
}

// PendingFlight is a calendar-derived candidate awaiting user approval.
type PendingFlight struct {
	ID               string           `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	CalendarSourceID string           `gorm:"column:calendar_source_id;type:uuid;not null;index"`
	EventUID         string           `gorm:"column:event_uid;type:varchar(255);index"`
	Status           string           `gorm:"column:status;type:varchar(10);not null;default:'PENDING';index"`
	ParsedData       ParsedFlightData `gorm:"column:parsed_data;type:jsonb;serializer:json"`
	ExpiresAt        time.Time        `gorm:"column:expires_at;not null"`
	CreatedAt        time.Time        `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`

	CalendarSource *CalendarSource `gorm:"foreignKey:CalendarSourceID"`
}

// TableName specifies the table name for GORM
func (PendingFlight) TableName() string {
	return "pending_flights"
}

// BeforeCreate assigns the id client-side so backends without
// gen_random_uuid (sqlite) behave the same
func (p *PendingFlight) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
