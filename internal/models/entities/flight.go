package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flight is a fully resolved flight record. Airport references are
// mandatory; airline, aircraft type and airframe are attached when
// resolution succeeded. All timestamps are UTC.
type Flight struct {
	ID                 string  `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	UserID             string  `gorm:"column:user_id;type:uuid;not null;index"`
	DepartureAirportID string  `gorm:"column:departure_airport_id;type:uuid;not null"`
	ArrivalAirportID   string  `gorm:"column:arrival_airport_id;type:uuid;not null"`
	AirlineID          *string `gorm:"column:airline_id;type:uuid"`
	AircraftTypeID     *string `gorm:"column:aircraft_type_id;type:uuid"`
	AirframeID         *string `gorm:"column:airframe_id;type:uuid"`
	FlightNumber       *int    `gorm:"column:flight_number"`

	// Gate and runway timestamp pairs (out/off/on/in), scheduled and actual
	OutTime       *time.Time `gorm:"column:out_time"`
	OutTimeActual *time.Time `gorm:"column:out_time_actual"`
	OffTime       *time.Time `gorm:"column:off_time"`
	OffTimeActual *time.Time `gorm:"column:off_time_actual"`
	OnTime        *time.Time `gorm:"column:on_time"`
	OnTimeActual  *time.Time `gorm:"column:on_time_actual"`
	InTime        *time.Time `gorm:"column:in_time"`
	InTimeActual  *time.Time `gorm:"column:in_time_actual"`

	// Calendar days the arrival rolled past the departure's local date,
	// kept for display ("+1" badges)
	InTimeDaysAdded int `gorm:"column:in_time_days_added;default:0"`

	DurationMin int `gorm:"column:duration_min;not null"`

	TailNumber string    `gorm:"column:tail_number;type:varchar(10)"`
	Comments   string    `gorm:"column:comments;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`

	DepartureAirport *Airport      `gorm:"foreignKey:DepartureAirportID"`
	ArrivalAirport   *Airport      `gorm:"foreignKey:ArrivalAirportID"`
	Airline          *Airline      `gorm:"foreignKey:AirlineID"`
	AircraftType     *AircraftType `gorm:"foreignKey:AircraftTypeID"`
	Airframe         *Airframe     `gorm:"foreignKey:AirframeID"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

// BeforeCreate assigns the id client-side so backends without
// gen_random_uuid (sqlite) behave the same
func (f *Flight) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
