package entities

import "time"

// Airframe is a physical aircraft keyed by registration (tail number).
// Registration fragments from OCR or partial entry are matched as ordered
// subsequences, so a lookup may return several candidates.
type Airframe struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	Registration   string    `gorm:"column:registration;type:varchar(10);not null;uniqueIndex"`
	ICAO24         string    `gorm:"column:icao24;type:varchar(6)"`
	AircraftTypeID *string   `gorm:"column:aircraft_type_id;type:uuid"`
	AirlineID      *string   `gorm:"column:airline_id;type:uuid"`
	CreatedAt      time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`

	AircraftType *AircraftType `gorm:"foreignKey:AircraftTypeID"`
	Airline      *Airline      `gorm:"foreignKey:AirlineID"`
}

// TableName specifies the table name for GORM
func (Airframe) TableName() string {
	return "airframes"
}
