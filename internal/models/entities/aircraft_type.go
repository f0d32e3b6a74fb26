package entities

import "time"

// AircraftType is immutable reference data. Multiple types may share an
// ICAO code (e.g. all 737 MAX 8 variants map to B38M), so lookups by ICAO
// return a set and the caller disambiguates by name.
type AircraftType struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	IATA      string    `gorm:"column:iata;type:varchar(3);index"`
	ICAO      string    `gorm:"column:icao;type:varchar(4);index"`
	Name      string    `gorm:"column:name;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for GORM
func (AircraftType) TableName() string {
	return "aircraft_types"
}
