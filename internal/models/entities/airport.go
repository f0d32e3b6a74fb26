package entities

import (
	"database/sql"
	"time"
)

// Airport is immutable reference data. The ICAO code is the canonical
// identifier used throughout the pipeline; IATA is kept for sources that
// key by it.
type Airport struct {
	ID        string        `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())" db:"id"`
	ICAO      string        `gorm:"column:icao;type:varchar(4);not null;uniqueIndex" db:"icao"`
	IATA      string        `gorm:"column:iata;type:varchar(3);index" db:"iata"`
	Name      string        `gorm:"column:name;type:text;not null" db:"name"`
	City      string        `gorm:"column:city;type:varchar(100)" db:"city"`
	Country   string        `gorm:"column:country;type:varchar(100)" db:"country"`
	Elevation sql.NullInt64 `gorm:"column:elevation;type:integer" db:"elevation"`
	Latitude  float64       `gorm:"column:latitude;type:numeric(10,6);not null" db:"latitude"`
	Longitude float64       `gorm:"column:longitude;type:numeric(10,6);not null" db:"longitude"`
	Timezone  string        `gorm:"column:timezone;type:varchar(50)" db:"timezone"`
	CreatedAt time.Time     `gorm:"column:created_at;default:CURRENT_TIMESTAMP" db:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" db:"updated_at"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
