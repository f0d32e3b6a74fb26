package entities

import "time"

// Airline is immutable reference data.
type Airline struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())" db:"id"`
	IATA      string    `gorm:"column:iata;type:varchar(2);index" db:"iata"`
	ICAO      string    `gorm:"column:icao;type:varchar(3);index" db:"icao"`
	Name      string    `gorm:"column:name;type:text;not null" db:"name"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" db:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" db:"updated_at"`
}

// TableName specifies the table name for GORM
func (Airline) TableName() string {
	return "airlines"
}
