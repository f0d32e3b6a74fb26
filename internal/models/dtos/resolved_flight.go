package dtos

import (
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/schedule"
)

// ResolvedFlight is a flight with all mandatory entity references and UTC
// timestamps established, ready for persistence.
type ResolvedFlight struct {
	Departure    *entities.Airport
	Arrival      *entities.Airport
	Airline      *entities.Airline
	AircraftType *entities.AircraftType
	Airframe     *entities.Airframe

	FlightNumber *int
	TailNumber   string
	Comments     string

	Schedule *schedule.Schedule
}

// ToEntity maps the resolved flight onto a persistable Flight row owned by
// the given user.
func (r *ResolvedFlight) ToEntity(userID string) *entities.Flight {
	f := &entities.Flight{
		UserID:             userID,
		DepartureAirportID: r.Departure.ID,
		ArrivalAirportID:   r.Arrival.ID,
		FlightNumber:       r.FlightNumber,
		TailNumber:         r.TailNumber,
		Comments:           r.Comments,
	}
	if r.Airline != nil {
		f.AirlineID = &r.Airline.ID
	}
	if r.AircraftType != nil {
		f.AircraftTypeID = &r.AircraftType.ID
	}
	if r.Airframe != nil {
		f.AirframeID = &r.Airframe.ID
	}
	if s := r.Schedule; s != nil {
		f.OutTime = s.GateOut.Scheduled
		f.OutTimeActual = s.GateOut.Actual
		f.OffTime = s.Takeoff.Scheduled
		f.OffTimeActual = s.Takeoff.Actual
		f.OnTime = s.Landing.Scheduled
		f.OnTimeActual = s.Landing.Actual
		f.InTime = s.GateIn.Scheduled
		f.InTimeActual = s.GateIn.Actual
		f.InTimeDaysAdded = s.GateIn.DaysAddedScheduled
		f.DurationMin = s.DurationMin
	}
	return f
}
