package dtos

import (
	"github.com/StratosphereLabs/flight-logger-sub000/internal/schedule"
)

// RawFlight is the common intermediate shape produced by the format
// normalizers and the calendar event parser. It lives only for the
// duration of one ingestion call; the resolution engine consumes it and
// emits either a resolved flight or a per-record failure.
type RawFlight struct {
	// SourceRef correlates the record back to its origin (row number in an
	// upload, event UID for a calendar candidate)
	SourceRef string

	DepartureCode string
	ArrivalCode   string
	AirlineCode   string
	FlightNumber  *int

	// Free-text aircraft descriptor ("Boeing 737-8H4") used to
	// disambiguate ICAO collisions, plus the extracted type code if the
	// source carried one
	AircraftText string
	AircraftCode string

	TailNumber string

	// Local calendar date at the departure airport, "2006-01-02"
	LocalDate string
	Times     schedule.LocalTimes

	Comments string
}
