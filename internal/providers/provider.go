// Package providers implements the external flight-status lookup chain.
// Providers are consulted in fixed priority order; any single provider's
// failure is recovered inside the chain and never aborts it.
package providers

import (
	"context"
	"fmt"
	"time"
)

// FlightMatch is one authoritative result from a provider: departure and
// arrival airport identifiers plus UTC timestamps. These supersede any
// locally-asserted equivalents.
type FlightMatch struct {
	DepartureICAO string
	ArrivalICAO   string

	OutTime       *time.Time
	OutTimeActual *time.Time
	OffTime       *time.Time
	OffTimeActual *time.Time
	OnTime        *time.Time
	OnTimeActual  *time.Time
	InTime        *time.Time
	InTimeActual  *time.Time

	TailNumber   string
	AircraftICAO string
}

// FlightStatusProvider is one external flight-status source. Search
// returns candidate matches for an airline + flight number + date;
// an empty slice means no match, an error means the provider failed.
type FlightStatusProvider interface {
	Name() string
	Search(ctx context.Context, airline string, flightNumber int, isoDate string) ([]FlightMatch, error)
}

// ProviderError wraps a provider-level failure with a machine-readable
// code. It stays internal to the lookup chain.
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
