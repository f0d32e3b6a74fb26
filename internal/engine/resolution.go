// Package engine orchestrates reference resolution, the external lookup
// chain and the schedule calculator, turning raw flights into resolved
// flights or structured per-record failures.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/providers"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/resolver"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/schedule"
)

// ResolutionError is a per-record failure. It is data, not an exception:
// collect-all-results mode returns it alongside successes, fail-fast mode
// surfaces it as the operation's error.
type ResolutionError struct {
	Code      string
	Field     string
	Message   string
	SourceRef string
}

func (e *ResolutionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func missingField(sourceRef, field string) *ResolutionError {
	return &ResolutionError{
		Code:      constants.ErrCodeMissingField,
		Field:     field,
		Message:   fmt.Sprintf("missing mandatory field %q", field),
		SourceRef: sourceRef,
	}
}

func airportNotFound(sourceRef, code string) *ResolutionError {
	return &ResolutionError{
		Code:      constants.ErrCodeAirportNotFound,
		Field:     code,
		Message:   fmt.Sprintf("airport %q could not be resolved", code),
		SourceRef: sourceRef,
	}
}

// ResolutionEngine resolves one raw flight at a time. Resolution is
// idempotent: the same input against unchanged external state yields the
// same output.
type ResolutionEngine struct {
	resolver *resolver.Resolver
	chain    *providers.LookupChain
}

// NewResolutionEngine creates a new resolution engine
func NewResolutionEngine(res *resolver.Resolver, chain *providers.LookupChain) *ResolutionEngine {
	return &ResolutionEngine{
		resolver: res,
		chain:    chain,
	}
}

// Preload warms the reference cache for a whole batch with one query per
// identifier set.
func (e *ResolutionEngine) Preload(ctx context.Context, raws []dtos.RawFlight) error {
	var airports, airlines []string
	for i := range raws {
		airports = append(airports, raws[i].DepartureCode, raws[i].ArrivalCode)
		airlines = append(airlines, raws[i].AirlineCode)
	}
	return e.resolver.PreloadCodes(ctx, airports, airlines)
}

// Resolve maps a raw flight to a resolved flight. The second return value
// is the per-record failure (fatal for this record only); the third is an
// infrastructure error that must abort the enclosing operation.
func (e *ResolutionEngine) Resolve(ctx context.Context, raw *dtos.RawFlight) (*dtos.ResolvedFlight, *ResolutionError, error) {
	out := &dtos.ResolvedFlight{
		FlightNumber: raw.FlightNumber,
		TailNumber:   raw.TailNumber,
		Comments:     raw.Comments,
	}

	// Airline resolution is non-fatal: an unresolvable or absent code just
	// leaves the reference unset.
	airline, err := e.resolver.ResolveAirline(ctx, raw.AirlineCode, resolver.SearchByCodes)
	if err != nil {
		return nil, nil, err
	}
	out.Airline = airline

	if raw.FlightNumber == nil {
		return nil, missingField(raw.SourceRef, "flightNumber"), nil
	}
	if raw.LocalDate == "" {
		return nil, missingField(raw.SourceRef, "localDate"), nil
	}
	if raw.Times.GateOut.Scheduled == "" {
		return nil, missingField(raw.SourceRef, "departureTime"), nil
	}

	// Authoritative external data first; locally-asserted airports and
	// times are the fallback.
	match := e.lookupMatch(ctx, raw, airline)
	if match != nil {
		resErr, err := e.applyMatch(ctx, raw, match, out)
		if resErr != nil || err != nil {
			return nil, resErr, err
		}
	} else {
		resErr, err := e.applyLocal(ctx, raw, out)
		if resErr != nil || err != nil {
			return nil, resErr, err
		}
	}

	// Aircraft type and airframe are opportunistic: unresolved is fine.
	if err := e.attachAircraft(ctx, raw, match, out); err != nil {
		return nil, nil, err
	}

	return out, nil, nil
}

// lookupMatch consults the external chain when enough identifying data is
// present. The chain swallows provider failures, so a nil result simply
// means "use the local assertions".
func (e *ResolutionEngine) lookupMatch(ctx context.Context, raw *dtos.RawFlight, airline *entities.Airline) *providers.FlightMatch {
	if airline == nil || raw.FlightNumber == nil {
		return nil
	}
	designator := airline.IATA
	if designator == "" {
		designator = airline.ICAO
	}
	if designator == "" {
		return nil
	}
	return e.chain.FindFlight(ctx, designator, *raw.FlightNumber, raw.LocalDate)
}

// applyMatch adopts the provider's airports and UTC timestamps.
func (e *ResolutionEngine) applyMatch(ctx context.Context, raw *dtos.RawFlight, match *providers.FlightMatch, out *dtos.ResolvedFlight) (*ResolutionError, error) {
	dep, err := e.resolver.ResolveAirport(ctx, match.DepartureICAO, resolver.SearchByCodes)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return airportNotFound(raw.SourceRef, match.DepartureICAO), nil
	}
	arr, err := e.resolver.ResolveAirport(ctx, match.ArrivalICAO, resolver.SearchByCodes)
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return airportNotFound(raw.SourceRef, match.ArrivalICAO), nil
	}

	out.Departure = dep
	out.Arrival = arr
	if match.TailNumber != "" {
		out.TailNumber = match.TailNumber
	}

	sched := &schedule.Schedule{
		GateOut: schedule.Timestamps{Scheduled: match.OutTime, Actual: match.OutTimeActual},
		Takeoff: schedule.Timestamps{Scheduled: match.OffTime, Actual: match.OffTimeActual},
		Landing: schedule.Timestamps{Scheduled: match.OnTime, Actual: match.OnTimeActual},
		GateIn:  schedule.Timestamps{Scheduled: match.InTime, Actual: match.InTimeActual},
	}
	if sched.GateOut.Scheduled != nil && sched.GateIn.Scheduled != nil {
		dur := sched.GateIn.Scheduled.Sub(*sched.GateOut.Scheduled)
		if dur < 0 {
			return &ResolutionError{
				Code:      constants.ErrCodeChronology,
				Message:   "provider arrival precedes departure",
				SourceRef: raw.SourceRef,
			}, nil
		}
		sched.DurationMin = int(dur.Minutes())
	}
	out.Schedule = sched

	return nil, nil
}

// applyLocal resolves the locally-asserted airports and reconstructs the
// schedule from local wall-clock strings.
func (e *ResolutionEngine) applyLocal(ctx context.Context, raw *dtos.RawFlight, out *dtos.ResolvedFlight) (*ResolutionError, error) {
	if raw.DepartureCode == "" {
		return missingField(raw.SourceRef, "departureCode"), nil
	}
	if raw.ArrivalCode == "" {
		return missingField(raw.SourceRef, "arrivalCode"), nil
	}
	if raw.Times.GateIn.Scheduled == "" {
		return missingField(raw.SourceRef, "arrivalTime"), nil
	}

	dep, err := e.resolver.ResolveAirport(ctx, raw.DepartureCode, resolver.SearchByCodes)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return airportNotFound(raw.SourceRef, raw.DepartureCode), nil
	}
	arr, err := e.resolver.ResolveAirport(ctx, raw.ArrivalCode, resolver.SearchByCodes)
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return airportNotFound(raw.SourceRef, raw.ArrivalCode), nil
	}

	out.Departure = dep
	out.Arrival = arr

	sched, err := schedule.Compute(dep.Timezone, arr.Timezone, raw.LocalDate, raw.Times)
	if err != nil {
		var chrono *schedule.ChronologyError
		if errors.As(err, &chrono) {
			// Surfaced verbatim, never silently corrected
			return &ResolutionError{
				Code:      constants.ErrCodeChronology,
				Message:   chrono.Error(),
				SourceRef: raw.SourceRef,
			}, nil
		}
		// Unparseable dates and times are data problems of this record
		return &ResolutionError{
			Code:      constants.ErrCodeMissingField,
			Field:     "times",
			Message:   err.Error(),
			SourceRef: raw.SourceRef,
		}, nil
	}
	out.Schedule = sched

	return nil, nil
}

// attachAircraft resolves aircraft type and airframe opportunistically.
func (e *ResolutionEngine) attachAircraft(ctx context.Context, raw *dtos.RawFlight, match *providers.FlightMatch, out *dtos.ResolvedFlight) error {
	typeCode := raw.AircraftCode
	if typeCode == "" && match != nil {
		typeCode = match.AircraftICAO
	}
	if typeCode != "" {
		types, err := e.resolver.ResolveAircraftTypes(ctx, typeCode)
		if err != nil {
			return err
		}
		out.AircraftType = e.resolver.DisambiguateAircraftType(types, raw.AircraftText)
	}

	if out.TailNumber != "" {
		airframes, err := e.resolver.ResolveAirframe(ctx, out.TailNumber)
		if err != nil {
			return err
		}
		if len(airframes) > 0 {
			out.Airframe = &airframes[0]
			if out.Airframe.AircraftTypeID != nil && out.AircraftType == nil {
				if t := out.Airframe.AircraftType; t != nil {
					out.AircraftType = t
				}
			}
		}
	}

	return nil
}
