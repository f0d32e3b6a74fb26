// Package schedule reconstructs UTC instants from local wall-clock strings
// at the departure and arrival airports, correcting for flights that cross
// midnight into the destination's next local day.
package schedule

import (
	"fmt"
	"time"
)

// Slot identifies one of the four timestamp pairs of a flight.
type Slot int

const (
	SlotGateOut Slot = iota // gate departure
	SlotTakeoff
	SlotLanding
	SlotGateIn // gate arrival
)

func (s Slot) String() string {
	switch s {
	case SlotGateOut:
		return "gate_out"
	case SlotTakeoff:
		return "takeoff"
	case SlotLanding:
		return "landing"
	case SlotGateIn:
		return "gate_in"
	}
	return "unknown"
}

// maxDaysAdded caps the day-rollover correction loop. A well-formed
// commercial flight never gains more than two calendar days on the local
// clock; needing more means the input chronology is broken.
const maxDaysAdded = 2

// SlotTimes holds the local "HH:MM" strings for one slot. Either or both
// may be empty; a flight with no actual data yet is valid.
type SlotTimes struct {
	Scheduled string `json:"scheduled,omitempty"`
	Actual    string `json:"actual,omitempty"`
}

// LocalTimes carries the local wall-clock strings for all four slots.
type LocalTimes struct {
	GateOut SlotTimes `json:"gateOut,omitempty"`
	Takeoff SlotTimes `json:"takeoff,omitempty"`
	Landing SlotTimes `json:"landing,omitempty"`
	GateIn  SlotTimes `json:"gateIn,omitempty"`
}

// Timestamps is the computed UTC pair for one slot, with the number of
// calendar days added during rollover correction (kept for display).
type Timestamps struct {
	Scheduled          *time.Time
	Actual             *time.Time
	DaysAddedScheduled int
	DaysAddedActual    int
}

// Schedule is the full computed result.
type Schedule struct {
	GateOut     Timestamps
	Takeoff     Timestamps
	Landing     Timestamps
	GateIn      Timestamps
	DurationMin int
}

// ChronologyError reports an arrival that still precedes its departure
// after day-rollover correction. It is never silently corrected.
type ChronologyError struct {
	Slot   Slot
	Detail string
}

func (e *ChronologyError) Error() string {
	return fmt.Sprintf("chronology error at %s: %s", e.Slot, e.Detail)
}

// Compute interprets each local time string in the relevant airport's IANA
// timezone on localDate ("2006-01-02"), converts to UTC, and applies
// day-rollover correction so the slot sequence gate-out <= takeoff <=
// landing <= gate-in is monotonic. The scheduled and actual chains are
// corrected independently. Duration is gate-in scheduled minus gate-out
// scheduled in whole minutes.
func Compute(departureTZ, arrivalTZ, localDate string, times LocalTimes) (*Schedule, error) {
	depLoc, err := time.LoadLocation(departureTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid departure timezone %q: %w", departureTZ, err)
	}
	arrLoc, err := time.LoadLocation(arrivalTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid arrival timezone %q: %w", arrivalTZ, err)
	}

	baseDate, err := time.Parse("2006-01-02", localDate)
	if err != nil {
		return nil, fmt.Errorf("invalid local date %q: %w", localDate, err)
	}

	// Gate-out and takeoff read the departure clock, landing and gate-in
	// the arrival clock.
	slots := []struct {
		slot  Slot
		times SlotTimes
		loc   *time.Location
	}{
		{SlotGateOut, times.GateOut, depLoc},
		{SlotTakeoff, times.Takeoff, depLoc},
		{SlotLanding, times.Landing, arrLoc},
		{SlotGateIn, times.GateIn, arrLoc},
	}

	sched := &Schedule{}
	out := []*Timestamps{&sched.GateOut, &sched.Takeoff, &sched.Landing, &sched.GateIn}

	var prevScheduled, prevActual *time.Time
	for i, s := range slots {
		if s.times.Scheduled != "" {
			ts, days, err := placeAfter(baseDate, s.times.Scheduled, s.loc, prevScheduled, s.slot)
			if err != nil {
				return nil, err
			}
			out[i].Scheduled = ts
			out[i].DaysAddedScheduled = days
			prevScheduled = ts
		}
		if s.times.Actual != "" {
			ts, days, err := placeAfter(baseDate, s.times.Actual, s.loc, prevActual, s.slot)
			if err != nil {
				return nil, err
			}
			out[i].Actual = ts
			out[i].DaysAddedActual = days
			prevActual = ts
		}
	}

	if sched.GateOut.Scheduled != nil && sched.GateIn.Scheduled != nil {
		dur := sched.GateIn.Scheduled.Sub(*sched.GateOut.Scheduled)
		if dur < 0 {
			return nil, &ChronologyError{
				Slot:   SlotGateIn,
				Detail: "computed arrival precedes departure",
			}
		}
		sched.DurationMin = int(dur.Minutes())
	}

	return sched, nil
}

// placeAfter resolves an "HH:MM" string to a UTC instant on or after prev,
// adding whole calendar days (in the slot's local zone) until monotonicity
// holds, up to maxDaysAdded.
func placeAfter(baseDate time.Time, hhmm string, loc *time.Location, prev *time.Time, slot Slot) (*time.Time, int, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid time %q for %s: %w", hhmm, slot, err)
	}

	local := time.Date(
		baseDate.Year(), baseDate.Month(), baseDate.Day(),
		clock.Hour(), clock.Minute(), 0, 0, loc,
	)

	days := 0
	for prev != nil && local.Before(*prev) {
		if days >= maxDaysAdded {
			return nil, 0, &ChronologyError{
				Slot:   slot,
				Detail: fmt.Sprintf("still before %s after adding %d days", prev.UTC().Format(time.RFC3339), days),
			}
		}
		local = local.AddDate(0, 0, 1)
		days++
	}

	utc := local.UTC()
	return &utc, days, nil
}
