package schedule

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestComputeSameDayFlight(t *testing.T) {
	times := LocalTimes{
		GateOut: SlotTimes{Scheduled: "09:00"},
		GateIn:  SlotTimes{Scheduled: "12:15"},
	}

	sched, err := Compute("America/New_York", "America/Chicago", "2024-03-05", times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 09:00 EST = 14:00 UTC
	wantOut := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	if !sched.GateOut.Scheduled.Equal(wantOut) {
		t.Errorf("gate out = %v, want %v", sched.GateOut.Scheduled, wantOut)
	}
	// 12:15 CST = 18:15 UTC
	wantIn := time.Date(2024, 3, 5, 18, 15, 0, 0, time.UTC)
	if !sched.GateIn.Scheduled.Equal(wantIn) {
		t.Errorf("gate in = %v, want %v", sched.GateIn.Scheduled, wantIn)
	}

	if sched.GateIn.DaysAddedScheduled != 0 {
		t.Errorf("days added = %d, want 0", sched.GateIn.DaysAddedScheduled)
	}
	if sched.DurationMin != 255 {
		t.Errorf("duration = %d, want 255", sched.DurationMin)
	}
}

func TestComputeMidnightRollover(t *testing.T) {
	// Departs 23:30 local, arrives 01:15 the next local day. The arrival
	// string names an earlier wall-clock time, so one day is added.
	times := LocalTimes{
		GateOut: SlotTimes{Scheduled: "23:30"},
		GateIn:  SlotTimes{Scheduled: "01:15"},
	}

	sched, err := Compute("America/New_York", "America/New_York", "2024-03-05", times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sched.GateIn.DaysAddedScheduled != 1 {
		t.Errorf("days added = %d, want 1", sched.GateIn.DaysAddedScheduled)
	}
	if sched.DurationMin != 105 {
		t.Errorf("duration = %d, want 105", sched.DurationMin)
	}
	if !sched.GateIn.Scheduled.After(*sched.GateOut.Scheduled) {
		t.Error("gate in should be after gate out")
	}
}

func TestComputeEastwardDateLine(t *testing.T) {
	// Tokyo 17:00 to Los Angeles 10:30 the same local date: the zone
	// offsets alone keep the sequence monotonic, no day is added.
	times := LocalTimes{
		GateOut: SlotTimes{Scheduled: "17:00"},
		GateIn:  SlotTimes{Scheduled: "10:30"},
	}

	sched, err := Compute("Asia/Tokyo", "America/Los_Angeles", "2024-03-05", times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sched.GateIn.DaysAddedScheduled != 0 {
		t.Errorf("days added = %d, want 0", sched.GateIn.DaysAddedScheduled)
	}
	if sched.DurationMin != 630 {
		t.Errorf("duration = %d, want 630", sched.DurationMin)
	}
}

func TestComputeFourSlotChain(t *testing.T) {
	times := LocalTimes{
		GateOut: SlotTimes{Scheduled: "22:00", Actual: "22:10"},
		Takeoff: SlotTimes{Scheduled: "22:20"},
		Landing: SlotTimes{Scheduled: "05:40"},
		GateIn:  SlotTimes{Scheduled: "05:55"},
	}

	sched, err := Compute("America/New_York", "Europe/London", "2024-03-05", times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// London is ahead of New York; 05:40 local next day in London
	if sched.Landing.DaysAddedScheduled != 1 {
		t.Errorf("landing days added = %d, want 1", sched.Landing.DaysAddedScheduled)
	}
	for i, ts := range []*time.Time{
		sched.GateOut.Scheduled, sched.Takeoff.Scheduled,
		sched.Landing.Scheduled, sched.GateIn.Scheduled,
	} {
		if ts == nil {
			t.Fatalf("slot %d missing", i)
		}
	}
	if sched.Takeoff.Scheduled.Before(*sched.GateOut.Scheduled) {
		t.Error("takeoff precedes gate out")
	}
	if sched.GateIn.Scheduled.Before(*sched.Landing.Scheduled) {
		t.Error("gate in precedes landing")
	}

	// The actual chain is corrected independently of the scheduled one
	if sched.GateOut.Actual == nil {
		t.Fatal("gate out actual missing")
	}
	if sched.GateOut.DaysAddedActual != 0 {
		t.Errorf("actual days added = %d, want 0", sched.GateOut.DaysAddedActual)
	}
}

func TestComputeRolloverJustUnderFullDay(t *testing.T) {
	// Arrival one minute before the departure wall-clock time: a single
	// added day explains it, yielding a near-24h flight rather than an
	// error.
	times := LocalTimes{
		GateOut: SlotTimes{Scheduled: "10:00"},
		GateIn:  SlotTimes{Scheduled: "09:59"},
	}

	sched, err := Compute("America/New_York", "America/New_York", "2024-03-05", times)
	if err != nil {
		t.Fatalf("single rollover should succeed: %v", err)
	}
	if sched.GateIn.DaysAddedScheduled != 1 {
		t.Errorf("days added = %d, want 1", sched.GateIn.DaysAddedScheduled)
	}
	if sched.DurationMin != 1439 {
		t.Errorf("duration = %d, want 1439", sched.DurationMin)
	}
}

func TestComputeChronologyErrorSurfaced(t *testing.T) {
	// Landing keeps falling before the takeoff instant even after the
	// maximum correction: three backward slots each needing a day.
	times := LocalTimes{
		GateOut: SlotTimes{
			Scheduled: "23:00",
		},
		Takeoff: SlotTimes{
			Scheduled: "22:00",
		},
		Landing: SlotTimes{
			Scheduled: "21:00",
		},
		GateIn: SlotTimes{
			Scheduled: "20:00",
		},
	}

	// Each slot adds one day; the cap of two is hit at gate in.
	_, err := Compute("UTC", "UTC", "2024-03-05", times)
	var chrono *ChronologyError
	if !errors.As(err, &chrono) {
		t.Fatalf("want ChronologyError, got %v", err)
	}
	if chrono.Slot != SlotGateIn {
		t.Errorf("error slot = %s, want %s", chrono.Slot, SlotGateIn)
	}
}

func TestComputeInvalidInputs(t *testing.T) {
	times := LocalTimes{GateOut: SlotTimes{Scheduled: "09:00"}}

	if _, err := Compute("Not/AZone", "UTC", "2024-03-05", times); err == nil {
		t.Error("invalid departure zone should fail")
	}
	if _, err := Compute("UTC", "UTC", "05-03-2024", times); err == nil {
		t.Error("invalid date format should fail")
	}
	if _, err := Compute("UTC", "UTC", "2024-03-05", LocalTimes{GateOut: SlotTimes{Scheduled: "9am"}}); err == nil {
		t.Error("invalid time format should fail")
	}
}

func TestComputeEmptySlotsStayNil(t *testing.T) {
	times := LocalTimes{
		GateOut: SlotTimes{Scheduled: "09:00"},
		GateIn:  SlotTimes{Scheduled: "11:00"},
	}

	sched, err := Compute("UTC", "UTC", "2024-03-05", times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sched.Takeoff.Scheduled != nil || sched.Landing.Scheduled != nil {
		t.Error("absent slots must stay nil")
	}
	if sched.GateOut.Actual != nil {
		t.Error("absent actuals must stay nil")
	}
}
