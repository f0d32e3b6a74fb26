package ingest

import "testing"

const genericCSV = `date,flight_number,airline,from,to,dep_time,dep_time_actual,takeoff_time,landing_time,arr_time,arr_time_actual,aircraft_type,registration,comments
2024-03-05,1234,AA,KJFK,KLAX,09:00,09:12,09:25,11:50,12:15,12:20,Boeing 737 MAX 8,N123AB,window seat
2024-03-06,,,LFPG,,08:30,,,,09:00,,,,
`

func TestGenericNormalize(t *testing.T) {
	n := &GenericNormalizer{log: testLogger()}

	flights, err := n.Normalize([]byte(genericCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second row lacks an arrival airport
	if len(flights) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(flights))
	}

	f := flights[0]
	if f.DepartureCode != "KJFK" || f.ArrivalCode != "KLAX" {
		t.Errorf("airports = %s/%s", f.DepartureCode, f.ArrivalCode)
	}
	if f.AirlineCode != "AA" {
		t.Errorf("airline = %s, want AA", f.AirlineCode)
	}
	if f.FlightNumber == nil || *f.FlightNumber != 1234 {
		t.Errorf("flight number = %v, want 1234", f.FlightNumber)
	}
	if f.Times.GateOut.Scheduled != "09:00" || f.Times.GateOut.Actual != "09:12" {
		t.Errorf("gate out = %s/%s", f.Times.GateOut.Scheduled, f.Times.GateOut.Actual)
	}
	if f.Times.Takeoff.Scheduled != "09:25" {
		t.Errorf("takeoff = %s", f.Times.Takeoff.Scheduled)
	}
	if f.Times.Landing.Scheduled != "11:50" {
		t.Errorf("landing = %s", f.Times.Landing.Scheduled)
	}
	if f.Times.GateIn.Scheduled != "12:15" || f.Times.GateIn.Actual != "12:20" {
		t.Errorf("gate in = %s/%s", f.Times.GateIn.Scheduled, f.Times.GateIn.Actual)
	}
	if f.AircraftText != "Boeing 737 MAX 8" {
		t.Errorf("aircraft text = %q", f.AircraftText)
	}
	if f.Comments != "window seat" {
		t.Errorf("comments = %q", f.Comments)
	}
}

func TestGenericNormalizeMalformedCSV(t *testing.T) {
	n := &GenericNormalizer{log: testLogger()}

	if _, err := n.Normalize([]byte("date,from\n\"unterminated")); err == nil {
		t.Error("malformed csv should fail")
	}
}
