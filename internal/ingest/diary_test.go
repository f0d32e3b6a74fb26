package ingest

import (
	"testing"

	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

const diaryCSV = `Date,Flight number,From,To,Dep time,Arr time,Airline,Aircraft,Registration,Note
2024-03-05,AA1234,New York JFK (JFK/KJFK),Los Angeles (LAX/KLAX),09:00,12:15,American Airlines (AA/AAL),Boeing 737 MAX 8 [B38M],N123AB,vacation
2024-03-06,,Paris CDG (CDG/LFPG),London Heathrow (LHR/EGLL),08:30,08:50,,,,
,DL10,Atlanta (ATL/KATL),Boston (BOS/KBOS),10:00,12:00,,,,
2024-03-08,UA5,no codes here,San Francisco (SFO/KSFO),11:00,13:00,,,,
`

func TestDiaryNormalize(t *testing.T) {
	n := &DiaryNormalizer{log: testLogger()}

	flights, err := n.Normalize([]byte(diaryCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Rows 4 (no date) and 5 (no departure code) are skipped
	if len(flights) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(flights))
	}

	f := flights[0]
	if f.DepartureCode != "KJFK" || f.ArrivalCode != "KLAX" {
		t.Errorf("airports = %s/%s, want KJFK/KLAX", f.DepartureCode, f.ArrivalCode)
	}
	if f.AirlineCode != "AAL" {
		t.Errorf("airline = %s, want AAL", f.AirlineCode)
	}
	if f.FlightNumber == nil || *f.FlightNumber != 1234 {
		t.Errorf("flight number = %v, want 1234", f.FlightNumber)
	}
	if f.AircraftCode != "B38M" {
		t.Errorf("aircraft code = %s, want B38M", f.AircraftCode)
	}
	if f.AircraftText != "Boeing 737 MAX 8 [B38M]" {
		t.Errorf("aircraft text = %q", f.AircraftText)
	}
	if f.TailNumber != "N123AB" {
		t.Errorf("tail = %s, want N123AB", f.TailNumber)
	}
	if f.LocalDate != "2024-03-05" {
		t.Errorf("date = %s", f.LocalDate)
	}
	if f.Times.GateOut.Scheduled != "09:00" || f.Times.GateIn.Scheduled != "12:15" {
		t.Errorf("times = %s/%s", f.Times.GateOut.Scheduled, f.Times.GateIn.Scheduled)
	}
	if f.Comments != "vacation" {
		t.Errorf("comments = %q", f.Comments)
	}
	if f.SourceRef != "row:2" {
		t.Errorf("source ref = %s, want row:2", f.SourceRef)
	}

	// A row without a flight number stays importable
	if flights[1].FlightNumber != nil {
		t.Errorf("flight number should be nil, got %v", *flights[1].FlightNumber)
	}
	if flights[1].SourceRef != "row:3" {
		t.Errorf("source ref = %s, want row:3", flights[1].SourceRef)
	}
}

func TestDiaryNormalizeEmpty(t *testing.T) {
	n := &DiaryNormalizer{log: testLogger()}

	flights, err := n.Normalize([]byte("Date,From,To\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("header-only upload should yield no flights, got %d", len(flights))
	}
}

func TestParseFlightNumber(t *testing.T) {
	cases := []struct {
		in   string
		want *int
	}{
		{"AA1234", intp(1234)},
		{"1234", intp(1234)},
		{"DL 5", intp(5)},
		{"", nil},
		{"CHARTER", nil},
	}
	for _, c := range cases {
		got := ParseFlightNumber(c.in)
		switch {
		case c.want == nil && got != nil:
			t.Errorf("ParseFlightNumber(%q) = %d, want nil", c.in, *got)
		case c.want != nil && (got == nil || *got != *c.want):
			t.Errorf("ParseFlightNumber(%q) = %v, want %d", c.in, got, *c.want)
		}
	}
}

func TestSecondParenSegment(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"New York JFK (JFK/KJFK)", "KJFK"},
		{"Los Angeles (LAX/KLAX)  ", "KLAX"},
		{"no annotation", ""},
		{"broken (JFK)", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := secondParenSegment(c.in); got != c.want {
			t.Errorf("secondParenSegment(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBracketedCode(t *testing.T) {
	if got := bracketedCode("Boeing 737 MAX 8 [B38M]"); got != "B38M" {
		t.Errorf("bracketedCode = %q, want B38M", got)
	}
	if got := bracketedCode("Cessna 172"); got != "" {
		t.Errorf("bracketedCode = %q, want empty", got)
	}
}

func TestForDialect(t *testing.T) {
	for _, d := range []string{DialectDiary, DialectGeneric, DialectRichExport} {
		n, err := ForDialect(d, testLogger())
		if err != nil {
			t.Fatalf("ForDialect(%q) failed: %v", d, err)
		}
		if n.Dialect() != d {
			t.Errorf("Dialect() = %s, want %s", n.Dialect(), d)
		}
	}

	if _, err := ForDialect("spreadsheet", testLogger()); err == nil {
		t.Error("unknown dialect should fail")
	}
}

func intp(n int) *int { return &n }
