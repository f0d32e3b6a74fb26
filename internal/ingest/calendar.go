package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	ics "github.com/arran4/golang-ical"
)

// CalendarCandidate is one flight-like event extracted from an iCalendar
// feed, carrying the typed parsed-field bag a pending flight stores.
type CalendarCandidate struct {
	UID    string
	Parsed entities.ParsedFlightData
}

var (
	designatorRe = regexp.MustCompile(`\b([A-Z]{2})\s?(\d{1,4})\b`)
	routeRe      = regexp.MustCompile(`\b([A-Z]{3,4})\s*(?:-|–|→|>| to )\s*([A-Z]{3,4})\b`)
)

// ParseCalendar extracts flight candidates from an iCalendar payload.
// Events without a recognizable route or flight designator are ignored;
// a calendar full of dentist appointments produces zero candidates, not
// an error.
func ParseCalendar(data []byte) ([]CalendarCandidate, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var candidates []CalendarCandidate
	for _, ev := range cal.Events() {
		summary := propValue(ev, ics.ComponentPropertySummary)
		description := propValue(ev, ics.ComponentPropertyDescription)
		text := summary + "\n" + description

		parsed := entities.ParsedFlightData{Summary: summary}

		if m := routeRe.FindStringSubmatch(text); m != nil {
			parsed.DepartureCode = m[1]
			parsed.ArrivalCode = m[2]
		}
		if m := designatorRe.FindStringSubmatch(text); m != nil {
			parsed.AirlineCode = m[1]
			parsed.FlightNumber = ParseFlightNumber(m[2])
		}

		// Nothing flight-shaped in this event
		if parsed.DepartureCode == "" && parsed.FlightNumber == nil {
			continue
		}

		if start, err := ev.GetStartAt(); err == nil && !start.IsZero() {
			parsed.LocalDate = start.Format("2006-01-02")
			parsed.OutTime = start.Format("15:04")
		}
		if end, err := ev.GetEndAt(); err == nil && !end.IsZero() {
			parsed.InTime = end.Format("15:04")
		}

		candidates = append(candidates, CalendarCandidate{
			UID:    propValue(ev, ics.ComponentPropertyUniqueId),
			Parsed: parsed,
		})
	}

	return candidates, nil
}

func propValue(ev *ics.VEvent, prop ics.ComponentProperty) string {
	p := ev.GetProperty(prop)
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Value)
}
