package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"

	"go.uber.org/zap"
)

// GenericNormalizer parses the generic tabular dialect, where columns map
// directly onto RawFlight fields by fixed header names. Both
// scheduled-only and scheduled+actual timestamp columns are supported.
type GenericNormalizer struct {
	log *zap.SugaredLogger
}

func (n *GenericNormalizer) Dialect() string { return DialectGeneric }

func (n *GenericNormalizer) Normalize(data []byte) ([]dtos.RawFlight, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	var flights []dtos.RawFlight

	for i, row := range rows[1:] {
		rowNum := i + 2

		date := cell(row, idx, "date")
		from := cell(row, idx, "from")
		to := cell(row, idx, "to")

		if date == "" || from == "" || to == "" {
			n.log.Warnw("Skipping row with missing mandatory fields",
				"row", rowNum, "date", date, "from", from, "to", to)
			continue
		}

		raw := dtos.RawFlight{
			SourceRef:     fmt.Sprintf("row:%d", rowNum),
			DepartureCode: from,
			ArrivalCode:   to,
			AirlineCode:   cell(row, idx, "airline"),
			FlightNumber:  ParseFlightNumber(cell(row, idx, "flight_number")),
			AircraftText:  cell(row, idx, "aircraft_type"),
			AircraftCode:  bracketedCode(cell(row, idx, "aircraft_type")),
			TailNumber:    cell(row, idx, "registration"),
			LocalDate:     date,
			Comments:      cell(row, idx, "comments"),
		}
		raw.Times.GateOut.Scheduled = cell(row, idx, "dep_time")
		raw.Times.GateOut.Actual = cell(row, idx, "dep_time_actual")
		raw.Times.Takeoff.Scheduled = cell(row, idx, "takeoff_time")
		raw.Times.Takeoff.Actual = cell(row, idx, "takeoff_time_actual")
		raw.Times.Landing.Scheduled = cell(row, idx, "landing_time")
		raw.Times.Landing.Actual = cell(row, idx, "landing_time_actual")
		raw.Times.GateIn.Scheduled = cell(row, idx, "arr_time")
		raw.Times.GateIn.Actual = cell(row, idx, "arr_time_actual")

		flights = append(flights, raw)
	}

	return flights, nil
}
