package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"

	"go.uber.org/zap"
)

// DiaryNormalizer parses the flight-diary export dialect. Codes are
// embedded in parenthesized annotations within free-text cells: the
// airport and airline cells end in "(IATA/ICAO)" pairs and the ICAO half
// is kept; the aircraft cell carries its type code in square brackets.
type DiaryNormalizer struct {
	log *zap.SugaredLogger
}

func (n *DiaryNormalizer) Dialect() string { return DialectDiary }

func (n *DiaryNormalizer) Normalize(data []byte) ([]dtos.RawFlight, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse diary csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	var flights []dtos.RawFlight

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		date := cell(row, idx, "date")
		from := secondParenSegment(cell(row, idx, "from"))
		to := secondParenSegment(cell(row, idx, "to"))

		// Mandatory airport or date fields missing: skip, don't fail
		if date == "" || from == "" || to == "" {
			n.log.Warnw("Skipping diary row with missing mandatory fields",
				"row", rowNum, "date", date, "from", from, "to", to)
			continue
		}

		raw := dtos.RawFlight{
			SourceRef:     fmt.Sprintf("row:%d", rowNum),
			DepartureCode: from,
			ArrivalCode:   to,
			AirlineCode:   secondParenSegment(cell(row, idx, "airline")),
			FlightNumber:  ParseFlightNumber(cell(row, idx, "flight number")),
			AircraftText:  cell(row, idx, "aircraft"),
			AircraftCode:  bracketedCode(cell(row, idx, "aircraft")),
			TailNumber:    cell(row, idx, "registration"),
			LocalDate:     date,
			Comments:      cell(row, idx, "note"),
		}
		raw.Times.GateOut.Scheduled = cell(row, idx, "dep time")
		raw.Times.GateIn.Scheduled = cell(row, idx, "arr time")

		flights = append(flights, raw)
	}

	return flights, nil
}
