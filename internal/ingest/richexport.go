package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"

	"go.uber.org/zap"
)

// RichExportNormalizer parses the rich export dialect, where each
// timestamp column is a composite "YYYY-MM-DD HH:MM" cell covering all
// four gate/runway slots. Cancelled entries are filtered out before
// normalization, and a row without a scheduled gate departure is skipped
// with a logged warning rather than aborting the batch.
type RichExportNormalizer struct {
	log *zap.SugaredLogger
}

func (n *RichExportNormalizer) Dialect() string { return DialectRichExport }

func (n *RichExportNormalizer) Normalize(data []byte) ([]dtos.RawFlight, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rich export csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	var flights []dtos.RawFlight

	for i, row := range rows[1:] {
		rowNum := i + 2

		if strings.EqualFold(cell(row, idx, "canceled"), "true") {
			continue
		}

		from := cell(row, idx, "from")
		to := cell(row, idx, "to")
		if from == "" || to == "" {
			n.log.Warnw("Skipping rich export row with missing airports",
				"row", rowNum, "from", from, "to", to)
			continue
		}

		depDate, depTime := splitDateTime(cell(row, idx, "gate departure (scheduled)"))
		if depDate == "" || depTime == "" {
			n.log.Warnw("Skipping rich export row without scheduled departure time",
				"row", rowNum)
			continue
		}

		raw := dtos.RawFlight{
			SourceRef:     fmt.Sprintf("row:%d", rowNum),
			DepartureCode: from,
			ArrivalCode:   to,
			AirlineCode:   cell(row, idx, "airline"),
			FlightNumber:  ParseFlightNumber(cell(row, idx, "flight")),
			AircraftText:  cell(row, idx, "aircraft type name"),
			TailNumber:    cell(row, idx, "tail number"),
			LocalDate:     depDate,
			Comments:      cell(row, idx, "notes"),
		}
		raw.Times.GateOut.Scheduled = depTime
		_, raw.Times.GateOut.Actual = splitDateTime(cell(row, idx, "gate departure (actual)"))
		_, raw.Times.Takeoff.Scheduled = splitDateTime(cell(row, idx, "take off (scheduled)"))
		_, raw.Times.Takeoff.Actual = splitDateTime(cell(row, idx, "take off (actual)"))
		_, raw.Times.Landing.Scheduled = splitDateTime(cell(row, idx, "landing (scheduled)"))
		_, raw.Times.Landing.Actual = splitDateTime(cell(row, idx, "landing (actual)"))
		_, raw.Times.GateIn.Scheduled = splitDateTime(cell(row, idx, "gate arrival (scheduled)"))
		_, raw.Times.GateIn.Actual = splitDateTime(cell(row, idx, "gate arrival (actual)"))

		flights = append(flights, raw)
	}

	return flights, nil
}

// splitDateTime splits a composite "2024-01-01 08:05" cell into date and
// time components. Either half may come back empty on malformed input.
func splitDateTime(composite string) (date, clock string) {
	fields := strings.Fields(composite)
	if len(fields) < 2 {
		return "", ""
	}
	// Seconds are dropped when present ("08:05:00" -> "08:05")
	clock = fields[1]
	if parts := strings.Split(clock, ":"); len(parts) > 2 {
		clock = parts[0] + ":" + parts[1]
	}
	return fields[0], clock
}
