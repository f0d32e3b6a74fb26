// Package ingest parses source-specific upload dialects into the common
// RawFlight intermediate shape. Normalizers skip rows lacking mandatory
// airport or date fields instead of failing the batch.
package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"

	"go.uber.org/zap"
)

// Upload dialects
const (
	DialectDiary      = "diary"
	DialectGeneric    = "generic"
	DialectRichExport = "rich-export"
)

// Normalizer turns a source-specific byte payload into RawFlight records.
type Normalizer interface {
	Dialect() string
	Normalize(data []byte) ([]dtos.RawFlight, error)
}

// ForDialect returns the normalizer for a declared upload dialect.
func ForDialect(dialect string, log *zap.SugaredLogger) (Normalizer, error) {
	switch dialect {
	case DialectDiary:
		return &DiaryNormalizer{log: log}, nil
	case DialectGeneric:
		return &GenericNormalizer{log: log}, nil
	case DialectRichExport:
		return &RichExportNormalizer{log: log}, nil
	default:
		return nil, fmt.Errorf("%s: %q", constants.GetErrorMessage(constants.ErrCodeUnknownDialect), dialect)
	}
}

var (
	parenPairRe = regexp.MustCompile(`\(([^/()]+)/([^/()]+)\)\s*$`)
	bracketRe   = regexp.MustCompile(`\[([A-Za-z0-9]{3,4})\]`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// ParseFlightNumber strips the carrier-code prefix and any other
// non-digit characters from a free-text flight number ("AA1234" -> 1234).
// Returns nil when no digits remain.
func ParseFlightNumber(text string) *int {
	match := digitsRe.FindString(text)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}

// secondParenSegment extracts the second code of a trailing parenthesized
// pair: "New York JFK (JFK/KJFK)" -> "KJFK". Malformed or missing
// annotations yield an empty string, never an error.
func secondParenSegment(cell string) string {
	m := parenPairRe.FindStringSubmatch(strings.TrimSpace(cell))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[2])
}

// bracketedCode extracts the bracketed 3-4 character type code from an
// aircraft cell: "Boeing 737-800 [B738]" -> "B738".
func bracketedCode(cell string) string {
	m := bracketRe.FindStringSubmatch(cell)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// headerIndex maps lower-cased, trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// cell safely reads a column from a row by header name.
func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
