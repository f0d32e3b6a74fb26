// Package resolver maps raw identifiers (airport and airline codes,
// aircraft type codes, tail-number fragments) to canonical reference
// entities. All lookups are read-only; unresolved is a valid outcome,
// not an error.
package resolver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db/repositories"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	"golang.org/x/sync/singleflight"
)

// SearchMode selects which columns an airport/airline lookup keys on.
// Ingestion sources key differently (internal ids vs IATA/ICAO pairs), so
// the mode is explicit rather than inferred from the input shape.
type SearchMode int

const (
	SearchByID SearchMode = iota
	SearchByCodes
)

// Reference data is immutable, so cache entries only expire to bound memory
const refCacheTTL = 6 * time.Hour

// Resolver resolves raw identifiers against the reference store, with an
// in-process cache in front and singleflight collapsing concurrent
// identical lookups.
type Resolver struct {
	refs  *repositories.ReferenceRepository
	cache common.CacheInterface
	group singleflight.Group

	// Match disambiguates aircraft-type ICAO collisions by free-text name
	Match MatchStrategy
}

// NewResolver creates a new reference resolver
func NewResolver(refs *repositories.ReferenceRepository, cache common.CacheInterface) *Resolver {
	return &Resolver{
		refs:  refs,
		cache: cache,
		Match: LevenshteinStrategy{},
	}
}

// ResolveAirport resolves an airport identifier. Returns (nil, nil) when
// unresolved.
func (r *Resolver) ResolveAirport(ctx context.Context, code string, mode SearchMode) (*entities.Airport, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	key := airportCacheKey(code, mode)
	if val, found := r.cache.Get(key); found {
		return val.(*entities.Airport), nil
	}

	val, err, _ := r.group.Do(key, func() (interface{}, error) {
		if mode == SearchByID {
			return r.refs.FindAirportByID(ctx, code)
		}
		return r.refs.FindAirportByCode(ctx, code)
	})
	if err != nil {
		return nil, err
	}

	airport := val.(*entities.Airport)
	if airport != nil {
		r.cache.Set(key, airport, refCacheTTL)
	}
	return airport, nil
}

// ResolveAirline resolves an airline identifier. Returns (nil, nil) when
// unresolved.
func (r *Resolver) ResolveAirline(ctx context.Context, code string, mode SearchMode) (*entities.Airline, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	key := airlineCacheKey(code, mode)
	if val, found := r.cache.Get(key); found {
		return val.(*entities.Airline), nil
	}

	val, err, _ := r.group.Do(key, func() (interface{}, error) {
		if mode == SearchByID {
			return r.refs.FindAirlineByID(ctx, code)
		}
		return r.refs.FindAirlineByCode(ctx, code)
	})
	if err != nil {
		return nil, err
	}

	airline := val.(*entities.Airline)
	if airline != nil {
		r.cache.Set(key, airline, refCacheTTL)
	}
	return airline, nil
}

// ResolveAircraftTypes returns every aircraft type sharing the ICAO code.
// An empty set is a valid outcome; the caller disambiguates multi-matches
// with DisambiguateAircraftType.
func (r *Resolver) ResolveAircraftTypes(ctx context.Context, icao string) ([]entities.AircraftType, error) {
	icao = strings.TrimSpace(icao)
	if icao == "" {
		return nil, nil
	}
	return r.refs.FindAircraftTypesByICAO(ctx, icao)
}

// DisambiguateAircraftType picks one type out of an ICAO-collision set
// using the free-text name hint. With no hint (or a single candidate) the
// first-encountered type wins.
func (r *Resolver) DisambiguateAircraftType(types []entities.AircraftType, hint string) *entities.AircraftType {
	if len(types) == 0 {
		return nil
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	idx := r.Match.BestMatch(names, hint)
	if idx < 0 {
		idx = 0
	}
	return &types[idx]
}

// ResolveAirframe resolves a possibly partial registration fragment to
// candidate airframes, ranked best-first. The fragment matches a candidate
// when its characters appear in order as a subsequence of the candidate's
// registration, which models OCR and partial-entry fragments with missing
// characters. No match is a valid outcome.
func (r *Resolver) ResolveAirframe(ctx context.Context, partialRegistration string) ([]entities.Airframe, error) {
	frag := strings.ToUpper(strings.TrimSpace(partialRegistration))
	if frag == "" {
		return nil, nil
	}

	// Registrations keep their leading character (country prefix), so the
	// candidate pool is narrowed in SQL before subsequence filtering.
	candidates, err := r.refs.FindAirframesByPrefix(ctx, frag[:1])
	if err != nil {
		return nil, err
	}

	var matches []entities.Airframe
	for _, af := range candidates {
		if isSubsequence(frag, strings.ToUpper(af.Registration)) {
			matches = append(matches, af)
		}
	}

	// Fewest unexplained characters first; ties keep query order
	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].Registration) < len(matches[j].Registration)
	})

	return matches, nil
}

// PreloadCodes warms the cache for a whole upload's identifier sets with
// one batched query per set instead of one query per record.
func (r *Resolver) PreloadCodes(ctx context.Context, airportCodes, airlineCodes []string) error {
	airports, err := r.refs.FindAirportsByCodes(ctx, airportCodes)
	if err != nil {
		return err
	}
	for i := range airports {
		ap := &airports[i]
		if ap.ICAO != "" {
			r.cache.Set(airportCacheKey(ap.ICAO, SearchByCodes), ap, refCacheTTL)
		}
		if ap.IATA != "" {
			r.cache.Set(airportCacheKey(ap.IATA, SearchByCodes), ap, refCacheTTL)
		}
	}

	airlines, err := r.refs.FindAirlinesByCodes(ctx, airlineCodes)
	if err != nil {
		return err
	}
	for i := range airlines {
		al := &airlines[i]
		if al.ICAO != "" {
			r.cache.Set(airlineCacheKey(al.ICAO, SearchByCodes), al, refCacheTTL)
		}
		if al.IATA != "" {
			r.cache.Set(airlineCacheKey(al.IATA, SearchByCodes), al, refCacheTTL)
		}
	}

	return nil
}

// isSubsequence reports whether frag's characters appear in order
// (not necessarily contiguously) within reg.
func isSubsequence(frag, reg string) bool {
	i := 0
	for j := 0; i < len(frag) && j < len(reg); j++ {
		if frag[i] == reg[j] {
			i++
		}
	}
	return i == len(frag)
}

func airportCacheKey(code string, mode SearchMode) string {
	return fmt.Sprintf("airport:%d:%s", mode, strings.ToUpper(code))
}

func airlineCacheKey(code string, mode SearchMode) string {
	return fmt.Sprintf("airline:%d:%s", mode, strings.ToUpper(code))
}
