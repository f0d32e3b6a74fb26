package repositories

import (
	"context"
	"strings"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// ReferenceRepository handles read-only lookups against the reference
// tables (airports, airlines, aircraft types, airframes). Single-record
// lookups go through GORM; the set lookups used by bulk ingestion go
// through sqlx so one IN-query covers a whole upload.
type ReferenceRepository struct {
	db   *gorm.DB
	sqlx *sqlx.DB
}

// NewReferenceRepository creates a new reference repository. The sqlx
// handle may be nil (sqlite test databases); set lookups then fall back to
// GORM.
func NewReferenceRepository(db *gorm.DB, sx *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db, sqlx: sx}
}

// FindAirportByID finds an airport by its internal id
func (r *ReferenceRepository) FindAirportByID(ctx context.Context, id string) (*entities.Airport, error) {
	var airport entities.Airport

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&airport).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// FindAirportByCode finds an airport by ICAO or IATA code (case-insensitive)
func (r *ReferenceRepository) FindAirportByCode(ctx context.Context, code string) (*entities.Airport, error) {
	var airport entities.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(icao) = UPPER(?) OR UPPER(iata) = UPPER(?)", code, code).
		First(&airport).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// FindAirportsByCodes fetches every airport whose ICAO or IATA code is in
// the set. One query per set, not per record.
func (r *ReferenceRepository) FindAirportsByCodes(ctx context.Context, codes []string) ([]entities.Airport, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	upper := upperSet(codes)

	if r.sqlx == nil {
		var airports []entities.Airport
		err := r.db.WithContext(ctx).
			Where("UPPER(icao) IN ? OR UPPER(iata) IN ?", upper, upper).
			Find(&airports).Error
		return airports, err
	}

	query, args, err := sqlx.In(constants.FindAirportsByICAOSet, upper)
	if err != nil {
		return nil, err
	}
	var byICAO []entities.Airport
	if err := r.sqlx.SelectContext(ctx, &byICAO, r.sqlx.Rebind(query), args...); err != nil {
		return nil, err
	}

	query, args, err = sqlx.In(constants.FindAirportsByIATASet, upper)
	if err != nil {
		return nil, err
	}
	var byIATA []entities.Airport
	if err := r.sqlx.SelectContext(ctx, &byIATA, r.sqlx.Rebind(query), args...); err != nil {
		return nil, err
	}

	return mergeAirports(byICAO, byIATA), nil
}

// FindAirlineByID finds an airline by its internal id
func (r *ReferenceRepository) FindAirlineByID(ctx context.Context, id string) (*entities.Airline, error) {
	var airline entities.Airline

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&airline).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airline, nil
}

// FindAirlineByCode finds an airline by ICAO or IATA code (case-insensitive)
func (r *ReferenceRepository) FindAirlineByCode(ctx context.Context, code string) (*entities.Airline, error) {
	var airline entities.Airline

	err := r.db.WithContext(ctx).
		Where("UPPER(icao) = UPPER(?) OR UPPER(iata) = UPPER(?)", code, code).
		First(&airline).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airline, nil
}

// FindAirlinesByCodes fetches every airline matching a code in the set
func (r *ReferenceRepository) FindAirlinesByCodes(ctx context.Context, codes []string) ([]entities.Airline, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	upper := upperSet(codes)

	if r.sqlx == nil {
		var airlines []entities.Airline
		err := r.db.WithContext(ctx).
			Where("UPPER(icao) IN ? OR UPPER(iata) IN ?", upper, upper).
			Find(&airlines).Error
		return airlines, err
	}

	query, args, err := sqlx.In(constants.FindAirlinesByCodeSet, upper, upper)
	if err != nil {
		return nil, err
	}
	var airlines []entities.Airline
	if err := r.sqlx.SelectContext(ctx, &airlines, r.sqlx.Rebind(query), args...); err != nil {
		return nil, err
	}
	return airlines, nil
}

// FindAircraftTypesByICAO returns every aircraft type sharing the ICAO
// code. Collisions are expected; the resolver disambiguates by name.
func (r *ReferenceRepository) FindAircraftTypesByICAO(ctx context.Context, icao string) ([]entities.AircraftType, error) {
	var types []entities.AircraftType

	err := r.db.WithContext(ctx).
		Where("UPPER(icao) = UPPER(?)", icao).
		Order("created_at").
		Find(&types).Error

	return types, err
}

// FindAirframesByPrefix returns airframes whose registration starts with
// the first character of the fragment. The resolver narrows the candidates
// with subsequence matching in memory.
func (r *ReferenceRepository) FindAirframesByPrefix(ctx context.Context, firstChar string) ([]entities.Airframe, error) {
	var airframes []entities.Airframe

	err := r.db.WithContext(ctx).
		Preload("AircraftType").
		Where("UPPER(registration) LIKE UPPER(?)", firstChar+"%").
		Find(&airframes).Error

	return airframes, err
}

func upperSet(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		u := strings.ToUpper(strings.TrimSpace(c))
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func mergeAirports(a, b []entities.Airport) []entities.Airport {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]entities.Airport, 0, len(a)+len(b))
	for _, list := range [][]entities.Airport{a, b} {
		for _, ap := range list {
			if _, dup := seen[ap.ID]; dup {
				continue
			}
			seen[ap.ID] = struct{}{}
			out = append(out, ap)
		}
	}
	return out
}
