package pending

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db/repositories"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/engine"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/providers"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/resolver"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db      *gorm.DB
	svc     *Service
	flights *repositories.FlightRepository
	pending *repositories.PendingFlightRepository
	userID  string
	srcID   string
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&entities.Airport{},
		&entities.Airline{},
		&entities.AircraftType{},
		&entities.Airframe{},
		&entities.Flight{},
		&entities.CalendarSource{},
		&entities.PendingFlight{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	refRows := []interface{}{
		&entities.Airport{ID: uuid.NewString(), ICAO: "KJFK", IATA: "JFK", Name: "JFK", Timezone: "America/New_York"},
		&entities.Airport{ID: uuid.NewString(), ICAO: "KLAX", IATA: "LAX", Name: "LAX", Timezone: "America/Los_Angeles"},
		&entities.Airline{ID: uuid.NewString(), IATA: "AA", ICAO: "AAL", Name: "American Airlines"},
	}
	for _, row := range refRows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}

	userID := uuid.NewString()
	src := entities.CalendarSource{
		UserID:  userID,
		URL:     "https://calendar.example.com/feed.ics",
		Enabled: true,
	}
	if err := db.Create(&src).Error; err != nil {
		t.Fatalf("failed to seed source: %v", err)
	}

	refs := repositories.NewReferenceRepository(db, nil)
	res := resolver.NewResolver(refs, common.NewCacheService(60, 600))
	chain := providers.NewLookupChain(nil, time.Second, zap.NewNop().Sugar(), nil)
	eng := engine.NewResolutionEngine(res, chain)

	flights := repositories.NewFlightRepository(db)
	pendingRepo := repositories.NewPendingFlightRepository(db)

	svc := NewService(db, pendingRepo, flights, eng, nil, zap.NewNop().Sugar(), nil)

	return &fixture{
		db:      db,
		svc:     svc,
		flights: flights,
		pending: pendingRepo,
		userID:  userID,
		srcID:   src.ID,
	}
}

func (f *fixture) seedPending(t *testing.T, status string, data entities.ParsedFlightData) *entities.PendingFlight {
	t.Helper()

	pf := &entities.PendingFlight{
		CalendarSourceID: f.srcID,
		EventUID:         uuid.NewString(),
		Status:           status,
		ParsedData:       data,
		ExpiresAt:        time.Now().UTC().AddDate(0, 0, entities.PendingExpiryDays),
	}
	if err := f.db.Create(pf).Error; err != nil {
		t.Fatalf("failed to seed pending flight: %v", err)
	}
	return pf
}

func completeParsed() entities.ParsedFlightData {
	n := 1234
	return entities.ParsedFlightData{
		DepartureCode: "KJFK",
		ArrivalCode:   "KLAX",
		AirlineCode:   "AA",
		FlightNumber:  &n,
		LocalDate:     "2024-03-05",
		OutTime:       "09:00",
		InTime:        "12:15",
		Summary:       "Flight AA 1234 JFK - LAX",
	}
}

func TestApproveCreatesFlight(t *testing.T) {
	f := setup(t)
	pf := f.seedPending(t, entities.PendingStatusPending, completeParsed())

	flight, err := f.svc.Approve(context.Background(), f.userID, pf.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flight.ID == "" {
		t.Error("flight id missing")
	}
	if flight.DurationMin != 375 {
		t.Errorf("duration = %d, want 375", flight.DurationMin)
	}

	var updated entities.PendingFlight
	if err := f.db.First(&updated, "id = ?", pf.ID).Error; err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if updated.Status != entities.PendingStatusApproved {
		t.Errorf("status = %s, want APPROVED", updated.Status)
	}

	count, _ := f.flights.CountByUser(context.Background(), f.userID)
	if count != 1 {
		t.Errorf("persisted %d flights, want 1", count)
	}
}

func TestApproveWithOverrides(t *testing.T) {
	f := setup(t)
	parsed := completeParsed()
	parsed.ArrivalCode = "ZZZZ" // parsed value is wrong, the override fixes it
	pf := f.seedPending(t, entities.PendingStatusPending, parsed)

	flight, err := f.svc.Approve(context.Background(), f.userID, pf.ID, &dtos.FlightOverrides{
		ArrivalCode: "KLAX",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flight.ArrivalAirportID == "" {
		t.Error("arrival reference missing")
	}
}

func TestApproveNotPendingFails(t *testing.T) {
	f := setup(t)
	pf := f.seedPending(t, entities.PendingStatusApproved, completeParsed())

	_, err := f.svc.Approve(context.Background(), f.userID, pf.ID, nil)
	le, ok := err.(*LifecycleError)
	if !ok {
		t.Fatalf("want LifecycleError, got %v", err)
	}
	if le.Code != constants.ErrCodeInvalidState {
		t.Errorf("code = %s, want %s", le.Code, constants.ErrCodeInvalidState)
	}
}

func TestApproveUnknownIDFails(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Approve(context.Background(), f.userID, uuid.NewString(), nil)
	le, ok := err.(*LifecycleError)
	if !ok {
		t.Fatalf("want LifecycleError, got %v", err)
	}
	if le.Code != constants.ErrCodeNotFound {
		t.Errorf("code = %s, want %s", le.Code, constants.ErrCodeNotFound)
	}
}

func TestApproveOtherUsersItemIsNotFound(t *testing.T) {
	f := setup(t)
	pf := f.seedPending(t, entities.PendingStatusPending, completeParsed())

	_, err := f.svc.Approve(context.Background(), uuid.NewString(), pf.ID, nil)
	le, ok := err.(*LifecycleError)
	if !ok || le.Code != constants.ErrCodeNotFound {
		t.Fatalf("foreign item must be NotFound, got %v", err)
	}
}

func TestApproveResolutionFailureLeavesPending(t *testing.T) {
	f := setup(t)
	parsed := completeParsed()
	parsed.FlightNumber = nil
	pf := f.seedPending(t, entities.PendingStatusPending, parsed)

	_, err := f.svc.Approve(context.Background(), f.userID, pf.ID, nil)
	resErr, ok := err.(*engine.ResolutionError)
	if !ok {
		t.Fatalf("want ResolutionError, got %v", err)
	}
	if resErr.Code != constants.ErrCodeMissingField {
		t.Errorf("code = %s", resErr.Code)
	}

	// The candidate stays PENDING so the user can fix and retry
	var updated entities.PendingFlight
	if err := f.db.First(&updated, "id = ?", pf.ID).Error; err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if updated.Status != entities.PendingStatusPending {
		t.Errorf("status = %s, want PENDING", updated.Status)
	}

	count, _ := f.flights.CountByUser(context.Background(), f.userID)
	if count != 0 {
		t.Errorf("no flight should persist, got %d", count)
	}
}

func TestBulkApproveCollectsOutcomes(t *testing.T) {
	f := setup(t)
	good1 := f.seedPending(t, entities.PendingStatusPending, completeParsed())
	broken := completeParsed()
	broken.LocalDate = ""
	bad := f.seedPending(t, entities.PendingStatusPending, broken)
	good2 := f.seedPending(t, entities.PendingStatusPending, completeParsed())

	result := f.svc.BulkApprove(context.Background(), f.userID, []string{good1.ID, bad.ID, good2.ID})

	if result.Created != 2 || result.Failed != 1 {
		t.Fatalf("created/failed = %d/%d, want 2/1", result.Created, result.Failed)
	}
	if result.Outcomes[0].Success != true || result.Outcomes[2].Success != true {
		t.Error("good items should succeed")
	}
	if result.Outcomes[1].Success {
		t.Error("broken item should fail")
	}
	if result.Outcomes[1].ErrorCode != constants.ErrCodeMissingField {
		t.Errorf("error code = %s", result.Outcomes[1].ErrorCode)
	}
}

func TestRejectAndRestore(t *testing.T) {
	f := setup(t)
	pf := f.seedPending(t, entities.PendingStatusPending, completeParsed())
	ctx := context.Background()

	if err := f.svc.Reject(ctx, f.userID, pf.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	var rejected entities.PendingFlight
	f.db.First(&rejected, "id = ?", pf.ID)
	if rejected.Status != entities.PendingStatusRejected {
		t.Fatalf("status = %s, want REJECTED", rejected.Status)
	}

	if err := f.svc.Restore(ctx, f.userID, pf.ID); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	var restored entities.PendingFlight
	f.db.First(&restored, "id = ?", pf.ID)
	if restored.Status != entities.PendingStatusPending {
		t.Errorf("status = %s, want PENDING", restored.Status)
	}
	// Restore grants a fresh expiration window
	if !restored.ExpiresAt.After(time.Now().UTC().AddDate(0, 0, entities.PendingExpiryDays-1)) {
		t.Errorf("expiry not reset: %v", restored.ExpiresAt)
	}
}

func TestRestorePendingItemFails(t *testing.T) {
	f := setup(t)
	pf := f.seedPending(t, entities.PendingStatusPending, completeParsed())

	err := f.svc.Restore(context.Background(), f.userID, pf.ID)
	le, ok := err.(*LifecycleError)
	if !ok {
		t.Fatalf("want LifecycleError, got %v", err)
	}
	if le.Code != constants.ErrCodeInvalidState {
		t.Errorf("code = %s, want %s", le.Code, constants.ErrCodeInvalidState)
	}
}

func TestRejectNonPendingFails(t *testing.T) {
	f := setup(t)
	pf := f.seedPending(t, entities.PendingStatusApproved, completeParsed())

	err := f.svc.Reject(context.Background(), f.userID, pf.ID)
	le, ok := err.(*LifecycleError)
	if !ok || le.Code != constants.ErrCodeInvalidState {
		t.Fatalf("want invalid state, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	f := setup(t)
	f.seedPending(t, entities.PendingStatusPending, completeParsed())
	f.seedPending(t, entities.PendingStatusRejected, completeParsed())
	ctx := context.Background()

	all, err := f.svc.List(ctx, f.userID, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}

	rejected, err := f.svc.List(ctx, f.userID, entities.PendingStatusRejected)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rejected) != 1 {
		t.Errorf("rejected = %d, want 1", len(rejected))
	}

	foreign, err := f.svc.List(ctx, uuid.NewString(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(foreign) != 0 {
		t.Errorf("foreign user sees %d items", len(foreign))
	}
}

func TestMergeOverrides(t *testing.T) {
	parsed := completeParsed()
	n := 99
	raw := MergeOverrides(parsed, &dtos.FlightOverrides{
		ArrivalCode:  "KSFO",
		FlightNumber: &n,
		OutTime:      "10:30",
	})

	if raw.ArrivalCode != "KSFO" {
		t.Errorf("override lost: arrival = %s", raw.ArrivalCode)
	}
	if raw.DepartureCode != "KJFK" {
		t.Errorf("parsed value lost: departure = %s", raw.DepartureCode)
	}
	if raw.FlightNumber == nil || *raw.FlightNumber != 99 {
		t.Errorf("flight number = %v, want 99", raw.FlightNumber)
	}
	if raw.Times.GateOut.Scheduled != "10:30" {
		t.Errorf("out time = %s, want 10:30", raw.Times.GateOut.Scheduled)
	}
	if raw.Times.GateIn.Scheduled != "12:15" {
		t.Errorf("in time = %s, want 12:15", raw.Times.GateIn.Scheduled)
	}

	// Nil overrides keep all parsed values
	raw2 := MergeOverrides(parsed, nil)
	if raw2.ArrivalCode != "KLAX" || raw2.FlightNumber == nil || *raw2.FlightNumber != 1234 {
		t.Error("nil overrides must keep parsed values")
	}
}
