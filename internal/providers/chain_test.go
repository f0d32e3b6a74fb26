package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// mockProvider is a function-field test double for FlightStatusProvider
type mockProvider struct {
	name     string
	SearchFn func(ctx context.Context, airline string, flightNumber int, isoDate string) ([]FlightMatch, error)
	calls    int
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Search(ctx context.Context, airline string, flightNumber int, isoDate string) ([]FlightMatch, error) {
	m.calls++
	return m.SearchFn(ctx, airline, flightNumber, isoDate)
}

func chainLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func sampleMatch() FlightMatch {
	out := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	in := time.Date(2024, 3, 5, 18, 15, 0, 0, time.UTC)
	return FlightMatch{
		DepartureICAO: "KJFK",
		ArrivalICAO:   "KLAX",
		OutTime:       &out,
		InTime:        &in,
		TailNumber:    "N123AB",
	}
}

func TestChainFirstProviderWins(t *testing.T) {
	first := &mockProvider{
		name: "first",
		SearchFn: func(context.Context, string, int, string) ([]FlightMatch, error) {
			return []FlightMatch{sampleMatch()}, nil
		},
	}
	second := &mockProvider{
		name: "second",
		SearchFn: func(context.Context, string, int, string) ([]FlightMatch, error) {
			t.Error("second provider must not be consulted after a hit")
			return nil, nil
		},
	}

	chain := NewLookupChain([]FlightStatusProvider{first, second}, time.Second, chainLogger(), nil)
	match := chain.FindFlight(context.Background(), "AA", 1234, "2024-03-05")
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.DepartureICAO != "KJFK" {
		t.Errorf("departure = %s, want KJFK", match.DepartureICAO)
	}
	if second.calls != 0 {
		t.Errorf("second provider called %d times", second.calls)
	}
}

func TestChainFallsThroughOnError(t *testing.T) {
	failing := &mockProvider{
		name: "failing",
		SearchFn: func(context.Context, string, int, string) ([]FlightMatch, error) {
			return nil, errors.New("connection refused")
		},
	}
	working := &mockProvider{
		name: "working",
		SearchFn: func(context.Context, string, int, string) ([]FlightMatch, error) {
			return []FlightMatch{sampleMatch()}, nil
		},
	}

	chain := NewLookupChain([]FlightStatusProvider{failing, working}, time.Second, chainLogger(), nil)
	match := chain.FindFlight(context.Background(), "AA", 1234, "2024-03-05")
	if match == nil {
		t.Fatal("a failing provider must not abort the chain")
	}
	if failing.calls != 1 || working.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", failing.calls, working.calls)
	}
}

func TestChainAllMissReturnsNil(t *testing.T) {
	miss := &mockProvider{
		name: "miss",
		SearchFn: func(context.Context, string, int, string) ([]FlightMatch, error) {
			return nil, nil
		},
	}
	failing := &mockProvider{
		name: "failing",
		SearchFn: func(context.Context, string, int, string) ([]FlightMatch, error) {
			return nil, errors.New("boom")
		},
	}

	chain := NewLookupChain([]FlightStatusProvider{miss, failing}, time.Second, chainLogger(), nil)
	if match := chain.FindFlight(context.Background(), "AA", 1234, "2024-03-05"); match != nil {
		t.Fatalf("expected nil, got %+v", match)
	}
}

func TestChainNoProviders(t *testing.T) {
	chain := NewLookupChain(nil, time.Second, chainLogger(), nil)
	if match := chain.FindFlight(context.Background(), "AA", 1234, "2024-03-05"); match != nil {
		t.Fatalf("expected nil, got %+v", match)
	}
}

func TestChainTimeoutBoundsProviderCall(t *testing.T) {
	slow := &mockProvider{
		name: "slow",
		SearchFn: func(ctx context.Context, _ string, _ int, _ string) ([]FlightMatch, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	fast := &mockProvider{
		name: "fast",
		SearchFn: func(context.Context, string, int, string) ([]FlightMatch, error) {
			return []FlightMatch{sampleMatch()}, nil
		},
	}

	chain := NewLookupChain([]FlightStatusProvider{slow, fast}, 20*time.Millisecond, chainLogger(), nil)
	start := time.Now()
	match := chain.FindFlight(context.Background(), "AA", 1234, "2024-03-05")
	if match == nil {
		t.Fatal("expected the fast provider to answer")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("slow provider was not bounded by the per-call timeout")
	}
}
