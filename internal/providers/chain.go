package providers

import (
	"context"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/metrics"

	"go.uber.org/zap"
)

// LookupChain consults a fixed, ordered list of providers and returns the
// first successful match. Provider calls are sequential by priority: the
// first hit makes the rest irrelevant. Every provider failure, timeout or
// malformed response is recovered here and treated as "no match from this
// provider"; the chain itself never fails.
type LookupChain struct {
	providers []FlightStatusProvider
	timeout   time.Duration
	log       *zap.SugaredLogger
	metrics   *metrics.MetricsRegistry
}

// NewLookupChain creates a lookup chain over providers in priority order.
// timeout bounds each individual provider call so a fully unavailable
// provider cannot stall a bulk operation disproportionately.
func NewLookupChain(providers []FlightStatusProvider, timeout time.Duration, log *zap.SugaredLogger, reg *metrics.MetricsRegistry) *LookupChain {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LookupChain{
		providers: providers,
		timeout:   timeout,
		log:       log,
		metrics:   reg,
	}
}

// FindFlight returns the first provider's first candidate match for the
// designator and date, or nil when no provider has one. No retries happen
// here; those belong to the provider clients.
func (c *LookupChain) FindFlight(ctx context.Context, airline string, flightNumber int, isoDate string) *FlightMatch {
	for _, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		start := time.Now()
		matches, err := p.Search(callCtx, airline, flightNumber, isoDate)
		cancel()

		if c.metrics != nil {
			c.metrics.ProviderLookupLatency.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
		}

		if err != nil {
			// Recovered locally: a broken provider is just "no match"
			c.log.Warnw("Provider lookup failed, falling through",
				"provider", p.Name(),
				"airline", airline,
				"flight_number", flightNumber,
				"date", isoDate,
				"error", err.Error(),
			)
			c.countLookup(p.Name(), "error")
			continue
		}

		if len(matches) == 0 {
			c.countLookup(p.Name(), "miss")
			continue
		}

		c.countLookup(p.Name(), "hit")
		match := matches[0]
		return &match
	}

	return nil
}

func (c *LookupChain) countLookup(provider, outcome string) {
	if c.metrics != nil {
		c.metrics.ProviderLookupsTotal.WithLabelValues(provider, outcome).Inc()
	}
}
