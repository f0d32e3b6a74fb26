package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db/repositories"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/metrics"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	"go.uber.org/zap"
)

// BatchRunner drives the resolution engine over a batch of raw flights.
// Two call modes: RunCollect records per-item failures and keeps going,
// RunFailFast aborts on the first fatal failure. Both preserve input
// order for caller correlation.
type BatchRunner struct {
	engine  *ResolutionEngine
	flights *repositories.FlightRepository
	queue   *common.TaskQueueService
	log     *zap.SugaredLogger
	metrics *metrics.MetricsRegistry
}

// NewBatchRunner creates a new batch runner. queue and reg may be nil in
// tests; stats recompute and metrics are then skipped.
func NewBatchRunner(
	eng *ResolutionEngine,
	flights *repositories.FlightRepository,
	queue *common.TaskQueueService,
	log *zap.SugaredLogger,
	reg *metrics.MetricsRegistry,
) *BatchRunner {
	return &BatchRunner{
		engine:  eng,
		flights: flights,
		queue:   queue,
		log:     log,
		metrics: reg,
	}
}

// RunCollect processes every item independently: one record's failure is
// recorded and processing continues. All successfully resolved flights
// are created in a single all-or-nothing transaction; an infrastructure
// failure there is the returned error, distinct from per-item outcomes.
func (r *BatchRunner) RunCollect(ctx context.Context, userID string, raws []dtos.RawFlight) (*dtos.BatchResult, error) {
	start := time.Now()

	if err := r.engine.Preload(ctx, raws); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrCodePersistenceFailure, err)
	}

	result := &dtos.BatchResult{
		Outcomes: make([]dtos.ItemOutcome, len(raws)),
	}

	// Items are processed sequentially: it keeps transaction scope simple
	// and bounds the load we put on external providers.
	var created []*entities.Flight
	var createdIdx []int
	for i := range raws {
		raw := &raws[i]
		outcome := &result.Outcomes[i]
		outcome.Index = i
		outcome.SourceRef = raw.SourceRef

		resolved, resErr, err := r.engine.Resolve(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrCodePersistenceFailure, err)
		}
		if resErr != nil {
			outcome.Success = false
			outcome.ErrorCode = resErr.Code
			outcome.Error = resErr.Error()
			result.Failed++
			r.countRecord("failed")
			continue
		}

		outcome.Success = true
		created = append(created, resolved.ToEntity(userID))
		createdIdx = append(createdIdx, i)
		r.countRecord("resolved")
	}

	// One transaction per sub-batch: resolution failures above are data,
	// a failure here is infrastructure and rolls everything back.
	if err := r.flights.CreateBatch(ctx, created); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrCodePersistenceFailure, err)
	}
	for n, i := range createdIdx {
		result.Outcomes[i].FlightID = created[n].ID
	}
	result.Created = len(created)

	r.recomputeStats(ctx, userID)

	elapsed := time.Since(start)
	if r.metrics != nil {
		r.metrics.BatchDuration.WithLabelValues("collect").Observe(elapsed.Seconds())
	}
	r.log.Infow("Batch ingestion finished",
		"user_id", userID,
		"items", len(raws),
		"created", result.Created,
		"failed", result.Failed,
		"duration_ms", elapsed.Milliseconds(),
	)

	return result, nil
}

// RunFailFast resolves and creates a single record, surfacing the first
// fatal failure as the operation's error.
func (r *BatchRunner) RunFailFast(ctx context.Context, userID string, raw dtos.RawFlight) (*entities.Flight, error) {
	start := time.Now()

	resolved, resErr, err := r.engine.Resolve(ctx, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrCodePersistenceFailure, err)
	}
	if resErr != nil {
		r.countRecord("failed")
		return nil, resErr
	}

	flight := resolved.ToEntity(userID)
	if err := r.flights.Create(ctx, flight); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrCodePersistenceFailure, err)
	}
	r.countRecord("resolved")

	r.recomputeStats(ctx, userID)

	if r.metrics != nil {
		r.metrics.BatchDuration.WithLabelValues("fail_fast").Observe(time.Since(start).Seconds())
	}

	return flight, nil
}

// recomputeStats queues the flight-derived aggregate refresh. A failure
// here never retroactively fails the creation that triggered it.
func (r *BatchRunner) recomputeStats(ctx context.Context, userID string) {
	if r.queue == nil {
		return
	}
	if _, err := r.queue.EnqueueStatsRecompute(ctx, userID); err != nil {
		r.log.Warnw("Failed to queue stats recompute",
			"user_id", userID,
			"error", err.Error(),
		)
	}
}

func (r *BatchRunner) countRecord(outcome string) {
	if r.metrics != nil {
		r.metrics.RecordsResolvedTotal.WithLabelValues(outcome).Inc()
	}
}
