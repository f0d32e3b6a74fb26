package workers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db/repositories"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/dtos"

	"go.uber.org/zap"
)

const statsCacheTTL = 24 * time.Hour

// StatsWorker refreshes a user's flight-derived aggregates after imports
// and approvals. Recompute is idempotent; duplicate tasks for the same
// user just overwrite the cached value.
type StatsWorker struct {
	queue   *common.TaskQueueService
	flights *repositories.FlightRepository
	cache   common.CacheInterface
	log     *zap.SugaredLogger
}

// NewStatsWorker creates a new stats recompute worker
func NewStatsWorker(
	queue *common.TaskQueueService,
	flights *repositories.FlightRepository,
	cache common.CacheInterface,
	log *zap.SugaredLogger,
) *StatsWorker {
	return &StatsWorker{
		queue:   queue,
		flights: flights,
		cache:   cache,
		log:     log,
	}
}

// Start blocks on the recompute stream until ctx is cancelled.
func (w *StatsWorker) Start(ctx context.Context) {
	w.log.Infow("Stats recompute worker started")

	lastID := "$"
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := w.queue.ReadTasks(ctx, common.StatsRecomputeStream, lastID, 10)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Warnw("Failed to read stats stream", "error", err.Error())
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range msgs {
			lastID = msg.ID

			data, ok := msg.Values["data"].(string)
			if !ok {
				continue
			}
			var task common.StatsRecomputeTask
			if err := json.Unmarshal([]byte(data), &task); err != nil {
				w.log.Warnw("Malformed stats task", "stream_id", msg.ID, "error", err.Error())
				continue
			}

			if err := w.Recompute(ctx, task.UserID); err != nil {
				w.log.Errorw("Stats recompute failed",
					"task_id", task.TaskID,
					"user_id", task.UserID,
					"error", err.Error(),
				)
			}
		}
	}
}

// Recompute rebuilds and caches the aggregates for one user.
func (w *StatsWorker) Recompute(ctx context.Context, userID string) error {
	count, err := w.flights.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	minutes, err := w.flights.SumDurationByUser(ctx, userID)
	if err != nil {
		return err
	}

	stats := &dtos.UserStats{
		TotalFlights:     count,
		TotalDurationMin: minutes,
		ComputedAt:       time.Now().UTC(),
	}
	w.cache.Set(statsCacheKey(userID), stats, statsCacheTTL)

	w.log.Infow("Stats recomputed",
		"user_id", userID,
		"flights", count,
		"minutes", minutes,
	)
	return nil
}

// CachedStats returns the cached aggregates for a user, or nil when they
// have not been computed yet.
func (w *StatsWorker) CachedStats(userID string) *dtos.UserStats {
	if v, found := w.cache.Get(statsCacheKey(userID)); found {
		if stats, ok := v.(*dtos.UserStats); ok {
			return stats
		}
	}
	return nil
}

func statsCacheKey(userID string) string {
	return "user_stats:" + userID
}
