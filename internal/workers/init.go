// Package workers hosts the long-running background consumers. Each
// worker owns one Redis stream and runs for the life of the process.
package workers

import (
	"context"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db/repositories"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/logging"
)

const (
	expirySweepInterval = 6 * time.Hour
	autoSyncInterval    = time.Hour
)

// Workers bundles the running background consumers so handlers can reach
// worker-owned state, like the cached stats.
type Workers struct {
	CalendarSync *CalendarSyncWorker
	Stats        *StatsWorker
}

// InitWorkers starts all background workers. They stop when ctx is
// cancelled.
func InitWorkers(
	ctx context.Context,
	queue *common.TaskQueueService,
	cache common.CacheInterface,
	sources *repositories.CalendarSourceRepository,
	pending *repositories.PendingFlightRepository,
	flights *repositories.FlightRepository,
) *Workers {
	w := &Workers{
		CalendarSync: NewCalendarSyncWorker(queue, sources, pending, logging.Named("calendar_sync_worker")),
		Stats:        NewStatsWorker(queue, flights, cache, logging.Named("stats_worker")),
	}

	go w.CalendarSync.Start(ctx)
	go w.Stats.Start(ctx)
	go runExpirySweep(ctx, pending)
	go runAutoSync(ctx, queue, sources)

	return w
}

// runAutoSync periodically queues a sync pass for every enabled source,
// so feeds stay current without a manual trigger.
func runAutoSync(ctx context.Context, queue *common.TaskQueueService, sources *repositories.CalendarSourceRepository) {
	log := logging.Named("calendar_auto_sync")
	ticker := time.NewTicker(autoSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			srcs, err := sources.ListEnabled(ctx)
			if err != nil {
				log.Warnw("Failed to list sources for auto sync", "error", err.Error())
				continue
			}
			for _, src := range srcs {
				if _, err := queue.EnqueueCalendarSync(ctx, src.ID, src.UserID); err != nil {
					log.Warnw("Failed to queue auto sync", "source_id", src.ID, "error", err.Error())
				}
			}
		}
	}
}

// runExpirySweep periodically drops pending flights whose lifetime has
// elapsed without a decision.
func runExpirySweep(ctx context.Context, pending *repositories.PendingFlightRepository) {
	log := logging.Named("pending_expiry")
	ticker := time.NewTicker(expirySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := pending.DeleteExpired(ctx, time.Now().UTC())
			if err != nil {
				log.Warnw("Expiry sweep failed", "error", err.Error())
				continue
			}
			if removed > 0 {
				log.Infow("Expired pending flights removed", "count", removed)
			}
		}
	}
}
