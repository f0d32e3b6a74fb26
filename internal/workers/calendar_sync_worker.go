package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db/repositories"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/ingest"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/models/entities"

	"go.uber.org/zap"
)

// CalendarSyncWorker consumes queued sync tasks and pulls each calendar
// source's feed, creating PENDING flight candidates for new flight-like
// events. The HTTP enqueue path only acknowledges that work was queued;
// this worker owns completion.
type CalendarSyncWorker struct {
	queue   *common.TaskQueueService
	sources *repositories.CalendarSourceRepository
	pending *repositories.PendingFlightRepository
	client  *http.Client
	log     *zap.SugaredLogger
}

// NewCalendarSyncWorker creates a new calendar sync worker
func NewCalendarSyncWorker(
	queue *common.TaskQueueService,
	sources *repositories.CalendarSourceRepository,
	pending *repositories.PendingFlightRepository,
	log *zap.SugaredLogger,
) *CalendarSyncWorker {
	return &CalendarSyncWorker{
		queue:   queue,
		sources: sources,
		pending: pending,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// Start blocks on the sync stream until ctx is cancelled.
func (w *CalendarSyncWorker) Start(ctx context.Context) {
	w.log.Infow("Calendar sync worker started")

	lastID := "$"
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := w.queue.ReadTasks(ctx, common.CalendarSyncStream, lastID, 10)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Warnw("Failed to read sync stream", "error", err.Error())
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range msgs {
			lastID = msg.ID

			data, ok := msg.Values["data"].(string)
			if !ok {
				continue
			}
			var task common.CalendarSyncTask
			if err := json.Unmarshal([]byte(data), &task); err != nil {
				w.log.Warnw("Malformed sync task", "stream_id", msg.ID, "error", err.Error())
				continue
			}

			if err := w.processTask(ctx, &task); err != nil {
				w.log.Errorw("Calendar sync failed",
					"task_id", task.TaskID,
					"source_id", task.SourceID,
					"error", err.Error(),
				)
			}
		}
	}
}

func (w *CalendarSyncWorker) processTask(ctx context.Context, task *common.CalendarSyncTask) error {
	src, err := w.sources.GetByID(ctx, task.UserID, task.SourceID)
	if err != nil {
		return err
	}
	if src == nil || !src.Enabled {
		w.log.Infow("Skipping sync for missing or disabled source", "source_id", task.SourceID)
		return nil
	}

	body, err := w.fetchFeed(ctx, src.URL)
	if err != nil {
		return err
	}

	candidates, err := ingest.ParseCalendar(body)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	created := 0
	for _, cand := range candidates {
		if cand.UID != "" {
			existing, err := w.pending.FindByEventUID(ctx, src.ID, cand.UID)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
		}

		pf := &entities.PendingFlight{
			CalendarSourceID: src.ID,
			EventUID:         cand.UID,
			Status:           entities.PendingStatusPending,
			ParsedData:       cand.Parsed,
			ExpiresAt:        now.AddDate(0, 0, entities.PendingExpiryDays),
		}
		if err := w.pending.Create(ctx, pf); err != nil {
			return err
		}
		created++
	}

	if err := w.sources.MarkSynced(ctx, src.ID, now); err != nil {
		return err
	}

	w.log.Infow("Calendar sync completed",
		"task_id", task.TaskID,
		"source_id", src.ID,
		"events", len(candidates),
		"created", created,
	)
	return nil
}

func (w *CalendarSyncWorker) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
