package common

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Stream names for the background task queues
const (
	CalendarSyncStream   = "calendar_sync"
	StatsRecomputeStream = "stats_recompute"
)

// TaskQueueService provides queue functionality using Redis Streams.
// Enqueueing is the synchronous acknowledgement that background work was
// queued; completion is reported by the consuming worker.
type TaskQueueService struct {
	client *redis.Client
}

// NewTaskQueueService creates a new Redis-backed task queue service
func NewTaskQueueService(client *redis.Client) *TaskQueueService {
	return &TaskQueueService{
		client: client,
	}
}

// CalendarSyncTask asks the sync worker to pull one calendar source
type CalendarSyncTask struct {
	TaskID   string `json:"task_id"`
	SourceID string `json:"source_id"`
	UserID   string `json:"user_id"`
}

// StatsRecomputeTask asks the stats worker to refresh a user's aggregates
type StatsRecomputeTask struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id"`
}

// EnqueueCalendarSync adds a calendar sync task to the queue and returns
// the task id for the caller's "queued" acknowledgement.
func (s *TaskQueueService) EnqueueCalendarSync(ctx context.Context, sourceID, userID string) (string, error) {
	task := CalendarSyncTask{
		TaskID:   uuid.NewString(),
		SourceID: sourceID,
		UserID:   userID,
	}
	if err := s.enqueue(ctx, CalendarSyncStream, task); err != nil {
		return "", err
	}
	return task.TaskID, nil
}

// EnqueueStatsRecompute adds a stats recompute task to the queue
func (s *TaskQueueService) EnqueueStatsRecompute(ctx context.Context, userID string) (string, error) {
	task := StatsRecomputeTask{
		TaskID: uuid.NewString(),
		UserID: userID,
	}
	if err := s.enqueue(ctx, StatsRecomputeStream, task); err != nil {
		return "", err
	}
	return task.TaskID, nil
}

func (s *TaskQueueService) enqueue(ctx context.Context, stream string, task any) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	// XADD stream * data <json>
	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream %s: %w", stream, err)
	}

	return nil
}

// ReadTasks blocks on the stream and returns raw task payloads after
// lastID. Callers resume from the id of the last message they handled.
func (s *TaskQueueService) ReadTasks(ctx context.Context, stream, lastID string, count int64) ([]redis.XMessage, error) {
	res, err := s.client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{stream, lastID},
		Count:   count,
		Block:   0,
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res[0].Messages, nil
}
