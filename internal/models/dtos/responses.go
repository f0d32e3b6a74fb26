package dtos

import "time"

// APIResponse is the standard JSON envelope for all endpoints
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// QueuedResponse acknowledges that background work was queued. Queuing is
// distinct from completion; the task reports its own outcome when it runs.
type QueuedResponse struct {
	TaskID string `json:"taskId"`
	Queued bool   `json:"queued"`
}

// UserStats is the cached flight-derived aggregate for one user
type UserStats struct {
	TotalFlights     int64     `json:"totalFlights"`
	TotalDurationMin int64     `json:"totalDurationMin"`
	ComputedAt       time.Time `json:"computedAt"`
}
