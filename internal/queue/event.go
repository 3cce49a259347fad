// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions recorded in TaskEvent.Action.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TaskEvent is published whenever a task is created, updated or deleted.
// It carries enough information for downstream consumers to log or
// trigger analytics without querying the primary database.
type TaskEvent struct {
	TaskID     uint64 `json:"task_id"`
	UserID     uint64 `json:"user_id"`
	Action     string `json:"action"`
	Title      string `json:"title"`
	OccurredAt string `json:"occurred_at"`
}
