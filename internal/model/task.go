package model

import "time"

// StatusPending is the status assigned to newly created tasks.  The set
// of status values is not enforced server-side; clients may move tasks
// through whatever workflow they like.
const StatusPending = "pending"

// Task represents a row in the `tasks` table.  OwnerID is set once at
// creation from the authenticated identity and is never updatable
// through the API.  This struct doubles as the wire representation of
// a task, so it carries json tags.
type Task struct {
	ID          uint64    `json:"id"`          // tasks.id
	OwnerID     uint64    `json:"owner_id"`    // tasks.owner_id
	Title       string    `json:"title"`       // tasks.title
	Description string    `json:"description"` // tasks.description
	Status      string    `json:"status"`      // tasks.status
	CreatedAt   time.Time `json:"created_at"`  // tasks.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // tasks.updated_at
}
