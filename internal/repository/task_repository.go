package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions

	"github.com/veda242/taskmanager/internal/model"
)

// ErrTaskNotFound is returned when a task lookup fails.  A task that
// exists but belongs to another user produces the same error: every
// query filters by (id, owner_id) together, so the two cases are
// indistinguishable by construction and nothing leaks about foreign
// tasks.
var ErrTaskNotFound = errors.New("task not found")

// TaskPatch carries the updatable fields of a task.  Nil pointers leave
// the stored value unchanged.  There is deliberately no owner field:
// ownership is set once at creation and can never be patched.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// TaskRepo provides methods to create and retrieve tasks.  All reads and
// writes are scoped by owner; there is no unscoped accessor.
type TaskRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewTaskRepo constructs a TaskRepo with the given DB handle.
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// Create inserts a new task owned by ownerID with the default status and
// returns the stored row, including generated id and timestamps.
func (r *TaskRepo) Create(ctx context.Context, ownerID uint64, title, description string) (model.Task, error) {
	const qInsert = `INSERT INTO tasks (owner_id, title, description, status)
	                 VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, ownerID, title, description, model.StatusPending)
	if err != nil {
		return model.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	// Read the row back so created_at/updated_at reflect what MySQL stored.
	return r.getByIDAndOwner(ctx, uint64(id), ownerID)
}

// ListByOwner returns all tasks owned by ownerID in insertion order.
func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Task, error) {
	const q = `SELECT id, owner_id, title, description, status, created_at, updated_at
               FROM tasks
               WHERE owner_id = ?
               ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndOwner applies a patch to the task matching both id and
// owner and returns the updated row.  COALESCE keeps columns whose patch
// field is nil, so a partial body only touches what it names.  The
// follow-up select is used for the not-found check instead of
// RowsAffected, which MySQL reports as zero for a no-op update.
func (r *TaskRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, p TaskPatch) (model.Task, error) {
	const q = `UPDATE tasks
               SET title = COALESCE(?, title),
                   description = COALESCE(?, description),
                   status = COALESCE(?, status),
                   updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND owner_id = ?`
	if _, err := r.db.ExecContext(ctx, q, p.Title, p.Description, p.Status, id, ownerID); err != nil {
		return model.Task{}, err
	}
	return r.getByIDAndOwner(ctx, id, ownerID)
}

// DeleteByIDAndOwner permanently removes the task matching both id and
// owner.  Zero affected rows means no such task for this owner.
func (r *TaskRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// getByIDAndOwner retrieves a task only if it belongs to the given
// owner.  If no matching task is found, ErrTaskNotFound is returned.
func (r *TaskRepo) getByIDAndOwner(ctx context.Context, id, ownerID uint64) (model.Task, error) {
	const q = `SELECT id, owner_id, title, description, status, created_at, updated_at
               FROM tasks WHERE id = ? AND owner_id = ?`
	var t model.Task
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, err
	}
	return t, nil
}
