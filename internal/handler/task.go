package handler // handler package contains task CRUD handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/veda242/taskmanager/internal/config"
	"github.com/veda242/taskmanager/internal/middleware"
	"github.com/veda242/taskmanager/internal/model"
	"github.com/veda242/taskmanager/internal/queue"
	"github.com/veda242/taskmanager/internal/repository"
	"github.com/veda242/taskmanager/internal/service"
)

// TaskStore is the slice of the task repository the handlers need.  Every
// method takes the owner explicitly: there is no way to reach a task
// without saying whose it must be.
type TaskStore interface {
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Task, error)
	Create(ctx context.Context, ownerID uint64, title, description string) (model.Task, error)
	UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, p repository.TaskPatch) (model.Task, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
}

// TaskHandler bundles the task store with the cache it invalidates on
// writes.  The Redis client may be nil, in which case invalidation is a
// no-op along with the cache itself.
type TaskHandler struct {
	Tasks    TaskStore
	rdb      *redis.Client
	cacheCfg config.CacheConfig
}

func NewTaskHandler(tasks TaskStore, rdb *redis.Client, cacheCfg config.CacheConfig) *TaskHandler {
	if tasks == nil {
		panic("nil store passed to NewTaskHandler")
	}
	return &TaskHandler{Tasks: tasks, rdb: rdb, cacheCfg: cacheCfg}
}

// getUserID extracts the authenticated user's ID placed in the context
// by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if uid, ok := c.Get("user_id").(uint64); ok {
		return uid, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// taskCtx bounds DB work for a single task request.
func taskCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// List handles GET /api/tasks and returns the caller's tasks only.
func (h *TaskHandler) List(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "No token, authorization denied"})
	}
	ctx, cancel := taskCtx(c)
	defer cancel()

	tasks, err := h.Tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/tasks.  The owner always comes from the
// authenticated identity, never from the body, so ownership cannot be
// spoofed by a crafted payload.
func (h *TaskHandler) Create(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "No token, authorization denied"})
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid task data"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid task data"})
	}

	ctx, cancel := taskCtx(c)
	defer cancel()

	task, err := h.Tasks.Create(ctx, ownerID, body.Title, body.Description)
	if err != nil {
		return respondError(c, err)
	}

	h.afterWrite(task, queue.ActionCreated)
	return c.JSON(http.StatusOK, task)
}

// Update handles PUT /api/tasks/:id.  The body is a partial patch;
// fields not present are left unchanged.  An owner field in the body is
// ignored outright since TaskPatch has no such member.
func (h *TaskHandler) Update(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "No token, authorization denied"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid request"})
	}
	var patch repository.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid request"})
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		// A task keeps a title for its whole life; patching it away is invalid.
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid task data"})
	}

	ctx, cancel := taskCtx(c)
	defer cancel()

	task, err := h.Tasks.UpdateByIDAndOwner(ctx, id, ownerID, patch)
	if err != nil {
		return respondError(c, err)
	}

	h.afterWrite(task, queue.ActionUpdated)
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id.  Deletion is permanent; a
// second delete of the same id reports not found.
func (h *TaskHandler) Delete(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "No token, authorization denied"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid request"})
	}

	ctx, cancel := taskCtx(c)
	defer cancel()

	if err := h.Tasks.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		return respondError(c, err)
	}

	h.afterWrite(model.Task{ID: id, OwnerID: ownerID}, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"msg": "Task deleted"})
}

// afterWrite drops the owner's cached task list and publishes an
// activity event.  Both are best effort and run off the request path;
// the write itself already succeeded.
func (h *TaskHandler) afterWrite(task model.Task, action string) {
	middleware.InvalidateTasks(context.Background(), h.rdb, h.cacheCfg, task.OwnerID)
	go func() {
		_ = service.PublishTaskEvent(context.Background(), queue.TaskEvent{
			TaskID:     task.ID,
			UserID:     task.OwnerID,
			Action:     action,
			Title:      task.Title,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}
