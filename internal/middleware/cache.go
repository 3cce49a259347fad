package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/veda242/taskmanager/internal/config"
)

// captureWriter captures the response body/status while forwarding to the
// client, so a successful response can be stored after the handler ran.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// TasksKey builds the cache key for a user's task list.  The key is
// per-user because task lists are owner-scoped: two users must never
// see each other's cached responses.
func TasksKey(prefix string, userID uint64) string {
	return fmt.Sprintf("%s:tasks:%d", prefix, userID)
}

// TaskListCache returns a middleware that serves GET responses for the
// task list from Redis.  Entries live for cfg.TTL and are dropped
// eagerly via InvalidateTasks whenever the user mutates a task.  With a
// nil client or caching disabled the middleware is a no-op, matching
// how the rest of the app degrades without Redis.
func TaskListCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			uid, ok := c.Get("user_id").(uint64)
			if !ok {
				return next(c)
			}
			key := TasksKey(cfg.Prefix, uid)
			ctx := c.Request().Context()

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				// Best effort; a failed SET just means a cache miss next time.
				_ = rdb.Set(ctx, key, cw.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}

// InvalidateTasks drops the cached task list for a user.  Called by the
// task handlers after every create, update and delete so the next list
// read sees the write immediately.
func InvalidateTasks(ctx context.Context, rdb *redis.Client, cfg config.CacheConfig, userID uint64) {
	if rdb == nil || !cfg.Enabled {
		return
	}
	_ = rdb.Del(ctx, TasksKey(cfg.Prefix, userID)).Err()
}
