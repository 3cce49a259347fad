package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/veda242/taskmanager/internal/config"
	"github.com/veda242/taskmanager/internal/handler"    // import the handlers that implement business logic
	"github.com/veda242/taskmanager/internal/middleware" // import middleware for JWT authentication and caching
)

// RegisterRoutes wires every endpoint of the API onto the provided Echo
// instance.
//
// Unauthenticated surface:
//
//	GET  /healthz            – liveness probe
//	GET  /api                – API banner
//	POST /api/auth/register  – create an account
//	POST /api/auth/login     – obtain an access token
//
// Everything under /api/tasks requires a valid Bearer token; the JWT
// middleware runs before any task handler and halts the pipeline on a
// missing or invalid token, so no store access happens for rejected
// requests.
func RegisterRoutes(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, t *handler.TaskHandler, rdb *redis.Client, cacheCfg config.CacheConfig) {
	e.GET("/healthz", handler.Health)
	e.GET("/api", handler.APIRoot)

	// Auth endpoints issue tokens and therefore sit outside the JWT guard.
	auth := e.Group("/api/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)

	// Task endpoints: JWT guard first, then the per-user list cache.
	tasks := e.Group("/api/tasks")
	tasks.Use(middleware.JWTAuth(cfg.JWTSecret))
	tasks.Use(middleware.TaskListCache(cacheCfg, rdb))
	tasks.GET("", t.List)
	tasks.POST("", t.Create)
	tasks.PUT("/:id", t.Update)
	tasks.DELETE("/:id", t.Delete)
}
