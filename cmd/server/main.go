package main // Entry point package

import (
	"log"      // Logging library
	"net/http" // HTTP status and server errors

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/veda242/taskmanager/internal/config"     // Internal config loader
	"github.com/veda242/taskmanager/internal/database"   // MySQL connection helper
	"github.com/veda242/taskmanager/internal/handler"    // HTTP handlers
	"github.com/veda242/taskmanager/internal/queue"      // Task activity consumer
	"github.com/veda242/taskmanager/internal/repository" // DB repositories
	"github.com/veda242/taskmanager/internal/router"     // Route registration
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load() // exits fatally when JWT_SECRET or DB settings are missing

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables the task-list cache.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	if rdb == nil {
		log.Printf("redis unavailable; task cache disabled")
	}

	users := repository.NewUserRepo(db)
	tasks := repository.NewTaskRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.CORS())
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	auth := handler.NewAuthHandler(cfg, users)
	task := handler.NewTaskHandler(tasks, rdb, cacheCfg)

	router.RegisterRoutes(e, cfg, auth, task, rdb, cacheCfg)

	// Background consumer mirrors task activity into logs/activity.log.
	go func() {
		if err := queue.StartTaskConsumer(); err != nil {
			log.Printf("task-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err) // Log and exit if server fails
	}
}
