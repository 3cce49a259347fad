package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // sql.ErrNoRows distinguishes unknown users
	"errors"
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/veda242/taskmanager/internal/config" // app configuration
	"github.com/veda242/taskmanager/internal/model"
	"github.com/veda242/taskmanager/internal/utils" // helper functions (hashing, token issuing)
)

// UserStore is the slice of the user repository the auth handlers need.
// Declaring it here lets tests substitute an in-memory fake for the
// MySQL-backed repo.
type UserStore interface {
	Create(ctx context.Context, username, password string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a user.  Unlike login it returns no token; the client
// is expected to log in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Please provide username and password"})
	}
	// Usernames are case-sensitive; only surrounding whitespace is dropped.
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Please provide username and password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Username, req.Password, h.Cfg.BcryptCost); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"msg": "User registered"})
}

// Login verifies credentials and returns a fresh access token, usable on
// the very next request.  Unknown username and wrong password produce
// the same response so the endpoint cannot be used to probe for
// registered names.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Please provide username and password"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Please provide username and password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid credentials"})
		}
		return respondError(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": access.Token,
		"msg":   "Login successful",
	})
}
