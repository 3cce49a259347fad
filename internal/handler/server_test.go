package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/veda242/taskmanager/internal/config"
	"github.com/veda242/taskmanager/internal/handler"
	"github.com/veda242/taskmanager/internal/model"
	"github.com/veda242/taskmanager/internal/repository"
	"github.com/veda242/taskmanager/internal/router"
	"github.com/veda242/taskmanager/internal/utils"
)

// fakeUserStore is an in-memory stand-in for the MySQL user repository.
type fakeUserStore struct {
	users  map[string]model.User
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, username, password string, cost int) (uint64, error) {
	if _, ok := f.users[username]; ok {
		return 0, repository.ErrUsernameTaken
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.users[username] = model.User{ID: f.nextID, Username: username, PasswordHash: hash}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// fakeTaskStore keeps tasks in memory and counts calls so tests can
// assert that rejected requests never touch the store.
type fakeTaskStore struct {
	tasks  map[uint64]model.Task
	nextID uint64
	calls  int
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[uint64]model.Task{}}
}

func (f *fakeTaskStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Task, error) {
	f.calls++
	out := []model.Task{}
	for _, t := range f.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskStore) Create(_ context.Context, ownerID uint64, title, description string) (model.Task, error) {
	f.calls++
	f.nextID++
	t := model.Task{
		ID:          f.nextID,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      model.StatusPending,
	}
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskStore) UpdateByIDAndOwner(_ context.Context, id, ownerID uint64, p repository.TaskPatch) (model.Task, error) {
	f.calls++
	t, ok := f.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return model.Task{}, repository.ErrTaskNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	f.tasks[id] = t
	return t, nil
}

func (f *fakeTaskStore) DeleteByIDAndOwner(_ context.Context, id, ownerID uint64) error {
	f.calls++
	t, ok := f.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return repository.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

const testSecret = "handler-test-secret"

// testConfig builds the explicit configuration object handlers receive;
// no environment variables are consulted.
func testConfig() config.Config {
	return config.Config{
		Env:          "test",
		Port:         "0",
		JWTSecret:    testSecret,
		AccessTTLMin: 60,
		BcryptCost:   bcrypt.MinCost,
	}
}

// newServer wires the real router with fake stores and no Redis.
func newServer(users *fakeUserStore, tasks *fakeTaskStore) *echo.Echo {
	cfg := testConfig()
	e := echo.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	a := handler.NewAuthHandler(cfg, users)
	t := handler.NewTaskHandler(tasks, nil, config.CacheConfig{})
	router.RegisterRoutes(e, cfg, a, t, nil, config.CacheConfig{})
	return e
}

// doJSON performs a request against the echo instance and returns the
// recorder.  token is added as a Bearer credential when non-empty.
func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// taskPath builds the URL for a single task.
func taskPath(id uint64) string {
	return "/api/tasks/" + strconv.FormatUint(id, 10)
}

// tokenFor mints an access token the way login does.
func tokenFor(t *testing.T, userID uint64) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return tok.Token
}

// decodeBody unmarshals a JSON response body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
