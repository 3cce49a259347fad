package handler_test

import (
	"net/http"
	"testing"

	"github.com/veda242/taskmanager/internal/utils"
)

func TestRegisterThenDuplicate(t *testing.T) {
	e := newServer(newFakeUserStore(), newFakeTaskStore())

	rec := doJSON(e, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"pw1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first register: status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["msg"] != "User registered" {
		t.Errorf("msg = %q", resp["msg"])
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"other"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: status = %d, want 400", rec.Code)
	}
	decodeBody(t, rec, &resp)
	if resp["msg"] != "Username already taken" {
		t.Errorf("duplicate msg = %q", resp["msg"])
	}
}

func TestRegisterMissingFields(t *testing.T) {
	e := newServer(newFakeUserStore(), newFakeTaskStore())

	for _, body := range []string{`{}`, `{"username":"bob"}`, `{"password":"pw"}`, `{"username":"  ","password":"pw"}`} {
		rec := doJSON(e, http.MethodPost, "/api/auth/register", body, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	users := newFakeUserStore()
	tasks := newFakeTaskStore()
	e := newServer(users, tasks)

	if rec := doJSON(e, http.MethodPost, "/api/auth/register", `{"username":"carol","password":"pw"}`, ""); rec.Code != http.StatusOK {
		t.Fatalf("register: status = %d", rec.Code)
	}
	rec := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"carol","password":"pw"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["msg"] != "Login successful" || resp["token"] == "" {
		t.Fatalf("login response = %v", resp)
	}

	// The token identifies exactly the registered user.
	uid, err := utils.ParseAccessToken(testSecret, resp["token"])
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if want := users.users["carol"].ID; uid != want {
		t.Errorf("token subject = %d, want %d", uid, want)
	}

	// And it is usable on the very next request.
	if rec := doJSON(e, http.MethodGet, "/api/tasks", "", resp["token"]); rec.Code != http.StatusOK {
		t.Errorf("fresh token rejected: status = %d", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := newServer(newFakeUserStore(), newFakeTaskStore())

	if rec := doJSON(e, http.MethodPost, "/api/auth/register", `{"username":"dave","password":"right"}`, ""); rec.Code != http.StatusOK {
		t.Fatalf("register: status = %d", rec.Code)
	}

	// Unknown user and wrong password must be indistinguishable.
	for _, body := range []string{
		`{"username":"nobody","password":"right"}`,
		`{"username":"dave","password":"wrong"}`,
	} {
		rec := doJSON(e, http.MethodPost, "/api/auth/login", body, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
			continue
		}
		var resp map[string]string
		decodeBody(t, rec, &resp)
		if resp["msg"] != "Invalid credentials" {
			t.Errorf("body %s: msg = %q", body, resp["msg"])
		}
	}
}
