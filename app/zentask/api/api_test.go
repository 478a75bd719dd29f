package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrazmi/zentask/app/zentask/api"
	"github.com/jrazmi/zentask/app/zentask/config"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/logger"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Path       string          `json:"path"`
	Method     string          `json:"method"`
	Message    string          `json:"message"`
	Errors     []string        `json:"errors"`
	Data       json.RawMessage `json:"data"`
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newClient(t *testing.T) *apiClient {
	t.Helper()
	log := logger.NewDiscard()
	db := sqlitedb.NewTestDB(t)
	ds := config.NewSQLiteDatastore(log, db, time.UTC)

	cfg := config.Config{
		StoreConfig:   config.StoreConfig{DBDriver: config.DriverSQLite, Timezone: "UTC"},
		APIRoute:      "/api",
		JWTSigningKey: "test-signing-key",
		JWTIssuer:     "zentask",
		BcryptCost:    bcrypt.MinCost,
	}
	site, err := config.NewSite("test", log, cfg, ds)
	if err != nil {
		t.Fatalf("NewSite() error = %v", err)
	}

	return &apiClient{t: t, handler: api.NewWebHandler(site, web.HandlerOptions{})}
}

func (c *apiClient) do(method, path string, body any) (int, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatal(err)
		}
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		r.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		c.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	if env.StatusCode != w.Code {
		c.t.Errorf("%s %s: envelope status %d, response status %d", method, path, env.StatusCode, w.Code)
	}
	return w.Code, env
}

func (c *apiClient) expect(method, path string, body any, status int, out any) envelope {
	c.t.Helper()
	code, env := c.do(method, path, body)
	if code != status {
		c.t.Fatalf("%s %s: status = %d, want %d (message %q, errors %v)", method, path, code, status, env.Message, env.Errors)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return env
}

type project struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	IsDefault            bool   `json:"isDefault"`
	ShowInToday          bool   `json:"showInToday"`
	TaskCount            int    `json:"taskCount"`
	UncompletedTaskCount int    `json:"uncompletedTaskCount"`
}

type task struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"projectId"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"dueDate"`
	SortOrder int     `json:"sortOrder"`
	Project   struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
}

type page struct {
	Data       []task `json:"data"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

func TestHealthAndMetrics(t *testing.T) {
	c := newClient(t)

	var health struct {
		Status string `json:"status"`
		Driver string `json:"driver"`
	}
	c.expect(http.MethodGet, "/health", nil, http.StatusOK, &health)
	if health.Status != "ok" || health.Driver != config.DriverSQLite {
		t.Errorf("health = %+v", health)
	}

	r := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"requests"`) || !strings.Contains(w.Body.String(), `"responses"`) {
		t.Errorf("debug/vars = %d %s", w.Code, w.Body.String())
	}
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t)
	creds := map[string]any{"email": "Ada@Example.com", "password": "secret1"}

	var auth struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	env := c.expect(http.MethodPost, "/api/auth/register", creds, http.StatusCreated, &auth)
	if !env.Success || env.Path != "/api/auth/register" || env.Method != http.MethodPost {
		t.Errorf("envelope = %+v", env)
	}
	if auth.Token == "" || auth.User.Email != "ada@example.com" {
		t.Fatalf("register = %+v", auth)
	}

	env = c.expect(http.MethodPost, "/api/auth/register", creds, http.StatusConflict, nil)
	if env.Success {
		t.Error("duplicate register reported success")
	}

	env = c.expect(http.MethodPost, "/api/auth/register", map[string]any{"email": "nope", "password": "123"}, http.StatusBadRequest, nil)
	if len(env.Errors) != 2 {
		t.Errorf("validation errors = %v, want 2", env.Errors)
	}

	long := strings.Repeat("a", 80)
	env = c.expect(http.MethodPost, "/api/auth/register", map[string]any{"email": "long@example.com", "password": long}, http.StatusBadRequest, nil)
	if len(env.Errors) != 1 || env.Errors[0] != "password must be at most 72 bytes" {
		t.Errorf("80-byte password errors = %q", env.Errors)
	}
	c.expect(http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@example.com", "password": long}, http.StatusUnauthorized, nil)

	env = c.expect(http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@example.com", "password": "wrong!!"}, http.StatusUnauthorized, nil)
	if env.Message != "invalid email or password" {
		t.Errorf("login message = %q", env.Message)
	}

	c.expect(http.MethodGet, "/api/auth/verify", nil, http.StatusUnauthorized, nil)

	c.expect(http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@example.com", "password": "secret1", "rememberMe": true}, http.StatusOK, &auth)
	c.token = auth.Token

	var verify struct {
		Valid bool `json:"valid"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	c.expect(http.MethodGet, "/api/auth/verify", nil, http.StatusOK, &verify)
	if !verify.Valid || verify.User.ID != auth.User.ID {
		t.Errorf("verify = %+v", verify)
	}

	var profile struct {
		Email string `json:"email"`
	}
	c.expect(http.MethodGet, "/api/auth/profile", nil, http.StatusOK, &profile)
	if profile.Email != "ada@example.com" {
		t.Errorf("profile = %+v", profile)
	}
}

func register(t *testing.T, c *apiClient, email string) project {
	t.Helper()
	var auth struct {
		Token string `json:"token"`
	}
	c.expect(http.MethodPost, "/api/auth/register", map[string]any{"email": email, "password": "secret1"}, http.StatusCreated, &auth)
	c.token = auth.Token

	var projects []project
	c.expect(http.MethodGet, "/api/projects", nil, http.StatusOK, &projects)
	if len(projects) != 1 || !projects[0].IsDefault || projects[0].Name != "Inbox" {
		t.Fatalf("projects after register = %+v", projects)
	}
	return projects[0]
}

func TestProjectsAndTasks(t *testing.T) {
	c := newClient(t)
	inbox := register(t, c, "grace@example.com")

	env := c.expect(http.MethodDelete, "/api/projects/"+inbox.ID, nil, http.StatusForbidden, nil)
	if env.Message != "the default project cannot be deleted" {
		t.Errorf("delete default message = %q", env.Message)
	}

	var work project
	c.expect(http.MethodPost, "/api/projects", map[string]any{"name": "Work"}, http.StatusCreated, &work)

	today := time.Now().UTC().Format("2006-01-02")
	var first, second task
	c.expect(http.MethodPost, "/api/tasks", map[string]any{"projectId": work.ID, "title": "Write report", "dueDate": today}, http.StatusCreated, &first)
	c.expect(http.MethodPost, "/api/tasks", map[string]any{"projectId": work.ID, "title": "Call back", "priority": "high"}, http.StatusCreated, &second)
	if first.SortOrder != 1 || second.SortOrder != 2 {
		t.Errorf("sort orders = %d, %d", first.SortOrder, second.SortOrder)
	}
	if first.Priority != "medium" || first.Status != "pending" || first.Project.Name != "Work" {
		t.Errorf("first = %+v", first)
	}
	if first.DueDate == nil || *first.DueDate != today {
		t.Errorf("dueDate = %v, want %s", first.DueDate, today)
	}

	var todays []task
	c.expect(http.MethodGet, "/api/tasks/today", nil, http.StatusOK, &todays)
	if len(todays) != 2 {
		t.Errorf("today = %d tasks, want 2", len(todays))
	}

	var done task
	c.expect(http.MethodPatch, "/api/tasks/"+first.ID, map[string]any{"status": "completed"}, http.StatusOK, &done)
	if done.Status != "completed" || done.Priority != "medium" {
		t.Errorf("updated = %+v", done)
	}

	var got project
	c.expect(http.MethodGet, "/api/projects/"+work.ID, nil, http.StatusOK, &got)
	if got.TaskCount != 2 || got.UncompletedTaskCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", got.TaskCount, got.UncompletedTaskCount)
	}

	var list page
	c.expect(http.MethodGet, "/api/tasks?status=pending&limit=500", nil, http.StatusOK, &list)
	if list.Total != 1 || list.Limit != 100 || list.Page != 1 || list.Data[0].ID != second.ID {
		t.Errorf("list = %+v", list)
	}
	env = c.expect(http.MethodGet, "/api/tasks?page=0", nil, http.StatusBadRequest, nil)
	if len(env.Errors) != 1 || env.Errors[0] != "page must be at least 1" {
		t.Errorf("page=0 errors = %q", env.Errors)
	}
	env = c.expect(http.MethodGet, "/api/tasks?page=288230376151711745&limit=64", nil, http.StatusBadRequest, nil)
	if len(env.Errors) != 1 || env.Errors[0] != "page is too large" {
		t.Errorf("huge page errors = %q", env.Errors)
	}
	c.expect(http.MethodGet, "/api/tasks?sortBy=title", nil, http.StatusBadRequest, nil)

	c.expect(http.MethodPost, "/api/tasks/reorder", map[string]any{"tasks": []any{}}, http.StatusBadRequest, nil)
	env = c.expect(http.MethodPost, "/api/tasks/reorder", map[string]any{"tasks": []map[string]any{
		{"id": first.ID, "sortOrder": 2},
		{"id": second.ID, "sortOrder": 1},
	}}, http.StatusOK, nil)
	if !strings.Contains(string(env.Data), "Tasks reordered successfully") {
		t.Errorf("reorder data = %s", env.Data)
	}

	c.expect(http.MethodGet, "/api/tasks?sortBy=sortOrder&sortOrder=asc", nil, http.StatusOK, &list)
	if len(list.Data) != 2 || list.Data[0].ID != second.ID {
		t.Errorf("order after reorder = %+v", list.Data)
	}

	c.expect(http.MethodGet, "/api/tasks/not-a-uuid", nil, http.StatusNotFound, nil)
	c.expect(http.MethodDelete, "/api/tasks/"+first.ID, nil, http.StatusOK, nil)
	c.expect(http.MethodGet, "/api/tasks/"+first.ID, nil, http.StatusNotFound, nil)
}

func TestTenantIsolation(t *testing.T) {
	c := newClient(t)
	register(t, c, "owner@example.com")

	var work project
	c.expect(http.MethodPost, "/api/projects", map[string]any{"name": "Private"}, http.StatusCreated, &work)
	var mine task
	c.expect(http.MethodPost, "/api/tasks", map[string]any{"projectId": work.ID, "title": "Secret"}, http.StatusCreated, &mine)

	register(t, c, "intruder@example.com")

	c.expect(http.MethodGet, "/api/projects/"+work.ID, nil, http.StatusNotFound, nil)
	c.expect(http.MethodGet, "/api/tasks/"+mine.ID, nil, http.StatusNotFound, nil)
	c.expect(http.MethodPost, "/api/tasks", map[string]any{"projectId": work.ID, "title": "Sneaky"}, http.StatusNotFound, nil)
	env := c.expect(http.MethodPost, "/api/tasks/reorder", map[string]any{"tasks": []map[string]any{
		{"id": mine.ID, "sortOrder": 9},
	}}, http.StatusForbidden, nil)
	if env.Message != "one or more tasks do not belong to the current user" {
		t.Errorf("reorder message = %q", env.Message)
	}
}
