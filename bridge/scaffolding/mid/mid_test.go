package mid_test

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrazmi/zentask/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/zentask/bridge/scaffolding/mid"
	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/logger"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(ctx context.Context, token string) (authcase.Identity, error) {
	if token != "good" {
		return authcase.Identity{}, authcase.ErrUnauthorized
	}
	return authcase.Identity{UserID: "u1", Email: "u1@example.com"}, nil
}

func newHandler() *web.WebHandler {
	log := logger.NewDiscard()
	h := web.NewWebHandler(web.HandlerOptions{},
		web.WithGlobalMiddleware(mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Panics()),
	)

	h.GET("/me", func(ctx context.Context, r *http.Request) web.Encoder {
		id, err := mid.GetUserID(ctx)
		if err != nil {
			return web.NewError(http.StatusInternalServerError, err.Error())
		}
		return fopbridge.OK(r, map[string]string{"id": id, "email": mid.GetEmail(ctx)})
	}, mid.Authenticate(stubVerifier{}))

	h.GET("/panic", func(ctx context.Context, r *http.Request) web.Encoder {
		panic("boom")
	})

	h.GET("/plain-error", func(ctx context.Context, r *http.Request) web.Encoder {
		return errorEncoder{errors.New("secret detail")}
	})

	return h
}

type errorEncoder struct{ error }

func (e errorEncoder) Encode() ([]byte, string, error) { return nil, "", nil }

type envelope struct {
	Success    bool              `json:"success"`
	StatusCode int               `json:"statusCode"`
	Path       string            `json:"path"`
	Message    string            `json:"message"`
	Data       map[string]string `json:"data"`
}

func do(t *testing.T, h http.Handler, path, auth string) (int, envelope) {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		r.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s: decode body %q: %v", path, w.Body.String(), err)
	}
	return w.Code, env
}

func TestAuthenticate(t *testing.T) {
	h := newHandler()

	tests := []struct {
		auth   string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"Bearer good", http.StatusOK},
		{"bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		status, env := do(t, h, "/me", tt.auth)
		if status != tt.status {
			t.Errorf("auth %q: status = %d, want %d", tt.auth, status, tt.status)
		}
		if status == http.StatusOK && (env.Data["id"] != "u1" || env.Data["email"] != "u1@example.com") {
			t.Errorf("auth %q: data = %v", tt.auth, env.Data)
		}
		if status == http.StatusUnauthorized && (env.Success || env.Path != "/me" || env.StatusCode != 401) {
			t.Errorf("auth %q: envelope = %+v", tt.auth, env)
		}
	}
}

func TestPanicsAndInternalErrors(t *testing.T) {
	h := newHandler()

	for _, path := range []string{"/panic", "/plain-error"} {
		status, env := do(t, h, path, "")
		if status != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, want 500", path, status)
		}
		if env.Message != "Internal Server Error" {
			t.Errorf("%s: message = %q leaks detail", path, env.Message)
		}
	}
}

func responseCount(class string) int64 {
	m, ok := expvar.Get("responses").(*expvar.Map)
	if !ok {
		return 0
	}
	v, ok := m.Get(class).(*expvar.Int)
	if !ok {
		return 0
	}
	return v.Value()
}

func TestMetricsCountsByStatusClass(t *testing.T) {
	h := newHandler()
	ok, unauth, failed := responseCount("2xx"), responseCount("4xx"), responseCount("5xx")

	do(t, h, "/me", "Bearer good")
	do(t, h, "/me", "")
	do(t, h, "/plain-error", "")

	if got := responseCount("2xx") - ok; got != 1 {
		t.Errorf("2xx delta = %d, want 1", got)
	}
	if got := responseCount("4xx") - unauth; got != 1 {
		t.Errorf("4xx delta = %d, want 1", got)
	}
	if got := responseCount("5xx") - failed; got != 1 {
		t.Errorf("5xx delta = %d, want 1", got)
	}
}
