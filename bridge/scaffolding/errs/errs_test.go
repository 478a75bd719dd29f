package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrazmi/zentask/bridge/scaffolding/errs"
	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/validation"
)

func TestFromCore(t *testing.T) {
	var fe validation.FieldErrors
	fe.Add("title", "should not be empty")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", fmt.Errorf("get task: %w", repositories.ErrNotFound), http.StatusNotFound, "resource not found"},
		{"conflict", fmt.Errorf("create: %w", repositories.ErrConflict), http.StatusConflict, "resource already exists"},
		{"denial", fmt.Errorf("wrapped: %w", repositories.Deny("no you don't")), http.StatusForbidden, "no you don't"},
		{"forbidden", repositories.ErrForbidden, http.StatusForbidden, "operation not permitted"},
		{"unauthorized", authcase.ErrUnauthorized, http.StatusUnauthorized, "invalid email or password"},
		{"fields", fe, http.StatusBadRequest, errs.ValidationMessage},
		{"body", fmt.Errorf("%w: eof", web.ErrInvalidBody), http.StatusBadRequest, "invalid request body"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := errs.FromCore(tt.err)
			if e.HTTPStatus() != tt.status {
				t.Errorf("status = %d, want %d", e.HTTPStatus(), tt.status)
			}
			if e.Message != tt.message {
				t.Errorf("message = %q, want %q", e.Message, tt.message)
			}
		})
	}

	if e := errs.FromCore(errors.New("x")); e.Code != errs.InternalOnlyLog {
		t.Errorf("unknown error code = %v, want InternalOnlyLog", e.Code)
	}
}

func TestEncodeEnvelope(t *testing.T) {
	var fe validation.FieldErrors
	fe.Add("title", "should not be empty")
	fe.Add("priority", "must be one of low, medium, high")

	r := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)
	at := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	e := errs.NewFieldErrors(fe).WithRequest(r, at)

	data, contentType, err := e.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", contentType)
	}

	var got struct {
		Success    bool     `json:"success"`
		StatusCode int      `json:"statusCode"`
		Timestamp  string   `json:"timestamp"`
		Path       string   `json:"path"`
		Method     string   `json:"method"`
		Message    string   `json:"message"`
		Errors     []string `json:"errors"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	if got.Success || got.StatusCode != 400 || got.Path != "/api/tasks" || got.Method != "POST" {
		t.Errorf("envelope = %+v", got)
	}
	if got.Timestamp != "2026-10-17T08:00:00Z" {
		t.Errorf("timestamp = %q", got.Timestamp)
	}
	want := []string{"title should not be empty", "priority must be one of low, medium, high"}
	if len(got.Errors) != 2 || got.Errors[0] != want[0] || got.Errors[1] != want[1] {
		t.Errorf("errors = %v, want %v", got.Errors, want)
	}
}

func TestNotFoundAs(t *testing.T) {
	e := errs.FromCore(repositories.ErrNotFound).NotFoundAs("task not found")
	if e.Message != "task not found" {
		t.Errorf("message = %q", e.Message)
	}
	e = errs.FromCore(repositories.ErrConflict).NotFoundAs("task not found")
	if e.Message == "task not found" {
		t.Error("NotFoundAs changed a non NotFound error")
	}
}

func TestNewfRecordsCaller(t *testing.T) {
	e := errs.Newf(errs.Internal, "boom %d", 1)
	if e.Message != "boom 1" || e.FuncName == "" || e.FileName == "" {
		t.Errorf("got %+v", e)
	}
}
