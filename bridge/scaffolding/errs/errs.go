// Package errs is the error type every bridge handler returns. It
// encodes itself as the failure envelope.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/validation"
)

// Code classifies an error and fixes its HTTP status.
type Code int

const (
	OK Code = iota
	InvalidArgument
	Unauthenticated
	PermissionDenied
	NotFound
	AlreadyExists
	Internal
	// InternalOnlyLog is logged in full and answered as a plain Internal.
	InternalOnlyLog
)

var httpStatus = map[Code]int{
	OK:               http.StatusOK,
	InvalidArgument:  http.StatusBadRequest,
	Unauthenticated:  http.StatusUnauthorized,
	PermissionDenied: http.StatusForbidden,
	NotFound:         http.StatusNotFound,
	AlreadyExists:    http.StatusConflict,
	Internal:         http.StatusInternalServerError,
	InternalOnlyLog:  http.StatusInternalServerError,
}

// ValidationMessage heads every field validation failure.
const ValidationMessage = "validation failed"

// Error is an application error plus the request it answers.
type Error struct {
	Code     Code
	Message  string
	Fields   []string
	FuncName string
	FileName string

	Path      string
	Method    string
	Timestamp time.Time
}

// New wraps err with code, keeping err's text as the message.
func New(code Code, err error) *Error {
	return newError(code, err.Error())
}

// Newf builds an error from a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return newError(code, fmt.Sprintf(format, args...))
}

func newError(code Code, msg string) *Error {
	e := &Error{Code: code, Message: msg}
	if pc, file, line, ok := runtime.Caller(2); ok {
		e.FileName = fmt.Sprintf("%s:%d", file, line)
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.FuncName = fn.Name()
		}
	}
	return e
}

// NewFieldErrors reports input validation failures.
func NewFieldErrors(fe validation.FieldErrors) *Error {
	e := newError(InvalidArgument, ValidationMessage)
	e.Fields = fe.Messages()
	return e
}

// FromCore maps a core error to a code. Unknown errors become
// InternalOnlyLog so their text is not sent to the client.
func FromCore(err error) *Error {
	var fe validation.FieldErrors
	var denial *repositories.Denial
	switch {
	case errors.As(err, &fe):
		e := newError(InvalidArgument, ValidationMessage)
		e.Fields = fe.Messages()
		return e
	case errors.Is(err, web.ErrEmptyBody), errors.Is(err, web.ErrInvalidBody):
		return newError(InvalidArgument, "invalid request body")
	case errors.Is(err, authcase.ErrUnauthorized):
		return newError(Unauthenticated, authcase.ErrUnauthorized.Error())
	case errors.Is(err, repositories.ErrNotFound):
		return newError(NotFound, "resource not found")
	case errors.As(err, &denial):
		return newError(PermissionDenied, denial.Reason)
	case errors.Is(err, repositories.ErrForbidden):
		return newError(PermissionDenied, repositories.ErrForbidden.Error())
	case errors.Is(err, repositories.ErrConflict):
		return newError(AlreadyExists, "resource already exists")
	}
	return newError(InternalOnlyLog, err.Error())
}

// NotFoundAs names the missing resource when e is a NotFound.
func (e *Error) NotFoundAs(msg string) *Error {
	if e.Code == NotFound {
		e.Message = msg
	}
	return e
}

// WithRequest stamps the request coordinates shown in the envelope.
func (e *Error) WithRequest(r *http.Request, now time.Time) *Error {
	e.Path = r.URL.Path
	e.Method = r.Method
	e.Timestamp = now.UTC()
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) HTTPStatus() int {
	if s, ok := httpStatus[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type envelope struct {
	Success    bool      `json:"success"`
	StatusCode int       `json:"statusCode"`
	Timestamp  time.Time `json:"timestamp"`
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	Message    string    `json:"message"`
	Errors     []string  `json:"errors,omitempty"`
}

func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(envelope{
		StatusCode: e.HTTPStatus(),
		Timestamp:  e.Timestamp,
		Path:       e.Path,
		Method:     e.Method,
		Message:    e.Message,
		Errors:     e.Fields,
	})
	return data, "application/json; charset=utf-8", err
}
