package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrClientGone is returned by Respond when the request context was
// cancelled before anything was written.
var ErrClientGone = errors.New("client disconnected")

// NoResponse is returned by handlers that wrote to the ResponseWriter
// themselves, or that only need the headers middleware already set.
type NoResponse struct{}

func NewNoResponse() NoResponse {
	return NoResponse{}
}

func (NoResponse) Encode() ([]byte, string, error) {
	return nil, "", nil
}

// JSON encodes Value as the whole body.
type JSON struct {
	Value  any
	Status int
}

func NewJSON(status int, v any) *JSON {
	return &JSON{Value: v, Status: status}
}

func (j *JSON) Encode() ([]byte, string, error) {
	data, err := json.Marshal(j.Value)
	if err != nil {
		return nil, "", err
	}
	return data, "application/json; charset=utf-8", nil
}

func (j *JSON) HTTPStatus() int {
	if j.Status == 0 {
		return http.StatusOK
	}
	return j.Status
}

type httpStatus interface {
	HTTPStatus() int
}

func statusOf(resp Encoder) int {
	switch v := resp.(type) {
	case nil:
		return http.StatusNoContent
	case httpStatus:
		return v.HTTPStatus()
	case error:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// Respond writes resp. A nil resp is 204; HEAD requests get headers only.
func Respond(ctx context.Context, w http.ResponseWriter, r *http.Request, resp Encoder) error {
	if _, ok := resp.(NoResponse); ok {
		return nil
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return ErrClientGone
	}

	status := statusOf(resp)
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return nil
	}

	data, contentType, err := resp.Encode()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("respond: encode: %w", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if r != nil && r.Method == http.MethodHead {
		return nil
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("respond: write: %w", err)
	}
	return nil
}
