package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds decoded request bodies.
var MaxBodyBytes int64 = 1 << 20

var (
	ErrEmptyBody   = errors.New("request body is empty")
	ErrInvalidBody = errors.New("request body is not valid JSON")
)

// Param returns a path parameter from the request.
func Param(r *http.Request, key string) string {
	return r.PathValue(key)
}

// QueryParam returns a query parameter from the request.
func QueryParam(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

// Decoder represents data that can decode itself.
type Decoder interface {
	Decode(data []byte) error
}

type validator interface {
	Validate() error
}

// Decode reads the body of an HTTP request and decodes it into v. If v
// implements Validate, it is called and its error returned unwrapped so
// callers can inspect field errors.
func Decode(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("unable to read request body: %w", err)
	}

	if len(data) == 0 {
		return ErrEmptyBody
	}

	if decoder, ok := v.(Decoder); ok {
		if err := decoder.Decode(data); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
	} else if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			return err
		}
	}

	return nil
}
