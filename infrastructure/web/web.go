// Package web is a small framework over net/http: handlers return an
// Encoder and the framework writes it.
package web

import (
	"context"
	"net/http"
)

// Encoder defines behavior that can encode a data model and provide
// the content type for that encoding.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// HandlerFunc represents a function that handles a http request and returns something to encode
type HandlerFunc func(ctx context.Context, r *http.Request) Encoder

// Middleware wraps a HandlerFunc
type Middleware func(HandlerFunc) HandlerFunc

// Telemetry assigns and reads a per-request trace id.
type Telemetry interface {
	SetTraceID(ctx context.Context, incoming string) context.Context
	GetTraceID(ctx context.Context) string
}

// TraceHeader carries the trace id in and out of the service.
const TraceHeader = "X-Request-ID"

type ctxKey int

const writerKey ctxKey = 1

func setWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, writerKey, w)
}

// GetWriter returns the underlying writer for middleware that must set
// headers before the response is encoded.
func GetWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(writerKey).(http.ResponseWriter)
	if !ok {
		return nil
	}
	return w
}
