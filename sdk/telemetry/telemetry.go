// Package telemetry carries per-request trace values through a context.
package telemetry

import (
	"context"
	"time"

	"github.com/jrazmi/zentask/sdk/cryptids"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
	startKey
)

const noTrace = "--------NOTRACE--------"

// TraceValues summarises a request for logging.
type TraceValues struct {
	TraceID    string
	Now        time.Time
	StatusCode int
}

type Telemetry struct{}

func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores incoming as the trace id, or a fresh random id when
// incoming is empty. The request start time is stored alongside.
func (t Telemetry) SetTraceID(ctx context.Context, incoming string) context.Context {
	ctx = context.WithValue(ctx, startKey, time.Now())
	if incoming != "" && len(incoming) <= 64 {
		return context.WithValue(ctx, traceIDKey, incoming)
	}
	tid, err := cryptids.GenerateID()
	if err != nil {
		return context.WithValue(ctx, traceIDKey, noTrace)
	}
	return context.WithValue(ctx, traceIDKey, tid)
}

func (t Telemetry) GetTraceID(ctx context.Context) string {
	return GetTraceID(ctx)
}

// GetTraceID reads the trace id without a Telemetry value at hand.
func GetTraceID(ctx context.Context) string {
	if v, ok := TraceID(ctx); ok {
		return v
	}
	return noTrace
}

// TraceID reports the trace id and whether ctx belongs to a traced request.
func TraceID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(traceIDKey).(string)
	return v, ok
}

// Since reports how long ago the request started.
func Since(ctx context.Context) time.Duration {
	start, ok := ctx.Value(startKey).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}
