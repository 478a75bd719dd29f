// Package metrics publishes request counters through expvar.
package metrics

import (
	"context"
	"expvar"
	"runtime"
	"strconv"
)

type metrics struct {
	goroutines *expvar.Int
	requests   *expvar.Int
	errors     *expvar.Int
	panics     *expvar.Int
	responses  *expvar.Map
}

// expvar panics on duplicate names, so the set is built once.
var m = &metrics{
	goroutines: expvar.NewInt("goroutines"),
	requests:   expvar.NewInt("requests"),
	errors:     expvar.NewInt("errors"),
	panics:     expvar.NewInt("panics"),
	responses:  expvar.NewMap("responses"),
}

type ctxKey int

const key ctxKey = 1

// Set stores the metrics in ctx for the Add functions.
func Set(ctx context.Context) context.Context {
	return context.WithValue(ctx, key, m)
}

func get(ctx context.Context) *metrics {
	v, _ := ctx.Value(key).(*metrics)
	return v
}

// AddGoroutines records the current goroutine count.
func AddGoroutines(ctx context.Context) int64 {
	v := get(ctx)
	if v == nil {
		return 0
	}
	g := int64(runtime.NumGoroutine())
	v.goroutines.Set(g)
	return g
}

func AddRequests(ctx context.Context) int64 {
	return add(ctx, func(v *metrics) *expvar.Int { return v.requests })
}

func AddErrors(ctx context.Context) int64 {
	return add(ctx, func(v *metrics) *expvar.Int { return v.errors })
}

func AddPanics(ctx context.Context) int64 {
	return add(ctx, func(v *metrics) *expvar.Int { return v.panics })
}

// AddResponse counts a response under its status class, "2xx" through "5xx".
func AddResponse(ctx context.Context, status int) {
	v := get(ctx)
	if v == nil || status < 100 || status > 599 {
		return
	}
	v.responses.Add(strconv.Itoa(status/100)+"xx", 1)
}

func add(ctx context.Context, counter func(*metrics) *expvar.Int) int64 {
	v := get(ctx)
	if v == nil {
		return 0
	}
	c := counter(v)
	c.Add(1)
	return c.Value()
}
