package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/zentask/bridge/scaffolding/errs"
	"github.com/jrazmi/zentask/bridge/scaffolding/metrics"
	"github.com/jrazmi/zentask/infrastructure/web"
)

// goroutineSample is how many requests pass between goroutine samples.
const goroutineSample = 1000

// Metrics counts requests, errors and responses by status class.
func Metrics() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = metrics.Set(ctx)
			resp := next(ctx, r)

			if metrics.AddRequests(ctx)%goroutineSample == 0 {
				metrics.AddGoroutines(ctx)
			}
			if isError(resp) != nil {
				metrics.AddErrors(ctx)
			}
			metrics.AddResponse(ctx, responseStatus(resp))

			return resp
		}
	}
}

func responseStatus(resp web.Encoder) int {
	if err := isError(resp); err != nil {
		var appErr *errs.Error
		if errors.As(err, &appErr) {
			return appErr.HTTPStatus()
		}
		return errs.FromCore(err).HTTPStatus()
	}
	if sc, ok := resp.(statusCoder); ok {
		return sc.HTTPStatus()
	}
	if resp == nil {
		return http.StatusNoContent
	}
	return http.StatusOK
}
