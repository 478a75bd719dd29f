package mid

import (
	"context"
	"net/http"

	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/logger"
	"github.com/jrazmi/zentask/sdk/telemetry"
)

type statusCoder interface {
	HTTPStatus() int
}

// Logger writes one line when a request starts and one when it completes.
func Logger(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			p := r.URL.Path
			if r.URL.RawQuery != "" {
				p = p + "?" + r.URL.RawQuery
			}

			log.InfoContext(ctx, "request started", "method", r.Method, "path", p, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			log.InfoContext(ctx, "request completed", "method", r.Method, "path", p,
				"status", responseStatus(resp), "since", telemetry.Since(ctx).String())

			return resp
		}
	}
}
