package mid

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/jrazmi/zentask/bridge/scaffolding/errs"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/logger"
)

// Errors turns an error returned down the chain into the failure envelope.
// Client errors are logged at Warn, server errors at Error with the source
// location. Internal details never reach the response.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.FromCore(err)
			}

			status := appErr.HTTPStatus()
			level := slog.LevelWarn
			attrs := []any{"err", err, "status", status}
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
				attrs = append(attrs,
					"source_err_file", path.Base(appErr.FileName),
					"source_err_func", path.Base(appErr.FuncName))
			}
			log.Log(ctx, level, "handled error during request", attrs...)

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Newf(errs.Internal, "Internal Server Error")
			}
			return appErr.WithRequest(r, time.Now())
		}
	}
}
