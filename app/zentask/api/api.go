// Package api mounts the zentask routes on a web handler.
package api

import (
	"context"
	"expvar"
	"net/http"

	"github.com/jrazmi/zentask/app/zentask/config"
	"github.com/jrazmi/zentask/bridge/repositories/authbridge"
	"github.com/jrazmi/zentask/bridge/repositories/projectsrepobridge"
	"github.com/jrazmi/zentask/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/zentask/bridge/scaffolding/errs"
	"github.com/jrazmi/zentask/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/zentask/bridge/scaffolding/mid"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/telemetry"
)

// NewWebHandler builds the handler with the global middleware chain and
// every route registered.
func NewWebHandler(site *config.Site, opts web.HandlerOptions) *web.WebHandler {
	log := site.Log

	app := web.NewWebHandler(opts,
		web.WithLogging(log.Logger),
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log),
			mid.Metrics(),
			mid.Panics(),
		),
	)

	AddHandlers(app, site)
	return app
}

// AddHandlers registers health, metrics and the API groups.
func AddHandlers(app *web.WebHandler, site *config.Site) {
	app.GET("/health", health(site))
	app.HandleRaw("GET /debug/vars", expvar.Handler())

	authenticated := []web.Middleware{mid.Authenticate(site.Auth)}
	group := app.Group(site.Config.APIRoute)
	repos := site.Datastore.Repositories

	authbridge.AddHttpRoutes(group, authbridge.Config{
		Log:           site.Log,
		Auth:          site.Auth,
		Authenticated: authenticated,
	})
	projectsrepobridge.AddHttpRoutes(group, projectsrepobridge.Config{
		Log:        site.Log,
		Repository: repos.Projects,
		Middleware: authenticated,
	})
	tasksrepobridge.AddHttpRoutes(group, tasksrepobridge.Config{
		Log:        site.Log,
		Repository: repos.Tasks,
		Middleware: authenticated,
	})
}

type healthStatus struct {
	Status string `json:"status"`
	Build  string `json:"build"`
	Driver string `json:"driver"`
}

func health(site *config.Site) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		if err := site.Datastore.StatusCheck(ctx); err != nil {
			site.Log.ErrorContext(ctx, "health", "error", err)
			return errs.Newf(errs.Internal, "database not ready")
		}
		return fopbridge.OK(r, healthStatus{
			Status: "ok",
			Build:  site.Build,
			Driver: site.Datastore.Driver,
		})
	}
}
