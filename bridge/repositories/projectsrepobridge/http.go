// Package projectsrepobridge contains HTTP route registration for projects.
package projectsrepobridge

import (
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/logger"
)

type Config struct {
	Log        *logger.Logger
	Repository *projectsrepo.Repository
	Middleware []web.Middleware
}

func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository)
	g := group.Group("/projects", cfg.Middleware...)

	g.POST("", b.httpCreate)
	g.GET("", b.httpList)
	g.GET("/{project_id}", b.httpGetByID)
	g.PATCH("/{project_id}", b.httpUpdate)
	g.DELETE("/{project_id}", b.httpDelete)
}
