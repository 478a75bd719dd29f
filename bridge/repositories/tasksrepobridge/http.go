// Package tasksrepobridge contains HTTP route registration for tasks.
package tasksrepobridge

import (
	"github.com/jrazmi/zentask/core/repositories/tasksrepo"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/logger"
)

type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers the task routes. The fixed paths win over
// {task_id} because the mux prefers the most specific pattern.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository)
	g := group.Group("/tasks", cfg.Middleware...)

	g.POST("", b.httpCreate)
	g.GET("", b.httpList)
	g.GET("/today", b.httpToday)
	g.GET("/upcoming", b.httpUpcoming)
	g.POST("/reorder", b.httpReorder)
	g.GET("/{task_id}", b.httpGetByID)
	g.PATCH("/{task_id}", b.httpUpdate)
	g.DELETE("/{task_id}", b.httpDelete)
}
