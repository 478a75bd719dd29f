// Package authbridge exposes registration, login and token checks over
// HTTP.
package authbridge

import (
	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/logger"
)

type Config struct {
	Log  *logger.Logger
	Auth *authcase.Case
	// Authenticated wraps routes that need a bearer token.
	Authenticated []web.Middleware
}

func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Auth)

	group.POST("/auth/register", b.httpRegister)
	group.POST("/auth/login", b.httpLogin)
	group.GET("/auth/verify", b.httpVerify, cfg.Authenticated...)
	group.GET("/auth/profile", b.httpProfile, cfg.Authenticated...)
}
