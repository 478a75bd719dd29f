package web

import (
	"slices"
	"strings"
)

// RouteGroup registers routes under a shared path prefix and middleware.
// Group middleware runs before route middleware.
type RouteGroup struct {
	webHandler *WebHandler
	prefix     string
	middleware []Middleware
}

func (wh *WebHandler) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: wh,
		prefix:     cleanPrefix(prefix),
		middleware: middleware,
	}
}

// Group nests a group, inheriting the parent's prefix and middleware.
func (g *RouteGroup) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: g.webHandler,
		prefix:     g.prefix + cleanPrefix(prefix),
		middleware: append(slices.Clip(g.middleware), middleware...),
	}
}

// Prefix is the group's full path prefix, "" for the root.
func (g *RouteGroup) Prefix() string {
	return g.prefix
}

// Handle registers path under the group prefix. An empty path is the
// prefix itself.
func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	full := g.prefix + path
	switch {
	case full == "":
		full = "/"
	case path != "" && !strings.HasPrefix(path, "/"):
		full = g.prefix + "/" + path
	}
	all := append(slices.Clip(g.middleware), middleware...)
	g.webHandler.Handle(method, full, handler, all...)
}

// cleanPrefix returns prefix with one leading slash and no trailing slash,
// so "/", "" and "api/" become "", "" and "/api".
func cleanPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
