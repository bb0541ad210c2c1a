// Package routerhelper is rebuilt from its call site in the teacher's
// pkg/http/router/router.go (`router_helper.NewRouteGroup(router, "/api")`,
// `group.GET/POST(...)`) — the package itself was not part of the
// retrieval pack.
package routerhelper

import "github.com/julienschmidt/httprouter"

// RouteGroup prefixes every registered route with a fixed path segment,
// so controllers register paths relative to their mount point instead of
// hard-coding "/api".
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.router.GET(g.prefix+path, handle)
}

func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.router.POST(g.prefix+path, handle)
}
