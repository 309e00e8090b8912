// Package router assembles the gin engine of the refund API.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// Group is a path prefix with its own middleware and route table.
type Group struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewGroup(prefix string, mw ...gin.HandlerFunc) *Group {
	return &Group{prefix: prefix, middleware: mw}
}

func (g *Group) Handle(method, relativePath string, handlers ...gin.HandlerFunc) *Group {
	g.routes = append(g.routes, route{method: method, path: relativePath, handlers: handlers})
	return g
}

func (g *Group) GET(p string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodGet, p, handlers...)
}

func (g *Group) POST(p string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPost, p, handlers...)
}

func (g *Group) PUT(p string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPut, p, handlers...)
}

// Mount registers groups under /api/<version> behind mw and returns the
// mounted routes as "METHOD /path" lines in registration order.
func Mount(engine *gin.Engine, version string, mw []gin.HandlerFunc, groups ...*Group) []string {
	api := engine.Group("/api/"+version, mw...)
	var mounted []string
	for _, g := range groups {
		rg := api.Group(g.prefix, g.middleware...)
		for _, r := range g.routes {
			rg.Handle(r.method, r.path, r.handlers...)
			mounted = append(mounted, r.method+" "+path.Join(rg.BasePath(), r.path))
		}
	}
	return mounted
}
