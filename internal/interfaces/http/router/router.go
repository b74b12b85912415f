// Package router assembles the gin engine and registers the API routes.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// Route is one endpoint of a DomainGroup, relative to the group prefix
type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

// DomainGroup collects the routes of one domain under a shared prefix
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []Route
}

// NewDomainGroup creates a route group such as ("sales", "/sales")
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware that runs only for this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) GET(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, relativePath, handlers)
}

func (dg *DomainGroup) POST(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, relativePath, handlers)
}

func (dg *DomainGroup) PATCH(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPatch, relativePath, handlers)
}

func (dg *DomainGroup) DELETE(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, relativePath, handlers)
}

func (dg *DomainGroup) add(method, relativePath string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, Route{Method: method, Path: relativePath, Handlers: handlers})
	return dg
}

// Name returns the group name
func (dg *DomainGroup) Name() string { return dg.name }

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// Routes returns the group's routes in registration order
func (dg *DomainGroup) Routes() []Route {
	return append([]Route(nil), dg.routes...)
}

// mount registers the group on parent and returns the mounted endpoints
func (dg *DomainGroup) mount(parent *gin.RouterGroup) []gin.RouteInfo {
	group := parent.Group(dg.prefix, dg.middleware...)
	mounted := make([]gin.RouteInfo, 0, len(dg.routes))
	for _, route := range dg.routes {
		group.Handle(route.Method, route.Path, route.Handlers...)
		mounted = append(mounted, gin.RouteInfo{
			Method: route.Method,
			Path:   joinPath(group.BasePath(), route.Path),
		})
	}
	return mounted
}

// Router mounts domain groups under /api/{version}
type Router struct {
	engine  *gin.Engine
	version string
	groups  []*DomainGroup
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the version segment of the base path, "v1" by default
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.version = version
	}
}

// NewRouter creates a Router on engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues groups for Setup
func (r *Router) Register(groups ...*DomainGroup) *Router {
	r.groups = append(r.groups, groups...)
	return r
}

// BasePath returns the prefix shared by all groups
func (r *Router) BasePath() string {
	return "/api/" + r.version
}

// Setup mounts every registered group and returns the endpoints it added
func (r *Router) Setup() []gin.RouteInfo {
	api := r.engine.Group(r.BasePath())
	var mounted []gin.RouteInfo
	for _, g := range r.groups {
		mounted = append(mounted, g.mount(api)...)
	}
	return mounted
}

// joinPath joins like gin does, keeping an empty relative path as the base itself
func joinPath(base, relative string) string {
	if relative == "" {
		return base
	}
	joined := path.Join(base, relative)
	if relative[len(relative)-1] == '/' && joined[len(joined)-1] != '/' {
		return joined + "/"
	}
	return joined
}
