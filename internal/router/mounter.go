package router

import (
	"github.com/gin-gonic/gin"
	"github.com/promptaat/promptaat/internal/deps"
)

// MountFunc represents a function that mounts routes for a module
type MountFunc func(*gin.RouterGroup, *deps.Container)

// Mounter builds the /api/v1 route groups and hands them to modules
type Mounter struct {
	container *deps.Container
	prefix    string
	auth      gin.HandlerFunc
}

// NewMounter creates a mounter; auth guards the authenticated and admin groups
func NewMounter(container *deps.Container, auth gin.HandlerFunc) *Mounter {
	return &Mounter{container: container, prefix: "/api/v1", auth: auth}
}

// Public routes - no authentication required
func (m *Mounter) Public(engine *gin.Engine) *RouteGroup {
	return &RouteGroup{group: engine.Group(m.prefix), container: m.container}
}

// Authenticated routes - requires a valid session
func (m *Mounter) Authenticated(engine *gin.Engine) *RouteGroup {
	group := engine.Group(m.prefix)
	if m.auth != nil {
		group.Use(m.auth)
	}
	return &RouteGroup{group: group, container: m.container}
}

// Admin routes - requires a valid session; modules attach per-route permissions
func (m *Mounter) Admin(engine *gin.Engine) *RouteGroup {
	group := engine.Group(m.prefix + "/admin")
	if m.auth != nil {
		group.Use(m.auth)
	}
	return &RouteGroup{group: group, container: m.container}
}

type RouteGroup struct {
	group     *gin.RouterGroup
	container *deps.Container
}

// Mount provides a fluent interface for mounting modules
func (rg *RouteGroup) Mount(mountFuncs ...MountFunc) *RouteGroup {
	for _, mount := range mountFuncs {
		mount(rg.group, rg.container)
	}
	return rg
}

// Use adds middleware to the group
func (rg *RouteGroup) Use(middleware ...gin.HandlerFunc) *RouteGroup {
	rg.group.Use(middleware...)
	return rg
}
