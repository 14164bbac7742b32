package subscriptions

import (
	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/deps"
)

const (
	RepoKey    = "subscription_repository"
	ServiceKey = "subscription_service"

	PermissionWrite = "admin:plans:write"
)

// MountPublic mounts the plan catalogue
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	r.GET("/plans", handler.ListPlans)
}

// MountAuthenticated mounts the signed-in user's subscription routes
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	subsGroup := r.Group("/subscriptions")
	subsGroup.POST("", handler.Subscribe)
	subsGroup.GET("/current", handler.GetCurrent)
	subsGroup.DELETE("/current", handler.Cancel)
}

// MountAdmin mounts plan management routes
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	plansGroup := r.Group("/plans", api.Can(PermissionWrite))
	plansGroup.GET("", handler.AdminListPlans)
	plansGroup.POST("", handler.CreatePlan)
	plansGroup.PATCH("/:id", handler.UpdatePlan)
}

// InitRepositories initializes and registers the repository and service for this module
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)
	container.RegisterService(ServiceKey, NewService(repo, container.Sanitizer, container.Logger, container.Now))
}

func createHandler(container *deps.Container) *Handler {
	return NewHandler(deps.Service[Service](container, ServiceKey), container.Logger)
}
