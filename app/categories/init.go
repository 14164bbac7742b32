package categories

import (
	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/deps"
)

const (
	RepoKey    = "category_repository"
	ServiceKey = "category_service"

	PermissionWrite = "admin:categories:write"
)

// MountPublic mounts the read-only category routes
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	categoriesGroup := r.Group("/categories")
	categoriesGroup.GET("", handler.GetCategoryTree)
	categoriesGroup.GET("/:id", handler.GetCategoryByID)
	categoriesGroup.GET("/slug/:slug", handler.GetCategoryBySlug)
}

// MountAdmin mounts category management routes
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	categoriesGroup := r.Group("/categories", api.Can(PermissionWrite))
	categoriesGroup.POST("", handler.CreateCategory)
	categoriesGroup.PUT("/reorder", handler.ReorderCategories)
	categoriesGroup.PUT("/:id", handler.UpdateCategory)
	categoriesGroup.DELETE("/:id", handler.DeleteCategory)
}

// InitRepositories registers the category repository and service. cfg may be nil.
func InitRepositories(container *deps.Container, cfg *Config) {
	if cfg == nil {
		cfg = GetDefaultConfig()
	}
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)
	container.RegisterService(ServiceKey, NewService(repo, cfg, container.Sanitizer, container.Logger))
}

func createHandler(container *deps.Container) *Handler {
	return NewHandler(deps.Service[Service](container, ServiceKey), container.Logger)
}
