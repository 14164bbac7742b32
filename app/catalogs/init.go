package catalogs

import (
	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/prompts"
	"github.com/promptaat/promptaat/internal/deps"
)

const (
	RepoKey = "catalog_repository"
)

// MountAuthenticated mounts the signed-in user's catalog routes
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	catalogsGroup := r.Group("/catalogs")
	catalogsGroup.GET("", handler.ListCatalogs)
	catalogsGroup.POST("", handler.CreateCatalog)
	catalogsGroup.GET("/:id", handler.GetCatalog)
	catalogsGroup.PUT("/:id", handler.RenameCatalog)
	catalogsGroup.DELETE("/:id", handler.DeleteCatalog)
	catalogsGroup.POST("/:id/prompts", handler.AddPrompt)
	catalogsGroup.DELETE("/:id/prompts/:prompt_id", handler.RemovePrompt)
}

// InitRepositories initializes and registers repositories for this module
func InitRepositories(container *deps.Container) {
	container.RegisterRepository(RepoKey, NewRepository(container.DB))
}

func createHandler(container *deps.Container) *Handler {
	service := NewService(
		deps.Repository[Repository](container, RepoKey),
		deps.Repository[PromptReader](container, prompts.RepoKey),
		container.Sanitizer,
		container.Logger,
	)
	return NewHandler(service, container.Logger)
}
