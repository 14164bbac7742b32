package tools

import (
	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/deps"
)

const (
	RepoKey = "tool_repository"

	PermissionWrite = "admin:tools:write"
)

// MountPublic mounts public tool routes
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	toolsGroup := r.Group("/tools")
	toolsGroup.GET("", handler.GetActiveTools)
	toolsGroup.GET("/:slug", handler.GetToolBySlug)
}

// MountAdmin mounts tool management routes
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	toolsGroup := r.Group("/tools", api.Can(PermissionWrite))
	toolsGroup.GET("", handler.GetAllTools)
	toolsGroup.POST("", handler.CreateTool)
	toolsGroup.PUT("/:id", handler.UpdateTool)
	toolsGroup.DELETE("/:id", handler.DeleteTool)
}

// InitRepositories initializes and registers repositories for this module
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)
}

func createHandler(container *deps.Container) *Handler {
	repo := deps.Repository[Repository](container, RepoKey)
	return NewHandler(NewService(repo, container.Sanitizer, container.Logger))
}
