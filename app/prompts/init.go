package prompts

import (
	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/app/categories"
	"github.com/promptaat/promptaat/app/subscriptions"
	"github.com/promptaat/promptaat/app/tools"
	"github.com/promptaat/promptaat/internal/deps"
)

const (
	RepoKey    = "prompt_repository"
	ServiceKey = "prompt_service"

	PermissionRead  = "admin:prompts:read"
	PermissionWrite = "admin:prompts:write"
)

// MountPublic mounts public prompt routes
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	promptsGroup := r.Group("/prompts")
	promptsGroup.GET("", handler.SearchPrompts)
	promptsGroup.GET("/:id", handler.GetPrompt)
}

// MountAuthenticated mounts routes that need a signed-in user
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	r.GET("/prompts/:id/content", handler.GetPromptContent)
}

// MountAdmin mounts prompt management routes
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	promptsGroup := r.Group("/prompts")
	promptsGroup.GET("", api.Can(PermissionRead), handler.AdminListPrompts)
	promptsGroup.GET("/:id", api.Can(PermissionRead), handler.AdminGetPrompt)
	promptsGroup.POST("", api.Can(PermissionWrite), handler.CreatePrompt)
	promptsGroup.PUT("/:id", api.Can(PermissionWrite), handler.UpdatePrompt)
	promptsGroup.DELETE("/:id", api.Can(PermissionWrite), handler.DeletePrompt)
}

// InitRepositories registers the prompt repository and service. The
// category, tool and subscription repositories must be registered first.
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	service := NewService(
		repo,
		deps.Repository[CategoryReader](container, categories.RepoKey),
		deps.Repository[ToolReader](container, tools.RepoKey),
		deps.Repository[SubscriptionChecker](container, subscriptions.RepoKey),
		container.Sanitizer,
		container.Logger,
	)
	container.RegisterService(ServiceKey, service)
}

func createHandler(container *deps.Container) *Handler {
	return NewHandler(deps.Service[Service](container, ServiceKey), container.Sanitizer, container.Logger)
}
