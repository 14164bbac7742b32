package user

import (
	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/app/emails"
	"github.com/promptaat/promptaat/internal/deps"
)

const (
	RepoKey         = "user_repository"
	ServiceKey      = "user_service"
	AdminServiceKey = "admin_service"
	AuthServiceKey  = "auth_service"
	ConfigKey       = "user_config"

	PermissionRead         = "admin:users:read"
	PermissionUpdateStatus = "admin:users:update_status"
	PermissionAssignRole   = "admin:users:assign_role"
)

// MountPublic mounts public user routes (registration, login, password reset)
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	userGroup := r.Group("/users")
	userGroup.POST("/register", handler.Register)
	userGroup.POST("/login", handler.Login)
	userGroup.POST("/verify-email", handler.VerifyEmail)
	userGroup.POST("/password-reset/request", handler.RequestPasswordReset)
	userGroup.POST("/password-reset/reset", handler.ResetPassword)
}

// MountAuthenticated mounts routes for the signed-in user
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	userGroup := r.Group("/users")
	userGroup.GET("/profile", handler.GetProfile)
	userGroup.POST("/logout", handler.Logout)
	userGroup.POST("/verify-email/request", handler.RequestEmailVerification)
}

func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	adminHandler := NewAdminHandler(
		deps.Service[AdminService](container, AdminServiceKey),
		container.Sanitizer,
		container.Logger,
	)

	usersGroup := r.Group("/users")
	usersGroup.GET("", api.Can(PermissionRead), adminHandler.GetUsers)
	usersGroup.GET("/:id", api.Can(PermissionRead), adminHandler.GetUserByID)
	usersGroup.PATCH("/:id/status", api.Can(PermissionUpdateStatus), adminHandler.UpdateUserStatus)
	usersGroup.POST("/:id/roles", api.Can(PermissionAssignRole), adminHandler.AssignRoleToUser)
	usersGroup.DELETE("/:id/roles/:role_id", api.Can(PermissionAssignRole), adminHandler.RemoveRoleFromUser)

	r.GET("/roles", api.Can(PermissionRead), adminHandler.ListRoles)
}

// InitRepositories registers the user repository and services. The email
// sender must be registered first.
func InitRepositories(container *deps.Container, cfg *Config, emailCfg *emails.Config) {
	userRepo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, userRepo)

	authService := NewAuthService(userRepo, container.Cache, container.Logger)
	container.RegisterService(AuthServiceKey, authService)

	userService := NewService(
		userRepo,
		container.TokenMaker,
		container.Cache,
		deps.Service[emails.Sender](container, emails.SenderKey),
		emailCfg.Link,
		cfg,
		container.Logger,
	)
	container.RegisterService(ServiceKey, userService)
	container.RegisterService(ConfigKey, cfg)

	container.RegisterService(AdminServiceKey, NewAdminService(userRepo, authService, container.Logger))
}

// Middleware returns the authentication middleware wired to the container
func Middleware(container *deps.Container) gin.HandlerFunc {
	cfg := deps.Service[*Config](container, ConfigKey)
	return AuthMiddleware(
		container.TokenMaker,
		deps.Service[AuthService](container, AuthServiceKey),
		cfg.CookieName,
		container.Logger,
	)
}

func createHandler(container *deps.Container) *Handler {
	return NewHandler(
		deps.Service[Service](container, ServiceKey),
		deps.Service[*Config](container, ConfigKey),
		container.Sanitizer,
		container.Logger,
	)
}
