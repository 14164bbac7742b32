package emails

import (
	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/deps"
)

const (
	RepoKey    = "email_log_repository"
	SenderKey  = "email_sender"
	ServiceKey = "email_log_service"

	PermissionRead = "admin:emails:read"
)

// MountAdmin mounts the email log routes
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(deps.Service[Service](container, ServiceKey), container.Sanitizer, container.Logger)

	emailsGroup := r.Group("/emails", api.Can(PermissionRead))
	emailsGroup.GET("", handler.ListLogs)
	emailsGroup.GET("/:id", handler.GetLog)
}

// InitRepositories registers the email log repository, the sender and the admin service
func InitRepositories(container *deps.Container, cfg *Config) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	transport := LogTransport{Logger: container.Logger}
	container.RegisterService(SenderKey, NewSender(cfg, transport, repo, container.Logger))
	container.RegisterService(ServiceKey, NewService(repo))
}
