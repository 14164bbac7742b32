package emails

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/models"
)

// Repository stores email delivery records
type Repository interface {
	Create(ctx context.Context, entry *models.EmailLog) error
	List(ctx context.Context, filters *LogFilters) ([]models.EmailLog, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.EmailLog, error)
}

// Service exposes the email log to administrators
type Service interface {
	ListLogs(ctx context.Context, filters *LogFilters) ([]EmailLogResponse, int64, error)
	GetLog(ctx context.Context, id uuid.UUID) (*EmailLogResponse, error)
}
