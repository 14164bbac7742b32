package emails

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

type service struct {
	repo Repository
}

// NewService creates the email log service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListLogs(ctx context.Context, filters *LogFilters) ([]EmailLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	out := make([]EmailLogResponse, len(logs))
	for i := range logs {
		out[i] = ToEmailLogResponse(&logs[i])
	}
	return out, total, nil
}

func (s *service) GetLog(ctx context.Context, id uuid.UUID) (*EmailLogResponse, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}

	resp := ToEmailLogResponse(entry)
	return &resp, nil
}
