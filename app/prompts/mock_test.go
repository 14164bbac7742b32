package prompts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Search(ctx context.Context, filters *SearchFilters) ([]models.Prompt, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Prompt), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*models.Prompt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockRepository) IncrementViews(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	return m.Called(ctx, prompt).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, prompt *models.Prompt, replaceTools bool) error {
	return m.Called(ctx, prompt, replaceTools).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// categoryStore serves categories from a map
type categoryStore map[uint]models.Category

func (s categoryStore) GetByID(_ context.Context, id uint) (*models.Category, error) {
	c, ok := s[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

// toolStore serves tools from a map
type toolStore map[uint]models.Tool

func (s toolStore) GetByIDs(_ context.Context, ids []uint) ([]models.Tool, error) {
	var found []models.Tool
	for _, id := range ids {
		if t, ok := s[id]; ok {
			found = append(found, t)
		}
	}
	return found, nil
}

// subscribers reports an active subscription for the listed users
type subscribers map[uuid.UUID]bool

func (s subscribers) HasActiveSubscription(_ context.Context, userID uuid.UUID, _ time.Time) (bool, error) {
	return s[userID], nil
}
