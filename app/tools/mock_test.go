package tools

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/promptaat/promptaat/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]models.Tool, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *MockRepository) GetActive(ctx context.Context) ([]models.Tool, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*models.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tool), args.Error(1)
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Tool, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*models.Tool, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tool), args.Error(1)
}

func (m *MockRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, tool *models.Tool) error {
	return m.Called(ctx, tool).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, tool *models.Tool) error {
	return m.Called(ctx, tool).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
