package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/models"
)

func newTestService(repo Repository) Service {
	return NewService(repo, sanitizer.NewHTMLStripper(), logger.NewNullLogger())
}

func TestService_GetActiveTools(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		ctx := context.Background()
		mockRepo.On("GetActive", ctx).Return([]models.Tool{{ID: 1, Name: "ChatGPT", Slug: "chatgpt"}}, nil)

		result, err := newTestService(mockRepo).GetActiveTools(ctx)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.True(t, result[0].IsActive)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository Error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		ctx := context.Background()
		mockRepo.On("GetActive", ctx).Return([]models.Tool{}, assert.AnError)

		result, err := newTestService(mockRepo).GetActiveTools(ctx)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestService_GetToolBySlug(t *testing.T) {
	ctx := context.Background()
	inactive := false

	t.Run("Inactive tool is hidden", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetBySlug", ctx, "dall-e").Return(&models.Tool{ID: 2, Name: "DALL-E", IsActive: &inactive}, nil)

		_, err := newTestService(mockRepo).GetToolBySlug(ctx, "dall-e")
		assert.ErrorIs(t, err, models.ErrRecordNotFound)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetBySlug", ctx, "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := newTestService(mockRepo).GetToolBySlug(ctx, "nope")
		assert.ErrorIs(t, err, models.ErrRecordNotFound)
	})
}

func TestService_CreateTool(t *testing.T) {
	ctx := context.Background()

	t.Run("Slug gets a suffix on collision", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("SlugExists", ctx, "midjourney", uint(0)).Return(true, nil)
		mockRepo.On("SlugExists", ctx, "midjourney-1", uint(0)).Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Tool")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Tool).ID = 3
		}).Return(nil)

		result, err := newTestService(mockRepo).CreateTool(ctx, &CreateToolRequest{
			Name:       " <i>Midjourney</i> ",
			WebsiteURL: "https://midjourney.com",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(3), result.ID)
		assert.Equal(t, "Midjourney", result.Name)
		assert.Equal(t, "midjourney-1", result.Slug)
		assert.True(t, result.IsActive)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid URL", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("SlugExists", ctx, "claude", uint(0)).Return(false, nil)

		_, err := newTestService(mockRepo).CreateTool(ctx, &CreateToolRequest{Name: "Claude", IconURL: "icon.png"})

		assert.ErrorIs(t, err, models.ErrInvalidToolURL)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_UpdateTool(t *testing.T) {
	ctx := context.Background()

	t.Run("Rename regenerates slug", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, uint(1)).Return(&models.Tool{ID: 1, Name: "GPT", Slug: "gpt"}, nil)
		mockRepo.On("SlugExists", ctx, "chatgpt", uint(1)).Return(false, nil)
		mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Tool")).Return(nil)

		name := "ChatGPT"
		result, err := newTestService(mockRepo).UpdateTool(ctx, 1, UpdateToolRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "chatgpt", result.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Deactivate keeps slug", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, uint(1)).Return(&models.Tool{ID: 1, Name: "GPT", Slug: "gpt"}, nil)
		mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Tool")).Return(nil)

		off := false
		result, err := newTestService(mockRepo).UpdateTool(ctx, 1, UpdateToolRequest{IsActive: &off})

		require.NoError(t, err)
		assert.Equal(t, "gpt", result.Slug)
		assert.False(t, result.IsActive)
		mockRepo.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := newTestService(mockRepo).UpdateTool(ctx, 9, UpdateToolRequest{})
		assert.ErrorIs(t, err, models.ErrRecordNotFound)
	})
}

func TestService_DeleteTool(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, uint(4)).Return(&models.Tool{ID: 4}, nil)
		mockRepo.On("Delete", ctx, uint(4)).Return(nil)

		assert.NoError(t, newTestService(mockRepo).DeleteTool(ctx, 4))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, uint(4)).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, newTestService(mockRepo).DeleteTool(ctx, 4), models.ErrRecordNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
