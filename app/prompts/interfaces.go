package prompts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/models"
)

// Repository defines the interface for prompt data access
type Repository interface {
	Search(ctx context.Context, filters *SearchFilters) ([]models.Prompt, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Prompt, error)
	IncrementViews(ctx context.Context, id uint) error
	Create(ctx context.Context, prompt *models.Prompt) error
	Update(ctx context.Context, prompt *models.Prompt, replaceTools bool) error
	Delete(ctx context.Context, id uint) error
}

// CategoryReader is the part of the category store prompts need
type CategoryReader interface {
	GetByID(ctx context.Context, id uint) (*models.Category, error)
}

// ToolReader is the part of the tool store prompts need
type ToolReader interface {
	GetByIDs(ctx context.Context, ids []uint) ([]models.Tool, error)
}

// SubscriptionChecker reports whether a user may read premium content
type SubscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userID uuid.UUID, at time.Time) (bool, error)
}

// Service defines the interface for prompt business logic
type Service interface {
	SearchPrompts(ctx context.Context, filters *SearchFilters) ([]PromptResponse, int64, error)
	GetPrompt(ctx context.Context, id uint) (*PromptResponse, error)
	GetPromptContent(ctx context.Context, id uint, userID uuid.UUID) (*PromptResponse, error)
	GetPromptForAdmin(ctx context.Context, id uint) (*PromptResponse, error)
	CreatePrompt(ctx context.Context, req *CreatePromptRequest) (*PromptResponse, error)
	UpdatePrompt(ctx context.Context, id uint, req UpdatePromptRequest) (*PromptResponse, error)
	DeletePrompt(ctx context.Context, id uint) error
}
