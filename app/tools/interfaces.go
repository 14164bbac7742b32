package tools

import (
	"context"

	"github.com/promptaat/promptaat/models"
)

// Repository defines the interface for tool data access
type Repository interface {
	GetAll(ctx context.Context) ([]models.Tool, error)
	GetActive(ctx context.Context) ([]models.Tool, error)
	GetByID(ctx context.Context, id uint) (*models.Tool, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Tool, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tool, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	Create(ctx context.Context, tool *models.Tool) error
	Update(ctx context.Context, tool *models.Tool) error
	Delete(ctx context.Context, id uint) error
}

// Service defines the interface for tool business logic
type Service interface {
	GetAllTools(ctx context.Context) ([]ToolResponse, error)
	GetActiveTools(ctx context.Context) ([]ToolResponse, error)
	GetToolBySlug(ctx context.Context, slug string) (*ToolResponse, error)
	CreateTool(ctx context.Context, req *CreateToolRequest) (*ToolResponse, error)
	UpdateTool(ctx context.Context, id uint, req UpdateToolRequest) (*ToolResponse, error)
	DeleteTool(ctx context.Context, id uint) error
}
