package categories

import (
	"context"

	"github.com/promptaat/promptaat/models"
)

// Repository defines the interface for category data access
type Repository interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindByParent(ctx context.Context, parentID *uint) ([]models.Category, error)
	FindChildren(ctx context.Context, parentIDs []uint) ([]models.Category, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	MaxOrder(ctx context.Context, parentID *uint) (int, error)
	CountChildren(ctx context.Context, id uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	UpdateOrders(ctx context.Context, orders map[uint]int) error
	Delete(ctx context.Context, id uint) error
}

// Service defines the interface for category business logic
type Service interface {
	GetCategoryTree(ctx context.Context) ([]CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id uint) (*CategoryResponse, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*CategoryResponse, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uint, req UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uint) error
	ReorderCategories(ctx context.Context, req ReorderRequest) error
}
