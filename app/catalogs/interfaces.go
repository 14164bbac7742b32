package catalogs

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/models"
)

// Repository defines the interface for catalog data access
type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]CatalogSummary, error)
	GetByID(ctx context.Context, id uint) (*models.Catalog, error)
	Create(ctx context.Context, catalog *models.Catalog) error
	Rename(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
	AddPrompt(ctx context.Context, catalogID, promptID uint) error
	RemovePrompt(ctx context.Context, catalogID, promptID uint) error
}

// PromptReader is the part of the prompt store catalogs need
type PromptReader interface {
	GetByID(ctx context.Context, id uint) (*models.Prompt, error)
}

// Service defines the interface for catalog business logic. Every call is
// scoped to the owner; catalogs of other users read as not found.
type Service interface {
	ListCatalogs(ctx context.Context, userID uuid.UUID) ([]CatalogResponse, error)
	GetCatalog(ctx context.Context, userID uuid.UUID, id uint) (*CatalogResponse, error)
	CreateCatalog(ctx context.Context, userID uuid.UUID, req *CatalogRequest) (*CatalogResponse, error)
	RenameCatalog(ctx context.Context, userID uuid.UUID, id uint, req *CatalogRequest) (*CatalogResponse, error)
	DeleteCatalog(ctx context.Context, userID uuid.UUID, id uint) error
	AddPrompt(ctx context.Context, userID uuid.UUID, id, promptID uint) error
	RemovePrompt(ctx context.Context, userID uuid.UUID, id, promptID uint) error
}
