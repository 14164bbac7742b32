package catalogs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/promptaat/promptaat/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// ListByUser returns the user's catalogs, newest first, with prompt counts
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]CatalogSummary, error) {
	var rows []CatalogSummary
	err := r.db.WithContext(ctx).
		Model(&models.Catalog{}).
		Select("catalogs.id, catalogs.name, catalogs.created_at, catalogs.updated_at, (SELECT COUNT(*) FROM catalog_prompts cp WHERE cp.catalog_id = catalogs.id) AS prompt_count").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Scan(&rows).Error
	return rows, err
}

// GetByID loads the catalog with its prompts and their tools
func (r *repository) GetByID(ctx context.Context, id uint) (*models.Catalog, error) {
	var catalog models.Catalog
	err := r.db.WithContext(ctx).
		Preload("Prompts", func(db *gorm.DB) *gorm.DB {
			return db.Order("prompts.id ASC")
		}).
		Preload("Prompts.Tools").
		Where("id = ?", id).
		First(&catalog).Error
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *repository) Create(ctx context.Context, catalog *models.Catalog) error {
	return r.db.WithContext(ctx).Omit("Prompts", "User").Create(catalog).Error
}

func (r *repository) Rename(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.Catalog{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Catalog{}, id).Error
}

// AddPrompt links the prompt; adding it twice is a no-op
func (r *repository) AddPrompt(ctx context.Context, catalogID, promptID uint) error {
	return r.db.WithContext(ctx).
		Table("catalog_prompts").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]interface{}{"catalog_id": catalogID, "prompt_id": promptID}).Error
}

func (r *repository) RemovePrompt(ctx context.Context, catalogID, promptID uint) error {
	result := r.db.WithContext(ctx).
		Exec("DELETE FROM catalog_prompts WHERE catalog_id = ? AND prompt_id = ?", catalogID, promptID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
