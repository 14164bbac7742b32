package tools

import (
	"context"

	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new tool repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// GetAll returns all tools ordered by name
func (r *repository) GetAll(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tools).Error
	return tools, err
}

// GetActive returns the tools listed publicly
func (r *repository) GetActive(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&tools).Error
	return tools, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*models.Tool, error) {
	var tool models.Tool
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tool).Error
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uint) ([]models.Tool, error) {
	var tools []models.Tool
	if len(ids) == 0 {
		return tools, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tools).Error
	return tools, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*models.Tool, error) {
	var tool models.Tool
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tool).Error
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

func (r *repository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Tool{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, tool *models.Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

func (r *repository) Update(ctx context.Context, tool *models.Tool) error {
	return r.db.WithContext(ctx).Save(tool).Error
}

// Delete removes the tool; prompt links go with it
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tool{}, id).Error
}
