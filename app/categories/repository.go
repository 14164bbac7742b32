package categories

import (
	"context"
	"maps"
	"slices"

	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new category repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// FindAll returns every category, top-level groups first, each group by order
func (r *repository) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Order("parent_category_id ASC NULLS FIRST, sort_order ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&categories).Error
	return categories, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByParent returns the sibling group of parentID; nil selects the top level
func (r *repository) FindByParent(ctx context.Context, parentID *uint) ([]models.Category, error) {
	var categories []models.Category
	err := siblingScope(r.db.WithContext(ctx), parentID).
		Order("sort_order ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

// FindChildren returns the direct children of any of parentIDs
func (r *repository) FindChildren(ctx context.Context, parentIDs []uint) ([]models.Category, error) {
	var categories []models.Category
	if len(parentIDs) == 0 {
		return categories, nil
	}
	err := r.db.WithContext(ctx).
		Where("parent_category_id IN ?", parentIDs).
		Order("sort_order ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

// SlugExists reports whether a category other than excludeID uses slug
func (r *repository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// MaxOrder returns the highest order in the sibling group, 0 when it is empty
func (r *repository) MaxOrder(ctx context.Context, parentID *uint) (int, error) {
	var maxOrder int
	err := siblingScope(r.db.WithContext(ctx).Model(&models.Category{}), parentID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error
	return maxOrder, err
}

func (r *repository) CountChildren(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_category_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// UpdateOrders writes every id → order pair in one transaction, lowest id first
func (r *repository) UpdateOrders(ctx context.Context, orders map[uint]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range slices.Sorted(maps.Keys(orders)) {
			result := tx.Model(&models.Category{}).
				Where("id = ?", id).
				Update("sort_order", orders[id])
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

func siblingScope(db *gorm.DB, parentID *uint) *gorm.DB {
	if parentID == nil {
		return db.Where("parent_category_id IS NULL")
	}
	return db.Where("parent_category_id = ?", *parentID)
}
