package prompts

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/promptaat/promptaat/internal/formatter"
	"github.com/promptaat/promptaat/models"
)

var sortOrders = map[string]string{
	SortNewest:  "created_at DESC, id DESC",
	SortOldest:  "created_at ASC, id ASC",
	SortPopular: "views DESC, id DESC",
}

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new prompt repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// Search returns one page of matching prompts and the total match count
func (r *repository) Search(ctx context.Context, filters *SearchFilters) ([]models.Prompt, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Scopes(searchScope(filters)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var prompts []models.Prompt
	if total == 0 {
		return prompts, 0, nil
	}

	order, ok := sortOrders[filters.Sort]
	if !ok {
		order = sortOrders[SortNewest]
	}

	err = r.db.WithContext(ctx).
		Scopes(searchScope(filters)).
		Preload("Tools").
		Order(order).
		Offset(filters.Offset()).
		Limit(filters.PerPage).
		Find(&prompts).Error
	return prompts, total, err
}

func searchScope(f *SearchFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !f.IncludeUnpublished {
			db = db.Where("is_published = ?", true)
		}
		if q := strings.TrimSpace(f.Q); q != "" {
			like := formatter.ContainsPattern(q)
			db = db.Where(
				"(title_en ILIKE ? OR title_ar ILIKE ? OR description_en ILIKE ? OR description_ar ILIKE ?)",
				like, like, like, like,
			)
		}
		if f.CategoryID != 0 {
			db = db.Where("category_id = ?", f.CategoryID)
		}
		if f.SubcategoryID != 0 {
			db = db.Where("subcategory_id = ?", f.SubcategoryID)
		}
		if f.ToolID != 0 {
			db = db.Where("EXISTS (SELECT 1 FROM prompt_tools pt WHERE pt.prompt_id = prompts.id AND pt.tool_id = ?)", f.ToolID)
		}
		if premium := f.PremiumOnly(); premium != nil {
			db = db.Where("is_premium = ?", *premium)
		}
		return db
	}
}

func (r *repository) GetByID(ctx context.Context, id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.WithContext(ctx).
		Preload("Tools").
		Where("id = ?", id).
		First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// IncrementViews bumps the counter in place so concurrent reads are not lost
func (r *repository) IncrementViews(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Create inserts the prompt and links the already stored tools
func (r *repository) Create(ctx context.Context, prompt *models.Prompt) error {
	return r.db.WithContext(ctx).Omit("Tools.*").Create(prompt).Error
}

// Update saves the prompt columns and, when asked, swaps its tool links
func (r *repository) Update(ctx context.Context, prompt *models.Prompt, replaceTools bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tools").Save(prompt).Error; err != nil {
			return err
		}
		if !replaceTools {
			return nil
		}
		links := tx.Model(prompt).Omit("Tools.*").Association("Tools")
		if len(prompt.Tools) == 0 {
			return links.Clear()
		}
		return links.Replace(prompt.Tools)
	})
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Prompt{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
