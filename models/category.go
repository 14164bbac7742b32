package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Category is one node of the category/subcategory classification tree
type Category struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	NameEn           string    `gorm:"type:varchar(150);not null" json:"name_en"`
	NameAr           string    `gorm:"type:varchar(150);not null" json:"name_ar"`
	Slug             string    `gorm:"type:varchar(180);not null;uniqueIndex:idx_categories_slug" json:"slug"`
	ParentCategoryID *uint     `gorm:"index:idx_categories_parent_order" json:"parent_category_id"`
	Description      string    `gorm:"type:text" json:"description"`
	SortOrder        int       `gorm:"column:sort_order;not null;default:0;index:idx_categories_parent_order" json:"order"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Parent        *Category  `gorm:"foreignKey:ParentCategoryID" json:"-"`
	Subcategories []Category `gorm:"foreignKey:ParentCategoryID" json:"subcategories,omitempty"`
}

// TableName specifies the table name for Category model
func (*Category) TableName() string {
	return "categories"
}

// IsTopLevel reports whether the category has no parent
func (c *Category) IsTopLevel() bool {
	return c.ParentCategoryID == nil
}

// HasParent reports whether the category is a child of parentID
func (c *Category) HasParent(parentID uint) bool {
	return c.ParentCategoryID != nil && *c.ParentCategoryID == parentID
}

// Validate performs validation on the category model
func (c *Category) Validate() error {
	if strings.TrimSpace(c.NameEn) == "" || strings.TrimSpace(c.NameAr) == "" {
		return ErrInvalidCategoryName
	}
	if !c.IsValidSlug() {
		return ErrInvalidCategorySlug
	}
	if c.ParentCategoryID != nil && c.ID != 0 && *c.ParentCategoryID == c.ID {
		return ErrInvalidParentCategory
	}
	return nil
}

// IsValidSlug checks if the slug contains only valid characters
func (c *Category) IsValidSlug() bool {
	for _, char := range c.Slug {
		if !((char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '-') {
			return false
		}
	}
	return c.Slug != ""
}

// GetPromptCount returns the number of prompts filed under this category,
// either as their category or their subcategory
func (c *Category) GetPromptCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Prompt{}).
		Where("category_id = ? OR subcategory_id = ?", c.ID, c.ID).
		Count(&count).Error
	return count, err
}
