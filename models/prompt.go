package models

import (
	"strings"
	"time"
)

// Prompt is a single entry of the prompt catalog
type Prompt struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TitleEn       string    `gorm:"type:varchar(255);not null" json:"title_en"`
	TitleAr       string    `gorm:"type:varchar(255);not null" json:"title_ar"`
	ContentEn     string    `gorm:"type:text;not null" json:"content_en"`
	ContentAr     string    `gorm:"type:text;not null" json:"content_ar"`
	DescriptionEn string    `gorm:"type:text" json:"description_en"`
	DescriptionAr string    `gorm:"type:text" json:"description_ar"`
	CategoryID    uint      `gorm:"not null;index:idx_prompts_category" json:"category_id"`
	SubcategoryID *uint     `gorm:"index:idx_prompts_subcategory" json:"subcategory_id"`
	IsPremium     bool      `gorm:"default:false" json:"is_premium"`
	IsPublished   bool      `gorm:"default:false;index:idx_prompts_published" json:"is_published"`
	Views         int64     `gorm:"default:0" json:"views"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Subcategory *Category `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:SET NULL" json:"subcategory,omitempty"`
	Tools       []Tool    `gorm:"many2many:prompt_tools;" json:"tools,omitempty"`
}

// TableName specifies the table name for Prompt model
func (*Prompt) TableName() string {
	return "prompts"
}

// Validate performs validation on the prompt model
func (p *Prompt) Validate() error {
	if strings.TrimSpace(p.TitleEn) == "" || strings.TrimSpace(p.TitleAr) == "" {
		return ErrInvalidPromptTitle
	}
	if strings.TrimSpace(p.ContentEn) == "" || strings.TrimSpace(p.ContentAr) == "" {
		return ErrInvalidPromptContent
	}
	if p.CategoryID == 0 {
		return ErrInvalidPromptParent
	}
	if p.SubcategoryID != nil && *p.SubcategoryID == p.CategoryID {
		return ErrInvalidSubcategory
	}
	return nil
}

// ToolIDs returns the ids of the attached tools
func (p *Prompt) ToolIDs() []uint {
	ids := make([]uint, len(p.Tools))
	for i := range p.Tools {
		ids[i] = p.Tools[i].ID
	}
	return ids
}
