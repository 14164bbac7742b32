package models

import (
	"net/url"
	"strings"
	"time"
)

// Tool represents an AI tool that prompts can target (ChatGPT, Midjourney, ...)
type Tool struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_tools_slug" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	WebsiteURL  string    `gorm:"type:varchar(255)" json:"website_url"`
	IconURL     string    `gorm:"type:varchar(255)" json:"icon_url"`
	IsActive    *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Prompts []Prompt `gorm:"many2many:prompt_tools;" json:"-"`
}

// TableName specifies the table name for Tool model
func (*Tool) TableName() string {
	return "tools"
}

// Active reports whether the tool is listed publicly
func (t *Tool) Active() bool {
	return t.IsActive == nil || *t.IsActive
}

// Validate performs validation on the tool model
func (t *Tool) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidToolName
	}
	for _, raw := range []string{t.WebsiteURL, t.IconURL} {
		if raw == "" {
			continue
		}
		u, err := url.ParseRequestURI(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidToolURL
		}
	}
	return nil
}
