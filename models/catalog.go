package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Catalog is a user-owned collection of saved prompts
type Catalog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_catalogs_user" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Prompts []Prompt `gorm:"many2many:catalog_prompts;" json:"prompts,omitempty"`
}

// TableName specifies the table name for Catalog model
func (*Catalog) TableName() string {
	return "catalogs"
}

// IsOwnedBy checks whether the catalog belongs to the given user
func (c *Catalog) IsOwnedBy(userID uuid.UUID) bool {
	return c.UserID == userID
}

// Validate performs validation on the catalog model
func (c *Catalog) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	name := strings.TrimSpace(c.Name)
	if name == "" || len([]rune(name)) > 100 {
		return ErrInvalidCatalogName
	}
	return nil
}
