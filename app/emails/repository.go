package emails

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new email log repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) Create(ctx context.Context, entry *models.EmailLog) error {
	return r.db.WithContext(ctx).Omit("User").Create(entry).Error
}

// List returns one page of logs, newest first, and the total match count
func (r *repository) List(ctx context.Context, filters *LogFilters) ([]models.EmailLog, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.EmailLog{}).
		Scopes(logScope(filters)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var logs []models.EmailLog
	if total == 0 {
		return logs, 0, nil
	}

	err = r.db.WithContext(ctx).
		Scopes(logScope(filters)).
		Order("created_at DESC").
		Offset(filters.Offset()).
		Limit(filters.PerPage).
		Find(&logs).Error
	return logs, total, err
}

func logScope(f *LogFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Template != "" {
			db = db.Where("template = ?", f.Template)
		}
		if f.Recipient != "" {
			db = db.Where("LOWER(recipient) = ?", strings.ToLower(strings.TrimSpace(f.Recipient)))
		}
		if id, err := uuid.Parse(f.UserID); err == nil {
			db = db.Where("user_id = ?", id)
		}
		return db
	}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.EmailLog, error) {
	var entry models.EmailLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
