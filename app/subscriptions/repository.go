package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new subscription repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// ListPlans returns plans cheapest first
func (r *repository) ListPlans(ctx context.Context, activeOnly bool) ([]models.Plan, error) {
	var plans []models.Plan
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("price ASC, id ASC").Find(&plans).Error
	return plans, err
}

func (r *repository) GetPlanByID(ctx context.Context, id uint) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repository) CreatePlan(ctx context.Context, plan *models.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *repository) UpdatePlan(ctx context.Context, plan *models.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// GetActiveSubscription returns the subscription in the active state, ended or not
func (r *repository) GetActiveSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("starts_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// HasActiveSubscription reports whether the user has a subscription covering at
func (r *repository) HasActiveSubscription(ctx context.Context, userID uuid.UUID, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND status = ? AND starts_at <= ? AND ends_at > ?",
			userID, models.SubscriptionStatusActive, at, at).
		Count(&count).Error
	return count > 0, err
}

// ReplaceActive cancels the user's active subscription and stores sub in one transaction
func (r *repository) ReplaceActive(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND status = ?", sub.UserID, models.SubscriptionStatusActive).
			Update("status", models.SubscriptionStatusCancelled).Error
		if err != nil {
			return err
		}
		return tx.Omit("Plan", "User").Create(sub).Error
	})
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubscriptionStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
