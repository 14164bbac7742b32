package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/models"
)

// Repository defines the interface for plan and subscription data access
type Repository interface {
	ListPlans(ctx context.Context, activeOnly bool) ([]models.Plan, error)
	GetPlanByID(ctx context.Context, id uint) (*models.Plan, error)
	CreatePlan(ctx context.Context, plan *models.Plan) error
	UpdatePlan(ctx context.Context, plan *models.Plan) error

	GetActiveSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	HasActiveSubscription(ctx context.Context, userID uuid.UUID, at time.Time) (bool, error)
	ReplaceActive(ctx context.Context, sub *models.Subscription) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubscriptionStatus) error
}

// Service defines the interface for subscription business logic
type Service interface {
	ListPlans(ctx context.Context, includeInactive bool) ([]PlanResponse, error)
	CreatePlan(ctx context.Context, req *CreatePlanRequest) (*PlanResponse, error)
	UpdatePlan(ctx context.Context, id uint, req UpdatePlanRequest) (*PlanResponse, error)

	Subscribe(ctx context.Context, userID uuid.UUID, planID uint) (*SubscriptionResponse, error)
	GetCurrent(ctx context.Context, userID uuid.UUID) (*SubscriptionResponse, error)
	Cancel(ctx context.Context, userID uuid.UUID) error
}
