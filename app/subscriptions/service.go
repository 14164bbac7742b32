package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/models"
)

// service implements the Service interface
type service struct {
	repo      Repository
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
	now       func() time.Time
}

// NewService creates a new subscription service
func NewService(repo Repository, stripper sanitizer.HTMLStripperer, log logger.Logger, now func() time.Time) Service {
	return &service{
		repo:      repo,
		sanitizer: stripper,
		logger:    log,
		now:       now,
	}
}

func (s *service) ListPlans(ctx context.Context, includeInactive bool) ([]PlanResponse, error) {
	plans, err := s.repo.ListPlans(ctx, !includeInactive)
	if err != nil {
		return nil, err
	}
	return ToPlanResponseList(plans), nil
}

func (s *service) CreatePlan(ctx context.Context, req *CreatePlanRequest) (*PlanResponse, error) {
	sanitizer.StripAll(s.sanitizer, &req.Name)

	active := true
	plan := &models.Plan{
		Name:           req.Name,
		Price:          req.Price,
		Currency:       req.Currency,
		IntervalMonths: req.IntervalMonths,
		IsActive:       &active,
	}
	if plan.Currency == "" {
		plan.Currency = "USD"
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("plan created", logger.Fields{"plan_id": plan.ID, "price": plan.Price.String()})
	return ToPlanResponse(plan), nil
}

func (s *service) UpdatePlan(ctx context.Context, id uint, req UpdatePlanRequest) (*PlanResponse, error) {
	plan, err := s.repo.GetPlanByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	sanitizer.StripAll(s.sanitizer, req.Name)

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.IsActive != nil {
		plan.IsActive = req.IsActive
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}

	return ToPlanResponse(plan), nil
}

// Subscribe starts a subscription now; a previous active one is cancelled
func (s *service) Subscribe(ctx context.Context, userID uuid.UUID, planID uint) (*SubscriptionResponse, error) {
	plan, err := s.repo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, notFound(err)
	}
	if !plan.Active() {
		return nil, models.ErrPlanNotActive
	}

	sub := models.NewSubscription(userID, plan, s.now().UTC())
	if err := s.repo.ReplaceActive(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("subscription started", logger.Fields{
		"user_id":         userID,
		"plan_id":         plan.ID,
		"subscription_id": sub.ID,
		"ends_at":         sub.EndsAt,
	})
	return ToSubscriptionResponse(sub), nil
}

// GetCurrent returns the subscription in force; an ended one is marked expired
func (s *service) GetCurrent(ctx context.Context, userID uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToSubscriptionResponse(sub), nil
}

func (s *service) Cancel(ctx context.Context, userID uuid.UUID) error {
	sub, err := s.current(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, sub.ID, models.SubscriptionStatusCancelled); err != nil {
		return notFound(err)
	}

	s.logger.Info("subscription cancelled", logger.Fields{"user_id": userID, "subscription_id": sub.ID})
	return nil
}

func (s *service) current(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repo.GetActiveSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNoActiveSubscription
		}
		return nil, err
	}

	now := s.now()
	if sub.IsActiveAt(now) {
		return sub, nil
	}
	if !now.Before(sub.EndsAt) {
		if err := s.repo.UpdateStatus(ctx, sub.ID, models.SubscriptionStatusExpired); err != nil {
			return nil, notFound(err)
		}
	}
	return nil, models.ErrNoActiveSubscription
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return err
}
