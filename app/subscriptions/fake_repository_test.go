package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

// fakeRepository keeps plans and subscriptions in memory
type fakeRepository struct {
	plans    map[uint]*models.Plan
	subs     []*models.Subscription
	failWith error
}

func newFakeRepository(plans ...models.Plan) *fakeRepository {
	r := &fakeRepository{plans: map[uint]*models.Plan{}}
	for i := range plans {
		p := plans[i]
		r.plans[p.ID] = &p
	}
	return r
}

func (r *fakeRepository) ListPlans(_ context.Context, activeOnly bool) ([]models.Plan, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []models.Plan
	for _, p := range r.plans {
		if !activeOnly || p.Active() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepository) GetPlanByID(_ context.Context, id uint) (*models.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepository) CreatePlan(_ context.Context, plan *models.Plan) error {
	if r.failWith != nil {
		return r.failWith
	}
	plan.ID = uint(len(r.plans) + 1)
	cp := *plan
	r.plans[plan.ID] = &cp
	return nil
}

func (r *fakeRepository) UpdatePlan(_ context.Context, plan *models.Plan) error {
	cp := *plan
	r.plans[plan.ID] = &cp
	return nil
}

func (r *fakeRepository) GetActiveSubscription(_ context.Context, userID uuid.UUID) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.UserID == userID && s.Status == models.SubscriptionStatusActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) HasActiveSubscription(_ context.Context, userID uuid.UUID, at time.Time) (bool, error) {
	for _, s := range r.subs {
		if s.UserID == userID && s.IsActiveAt(at) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) ReplaceActive(_ context.Context, sub *models.Subscription) error {
	if r.failWith != nil {
		return r.failWith
	}
	for _, s := range r.subs {
		if s.UserID == sub.UserID && s.Status == models.SubscriptionStatusActive {
			s.Status = models.SubscriptionStatusCancelled
		}
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	cp := *sub
	r.subs = append(r.subs, &cp)
	return nil
}

func (r *fakeRepository) UpdateStatus(_ context.Context, id uuid.UUID, status models.SubscriptionStatus) error {
	for _, s := range r.subs {
		if s.ID == id {
			s.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepository) statuses(userID uuid.UUID) []models.SubscriptionStatus {
	var out []models.SubscriptionStatus
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, s.Status)
		}
	}
	return out
}
