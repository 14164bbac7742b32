package subscriptions

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

var currencyRX = regexp.MustCompile(`^[A-Z]{3}$`)

// CreatePlanRequest represents the request to create a plan
type CreatePlanRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Price          decimal.Decimal `json:"price" swaggertype:"string" example:"9.99"`
	Currency       string          `json:"currency,omitempty"`
	IntervalMonths int             `json:"interval_months" binding:"required,min=1,max=36"`
}

func (r *CreatePlanRequest) Validate(v *validator.Validator) bool {
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		r.Currency = "USD"
	}

	v.Check(validator.NotBlank(r.Name), "name", "name is required")
	v.Check(!r.Price.IsNegative(), "price", "price must not be negative")
	v.Check(r.Price.Equal(r.Price.Round(2)), "price", "price must have at most two decimal places")
	v.Check(validator.Matches(r.Currency, currencyRX), "currency", "currency must be a three letter ISO code")
	return v.Valid()
}

// UpdatePlanRequest represents the request to update a plan. Price changes
// apply to new subscriptions only.
type UpdatePlanRequest struct {
	Name     *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
	IsActive *bool            `json:"is_active,omitempty"`
}

func (r *UpdatePlanRequest) Validate(v *validator.Validator) bool {
	if r.Name != nil {
		v.Check(validator.NotBlank(*r.Name), "name", "name must not be blank")
	}
	if r.Price != nil {
		v.Check(!r.Price.IsNegative(), "price", "price must not be negative")
	}
	return v.Valid()
}

// SubscribeRequest is the body of a subscribe call
type SubscribeRequest struct {
	PlanID uint `json:"plan_id" binding:"required,min=1"`
}

// PlanResponse represents the response for plan data
type PlanResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	Currency       string `json:"currency"`
	IntervalMonths int    `json:"interval_months"`
	IsActive       bool   `json:"is_active"`
}

// ToPlanResponse converts a models.Plan to PlanResponse
func ToPlanResponse(plan *models.Plan) *PlanResponse {
	return &PlanResponse{
		ID:             plan.ID,
		Name:           plan.Name,
		Price:          plan.Price.StringFixed(2),
		Currency:       plan.Currency,
		IntervalMonths: plan.IntervalMonths,
		IsActive:       plan.Active(),
	}
}

// ToPlanResponseList converts a slice of models.Plan to PlanResponse
func ToPlanResponseList(plans []models.Plan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = *ToPlanResponse(&plans[i])
	}
	return responses
}

// SubscriptionResponse represents the response for subscription data
type SubscriptionResponse struct {
	ID        uuid.UUID     `json:"id"`
	Status    string        `json:"status"`
	PricePaid string        `json:"price_paid"`
	StartsAt  time.Time     `json:"starts_at"`
	EndsAt    time.Time     `json:"ends_at"`
	Plan      *PlanResponse `json:"plan,omitempty"`
}

// ToSubscriptionResponse converts a models.Subscription to SubscriptionResponse
func ToSubscriptionResponse(sub *models.Subscription) *SubscriptionResponse {
	resp := &SubscriptionResponse{
		ID:        sub.ID,
		Status:    string(sub.Status),
		PricePaid: sub.PricePaid.StringFixed(2),
		StartsAt:  sub.StartsAt,
		EndsAt:    sub.EndsAt,
	}
	if sub.Plan != nil {
		resp.Plan = ToPlanResponse(sub.Plan)
	}
	return resp
}
