package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubscriptionStatus represents the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// Plan is a purchasable subscription plan
type Plan struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(100);not null;unique" json:"name"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null;check:price >= 0" json:"price"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	IntervalMonths int             `gorm:"not null;default:1" json:"interval_months"`
	IsActive       *bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Plan model
func (*Plan) TableName() string {
	return "plans"
}

// Active reports whether the plan can be subscribed to
func (p *Plan) Active() bool {
	return p.IsActive == nil || *p.IsActive
}

// Validate performs validation on the plan model
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidPlanName
	}
	if p.Price.IsNegative() {
		return ErrInvalidPlanPrice
	}
	if p.IntervalMonths < 1 || p.IntervalMonths > 36 {
		return ErrInvalidPlanInterval
	}
	return nil
}

// Subscription links a user to a plan for a period of time
type Subscription struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index:idx_subscriptions_user_status" json:"user_id"`
	PlanID    uint               `gorm:"not null" json:"plan_id"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_subscriptions_user_status" json:"status"`
	PricePaid decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"price_paid"`
	StartsAt  time.Time          `gorm:"type:timestamptz;not null" json:"starts_at"`
	EndsAt    time.Time          `gorm:"type:timestamptz;not null" json:"ends_at"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// TableName specifies the table name for Subscription model
func (*Subscription) TableName() string {
	return "subscriptions"
}

// BeforeCreate sets up the model before creation
func (s *Subscription) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// NewSubscription starts a subscription to plan at the given time
func NewSubscription(userID uuid.UUID, plan *Plan, start time.Time) *Subscription {
	return &Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    SubscriptionStatusActive,
		PricePaid: plan.Price,
		StartsAt:  start,
		EndsAt:    start.AddDate(0, plan.IntervalMonths, 0),
		Plan:      plan,
	}
}

// IsActiveAt reports whether the subscription grants access at t
func (s *Subscription) IsActiveAt(t time.Time) bool {
	return s.Status == SubscriptionStatusActive && !t.Before(s.StartsAt) && t.Before(s.EndsAt)
}

// Cancel marks the subscription cancelled
func (s *Subscription) Cancel() {
	s.Status = SubscriptionStatusCancelled
}
