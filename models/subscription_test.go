package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		err  error
	}{
		{"Valid", Plan{Name: "Pro", Price: decimal.NewFromFloat(9.99), IntervalMonths: 1}, nil},
		{"Free plan", Plan{Name: "Free", Price: decimal.Zero, IntervalMonths: 12}, nil},
		{"Blank name", Plan{Name: " ", Price: decimal.Zero, IntervalMonths: 1}, ErrInvalidPlanName},
		{"Negative price", Plan{Name: "Pro", Price: decimal.NewFromInt(-1), IntervalMonths: 1}, ErrInvalidPlanPrice},
		{"Zero interval", Plan{Name: "Pro", Price: decimal.Zero}, ErrInvalidPlanInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.err, tt.plan.Validate())
		})
	}
}

func TestSubscription(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	plan := &Plan{ID: 3, Name: "Pro", Price: decimal.RequireFromString("19.50"), IntervalMonths: 1}
	userID := uuid.New()

	s := NewSubscription(userID, plan, start)

	assert.Equal(t, "subscriptions", s.TableName())
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, uint(3), s.PlanID)
	assert.True(t, s.PricePaid.Equal(decimal.RequireFromString("19.5")))
	assert.Equal(t, start.AddDate(0, 1, 0), s.EndsAt)

	assert.True(t, s.IsActiveAt(start))
	assert.False(t, s.IsActiveAt(start.Add(-time.Second)))
	assert.False(t, s.IsActiveAt(s.EndsAt))

	s.Cancel()
	assert.Equal(t, SubscriptionStatusCancelled, s.Status)
	assert.False(t, s.IsActiveAt(start))
}
