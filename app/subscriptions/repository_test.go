package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/promptaat/promptaat/models"
	"github.com/promptaat/promptaat/tests/suites"
)

type SubscriptionsRepositoryTestSuite struct {
	suites.RepositoryTestSuite
	repo Repository
}

func (suite *SubscriptionsRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration test")
	}

	suite.AutoMigrate = true

	suite.RepositoryTestSuite.SetupSuite()

	suite.repo = NewRepository(suite.DB)
}

func TestSubscriptionsRepository(t *testing.T) {
	suite.Run(t, new(SubscriptionsRepositoryTestSuite))
}

func (suite *SubscriptionsRepositoryTestSuite) createUser(email string) *models.User {
	user := &models.User{Email: email, PasswordHash: "x"}
	suite.Require().NoError(suite.DB.Create(user).Error)
	return user
}

func (suite *SubscriptionsRepositoryTestSuite) createPlan(name, price string, months int) *models.Plan {
	plan := &models.Plan{Name: name, Price: decimal.RequireFromString(price), Currency: "USD", IntervalMonths: months}
	suite.Require().NoError(suite.repo.CreatePlan(context.Background(), plan))
	return plan
}

func (suite *SubscriptionsRepositoryTestSuite) TestPlans() {
	ctx := context.Background()
	suite.createPlan("Yearly", "99.00", 12)
	monthly := suite.createPlan("Monthly", "9.99", 1)

	off := false
	monthly.IsActive = &off
	suite.AssertNoDBError(suite.repo.UpdatePlan(ctx, monthly))

	active, err := suite.repo.ListPlans(ctx, true)
	suite.AssertNoDBError(err)
	suite.Require().Len(active, 1)
	suite.Equal("Yearly", active[0].Name)

	all, err := suite.repo.ListPlans(ctx, false)
	suite.AssertNoDBError(err)
	suite.Require().Len(all, 2)
	suite.Equal("Monthly", all[0].Name)
	suite.True(all[0].Price.Equal(decimal.RequireFromString("9.99")))
}

func (suite *SubscriptionsRepositoryTestSuite) TestReplaceActive() {
	ctx := context.Background()
	user := suite.createUser("sara@example.com")
	monthly := suite.createPlan("Monthly", "9.99", 1)
	yearly := suite.createPlan("Yearly", "99.00", 12)
	now := time.Now().UTC().Truncate(time.Second)

	first := models.NewSubscription(user.ID, monthly, now)
	suite.AssertNoDBError(suite.repo.ReplaceActive(ctx, first))

	second := models.NewSubscription(user.ID, yearly, now)
	suite.AssertNoDBError(suite.repo.ReplaceActive(ctx, second))

	current, err := suite.repo.GetActiveSubscription(ctx, user.ID)
	suite.AssertNoDBError(err)
	suite.Equal(second.ID, current.ID)
	suite.Equal("Yearly", current.Plan.Name)

	var firstStatus models.SubscriptionStatus
	suite.Require().NoError(suite.DB.Model(&models.Subscription{}).Select("status").Where("id = ?", first.ID).Scan(&firstStatus).Error)
	suite.Equal(models.SubscriptionStatusCancelled, firstStatus)

	ok, err := suite.repo.HasActiveSubscription(ctx, user.ID, now.Add(time.Hour))
	suite.AssertNoDBError(err)
	suite.True(ok)

	ok, err = suite.repo.HasActiveSubscription(ctx, user.ID, now.AddDate(2, 0, 0))
	suite.AssertNoDBError(err)
	suite.False(ok)

	suite.AssertNoDBError(suite.repo.UpdateStatus(ctx, second.ID, models.SubscriptionStatusCancelled))
	ok, err = suite.repo.HasActiveSubscription(ctx, user.ID, now.Add(time.Hour))
	suite.AssertNoDBError(err)
	suite.False(ok)
}

func (suite *SubscriptionsRepositoryTestSuite) TestOneActivePerUser() {
	user := suite.createUser("omar@example.com")
	plan := suite.createPlan("Monthly", "9.99", 1)
	now := time.Now().UTC()

	suite.Require().NoError(suite.DB.Omit("Plan").Create(models.NewSubscription(user.ID, plan, now)).Error)
	err := suite.DB.Omit("Plan").Create(models.NewSubscription(user.ID, plan, now)).Error
	suite.AssertDBError(err)
}
