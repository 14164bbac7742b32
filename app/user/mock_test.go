package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/promptaat/promptaat/app/emails"
	"github.com/promptaat/promptaat/models"
)

type MockRepo struct {
	mock.Mock
}

var _ Repository = (*MockRepo)(nil)

func (m *MockRepo) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepo) Create(ctx context.Context, user *models.User, roleName string) error {
	return m.Called(ctx, user, roleName).Error(0)
}

func (m *MockRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return m.user(m.Called(ctx, userID))
}

func (m *MockRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return m.Called(ctx, userID, hash).Error(0)
}

func (m *MockRepo) MarkEmailVerified(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

func (m *MockRepo) GetByIDWithPermissions(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return m.user(m.Called(ctx, userID))
}

func (m *MockRepo) GetUserByIDWithRoles(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return m.user(m.Called(ctx, userID))
}

func (m *MockRepo) GetUsers(ctx context.Context, filters *AdminUserFilters) ([]models.User, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepo) UpdateUserStatus(ctx context.Context, userID uuid.UUID, isActive bool) error {
	return m.Called(ctx, userID, isActive).Error(0)
}

func (m *MockRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Role), args.Error(1)
}

func (m *MockRepo) GetRoleByID(ctx context.Context, roleID uuid.UUID) (*models.Role, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRepo) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

func (m *MockRepo) RemoveRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

func (m *MockRepo) RevokeToken(ctx context.Context, token *models.RevokedToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRepo) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) GetSessionVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// outbox records sent emails
type outbox struct {
	sent []emails.Message
	err  error
}

func (o *outbox) Send(_ context.Context, msg emails.Message) error {
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

func (o *outbox) last() emails.Message {
	return o.sent[len(o.sent)-1]
}

func testLink(path string) string {
	return "http://app.test" + path
}
