package security

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMaker is a testify mock of Maker
type MockMaker struct {
	mock.Mock
}

var _ Maker = (*MockMaker)(nil)

// ExpectAccessToken makes the next access token for userID return token and
// a payload that expires after ttl
func (m *MockMaker) ExpectAccessToken(userID uuid.UUID, ttl time.Duration, token string) *Payload {
	now := time.Now()
	payload := &Payload{
		ID:        uuid.New(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiredAt: now.Add(ttl),
		Scope:     TokenScopeAccess,
	}
	m.On("CreateToken", userID, ttl, mock.Anything, TokenScopeAccess).Return(token, payload, nil)
	return payload
}

func (m *MockMaker) CreateToken(userID uuid.UUID, duration time.Duration, version int64, scope string) (string, *Payload, error) {
	args := m.Called(userID, duration, version, scope)
	payload, _ := args.Get(1).(*Payload)
	return args.String(0), payload, args.Error(2)
}

func (m *MockMaker) VerifyToken(token string) (*Payload, error) {
	args := m.Called(token)
	payload, _ := args.Get(0).(*Payload)
	return payload, args.Error(1)
}
