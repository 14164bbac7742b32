package user

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/cache"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/security"
	"github.com/promptaat/promptaat/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAuthService) InvalidatePermissions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) IsRevoked(ctx context.Context, payload *security.Payload) (bool, error) {
	args := m.Called(ctx, payload)
	return args.Bool(0), args.Error(1)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	tokenMaker  *security.MockMaker
	authService *MockAuthService
	router      *gin.Engine
	payload     *security.Payload
}

func (suite *AuthMiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	suite.tokenMaker = &security.MockMaker{}
	suite.authService = &MockAuthService{}
	suite.payload = &security.Payload{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ExpiredAt: time.Now().Add(time.Hour),
		Scope:     security.TokenScopeAccess,
	}

	suite.router = gin.New()
	suite.router.Use(AuthMiddleware(suite.tokenMaker, suite.authService, "session", logger.NewNullLogger()))
	suite.router.GET("/test", func(c *gin.Context) {
		userID, _ := api.UserID(c)
		perms := c.MustGet(api.ContextPermissions).([]string)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "permissions": perms})
	})
}

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (suite *AuthMiddlewareTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) TestMissingCredentials() {
	w := suite.serve(httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestMalformedHeader() {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(AuthorizationHeaderKey, "Token abc")

	suite.Equal(http.StatusUnauthorized, suite.serve(req).Code)
	suite.tokenMaker.AssertNotCalled(suite.T(), "VerifyToken", mock.Anything)
}

func (suite *AuthMiddlewareTestSuite) TestBearerToken() {
	suite.tokenMaker.On("VerifyToken", "abc").Return(suite.payload, nil)
	suite.authService.On("IsRevoked", mock.Anything, suite.payload).Return(false, nil)
	suite.authService.On("GetUserPermissions", mock.Anything, suite.payload.UserID).Return([]string{"admin:users:read"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(AuthorizationHeaderKey, "Bearer abc")
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), suite.payload.UserID.String())
	suite.Contains(w.Body.String(), "admin:users:read")
}

func (suite *AuthMiddlewareTestSuite) TestSessionCookie() {
	suite.tokenMaker.On("VerifyToken", "from-cookie").Return(suite.payload, nil)
	suite.authService.On("IsRevoked", mock.Anything, suite.payload).Return(false, nil)
	suite.authService.On("GetUserPermissions", mock.Anything, suite.payload.UserID).Return([]string{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})

	suite.Equal(http.StatusOK, suite.serve(req).Code)
}

func (suite *AuthMiddlewareTestSuite) TestRejectedTokens() {
	refresh := *suite.payload
	refresh.Scope = security.TokenScopeRefresh

	suite.tokenMaker.On("VerifyToken", "expired").Return(nil, security.ErrExpiredToken)
	suite.tokenMaker.On("VerifyToken", "refresh").Return(&refresh, nil)
	suite.tokenMaker.On("VerifyToken", "revoked").Return(suite.payload, nil)
	suite.authService.On("IsRevoked", mock.Anything, suite.payload).Return(true, nil)

	for _, token := range []string{"expired", "refresh", "revoked"} {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		req.Header.Set(AuthorizationHeaderKey, "Bearer "+token)
		suite.Equal(http.StatusUnauthorized, suite.serve(req).Code, token)
	}
	suite.authService.AssertNotCalled(suite.T(), "GetUserPermissions", mock.Anything, mock.Anything)
}

func (suite *AuthMiddlewareTestSuite) TestPermissionFailures() {
	suite.tokenMaker.On("VerifyToken", "abc").Return(suite.payload, nil)
	suite.authService.On("IsRevoked", mock.Anything, suite.payload).Return(false, nil)
	suite.authService.On("GetUserPermissions", mock.Anything, suite.payload.UserID).Return(nil, models.ErrAccountInactive).Once()
	suite.authService.On("GetUserPermissions", mock.Anything, suite.payload.UserID).Return(nil, errors.New("cache down")).Once()

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(AuthorizationHeaderKey, "Bearer abc")
	suite.Equal(http.StatusUnauthorized, suite.serve(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(AuthorizationHeaderKey, "Bearer abc")
	suite.Equal(http.StatusForbidden, suite.serve(req).Code)
}

func (suite *AuthMiddlewareTestSuite) TestRevocationLookupError() {
	suite.tokenMaker.On("VerifyToken", "abc").Return(suite.payload, nil)
	suite.authService.On("IsRevoked", mock.Anything, suite.payload).Return(false, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(AuthorizationHeaderKey, "Bearer abc")
	suite.Equal(http.StatusInternalServerError, suite.serve(req).Code)
}

func TestAuthMiddleware_PasswordResetEndsSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	maker, err := security.NewMaker(security.TokenTypePaseto, "12345678901234567890123456789012")
	if err != nil {
		t.Fatal(err)
	}
	store := cache.NewMemoryCache[string]()
	defer store.Stop()

	user := &models.User{ID: uuid.New(), SessionVersion: 1}
	repo := &MockRepo{}
	repo.On("IsTokenRevoked", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("GetByIDWithPermissions", mock.Anything, user.ID).Return(user, nil)
	repo.On("GetSessionVersion", mock.Anything, user.ID).Return(int64(1), nil).Once()
	repo.On("GetSessionVersion", mock.Anything, user.ID).Return(int64(2), nil)

	router := gin.New()
	router.Use(AuthMiddleware(maker, NewAuthService(repo, store, logger.NewNullLogger()), "session", logger.NewNullLogger()))
	router.GET("/profile", func(c *gin.Context) { c.Status(http.StatusOK) })

	token, _, err := maker.CreateToken(user.ID, time.Hour, user.SessionVersion, security.TokenScopeAccess)
	if err != nil {
		t.Fatal(err)
	}
	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/profile", http.NoBody)
		req.Header.Set(AuthorizationHeaderKey, AuthorizationTypeBearer+" "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call())
	// the password was reset: the stored session version moved on
	assert.Equal(t, http.StatusUnauthorized, call())
}
