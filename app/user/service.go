package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/app/emails"
	"github.com/promptaat/promptaat/internal/cache"
	"github.com/promptaat/promptaat/internal/formatter"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/security"
	"github.com/promptaat/promptaat/models"
)

const (
	verifyTokenPrefix = "email_verify:"
	resetTokenPrefix  = "password_reset:"
	verifyRatePrefix  = "rate:email_verify:"
	resetRatePrefix   = "rate:password_reset:"
)

// LinkFunc turns a frontend path into an absolute URL
type LinkFunc func(path string) string

type service struct {
	repo       Repository
	tokenMaker security.Maker
	store      cache.Cache[string]
	mailer     emails.Sender
	link       LinkFunc
	cfg        *Config
	logger     logger.Logger
	now        func() time.Time
}

// NewService creates a new user service.
func NewService(
	repo Repository,
	tokenMaker security.Maker,
	store cache.Cache[string],
	mailer emails.Sender,
	link LinkFunc,
	cfg *Config,
	log logger.Logger,
) Service {
	return &service{
		repo:       repo,
		tokenMaker: tokenMaker,
		store:      store,
		mailer:     mailer,
		link:       link,
		cfg:        cfg,
		logger:     log,
		now:        time.Now,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterUserRequest) (*Response, error) {
	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, models.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.PhoneNumber,
		PreferredLang: req.PreferredLang,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user, models.RoleMember); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.sendVerification(ctx, user); err != nil {
		s.logger.Error(err, logger.Fields{"user_id": user.ID, "action": "register_verification_email"})
	}

	return ToResponse(user), nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, formatter.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsLocked() {
		return nil, models.ErrAccountLocked
	}

	if !user.CheckPassword(req.Password) {
		user.IncrementFailedLogins()
		if err := s.repo.Update(ctx, user); err != nil {
			s.logger.Error(err, logger.Fields{"user_id": user.ID, "action": "record_failed_login"})
		}
		return nil, models.ErrInvalidCredentials
	}

	if !user.Active() {
		return nil, models.ErrAccountInactive
	}

	user.RecordLogin(s.now().UTC())
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	accessToken, payload, err := s.tokenMaker.CreateToken(user.ID, s.cfg.TokenTTL, user.SessionVersion, security.TokenScopeAccess)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   payload.ExpiredAt,
		User:        *ToResponse(user),
	}, nil
}

// Logout revokes the presented token until it expires
func (s *service) Logout(ctx context.Context, payload *security.Payload) error {
	revoked := models.NewRevokedToken(payload.ID.String(), payload.UserID, payload.ExpiredAt)
	if err := revoked.Validate(); err != nil {
		if errors.Is(err, models.ErrTokenAlreadyExpired) {
			return nil
		}
		return err
	}
	return s.repo.RevokeToken(ctx, revoked)
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	return ToResponse(user), nil
}

func (s *service) RequestEmailVerification(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return err
	}
	if user.IsEmailVerified() {
		return models.ErrEmailAlreadyVerified
	}
	return s.sendVerification(ctx, user)
}

func (s *service) sendVerification(ctx context.Context, user *models.User) error {
	if err := s.allow(ctx, verifyRatePrefix+user.ID.String()); err != nil {
		return err
	}

	token, err := s.issueToken(ctx, verifyTokenPrefix, user.ID, s.cfg.VerificationTTL)
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, emails.Message{
		UserID:   &user.ID,
		To:       user.Email,
		Subject:  "Confirm your email address",
		Template: models.EmailTemplateVerification,
		Data: models.EmailData{
			"name": displayName(user),
			"link": s.link("/verify-email?token=" + token),
		},
	})
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.redeemToken(ctx, verifyTokenPrefix, token)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrInvalidVerifyToken
		}
		return err
	}
	if user.IsEmailVerified() {
		return models.ErrEmailAlreadyVerified
	}

	if err := s.repo.MarkEmailVerified(ctx, userID, s.now().UTC()); err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	if err := s.mailer.Send(ctx, emails.Message{
		UserID:   &user.ID,
		To:       user.Email,
		Subject:  "Welcome to Promptaat",
		Template: models.EmailTemplateWelcome,
		Data:     models.EmailData{"name": displayName(user)},
	}); err != nil {
		s.logger.Error(err, logger.Fields{"user_id": user.ID, "action": "welcome_email"})
	}
	return nil
}

// RequestPasswordReset emails a reset link when the address is registered.
// It reports success for unknown addresses.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	email = formatter.NormalizeEmail(email)
	if err := s.allow(ctx, resetRatePrefix+email); err != nil {
		return err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !user.Active() {
		return nil
	}

	token, err := s.issueToken(ctx, resetTokenPrefix, user.ID, s.cfg.PasswordResetTTL)
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, emails.Message{
		UserID:   &user.ID,
		To:       user.Email,
		Subject:  "Reset your password",
		Template: models.EmailTemplatePasswordReset,
		Data: models.EmailData{
			"name": displayName(user),
			"link": s.link("/reset-password?token=" + token),
		},
	})
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := models.HashPassword(newPassword)
	if err != nil {
		return err
	}

	userID, err := s.redeemToken(ctx, resetTokenPrefix, token)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrInvalidVerifyToken
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// allow counts one attempt against key and fails once the hourly limit is passed
func (s *service) allow(ctx context.Context, key string) error {
	n, err := s.store.Incr(ctx, key, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to check rate limit: %w", err)
	}
	if n > int64(s.cfg.VerificationMaxPerHour) {
		return models.ErrRateLimitExceeded
	}
	return nil
}

func (s *service) issueToken(ctx context.Context, prefix string, userID uuid.UUID, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	if err := s.store.Set(ctx, prefix+token, userID.String(), ttl); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// redeemToken resolves a single-use token and deletes it
func (s *service) redeemToken(ctx context.Context, prefix, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, models.ErrInvalidVerifyToken
	}

	value, err := s.store.Get(ctx, prefix+token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return uuid.Nil, models.ErrInvalidVerifyToken
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, models.ErrInvalidVerifyToken
	}

	if err := s.store.Delete(ctx, prefix+token); err != nil {
		s.logger.Error(err, logger.Fields{"action": "delete_token"})
	}
	return userID, nil
}

func displayName(u *models.User) string {
	if name := u.GetFullName(); name != "" {
		return name
	}
	return u.Email
}
