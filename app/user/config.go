package user

import (
	"errors"
	"time"

	"github.com/promptaat/promptaat/internal/security"
)

type Config struct {
	TokenType    string        `env:"TOKEN_TYPE" env-default:"paseto" validate:"oneof=paseto jwt"`
	SymmetricKey string        `env:"SYMMETRIC_KEY"`
	TokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"24h"`

	CookieName   string `env:"SESSION_COOKIE_NAME" env-default:"promptaat_session"`
	CookieSecure bool   `env:"SESSION_COOKIE_SECURE" env-default:"false"`

	// VerificationMaxPerHour caps verification and reset emails per user
	VerificationMaxPerHour int           `env:"EMAIL_VERIFICATION_MAX_PER_HOUR" env-default:"3"`
	VerificationTTL        time.Duration `env:"EMAIL_VERIFICATION_TTL" env-default:"24h"`
	PasswordResetTTL       time.Duration `env:"PASSWORD_RESET_TTL" env-default:"1h"`
}

func (c *Config) Validate() error {
	if c.SymmetricKey == "" {
		return errors.New("symmetric key must be set")
	}
	if c.TokenType != security.TokenTypePaseto && c.TokenType != security.TokenTypeJWT {
		return errors.New("TOKEN_TYPE must be paseto or jwt")
	}
	if c.TokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.CookieName == "" {
		return errors.New("SESSION_COOKIE_NAME must be set")
	}
	if c.VerificationMaxPerHour < 1 {
		return errors.New("EMAIL_VERIFICATION_MAX_PER_HOUR must be at least 1")
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		TokenType:              security.TokenTypePaseto,
		SymmetricKey:           "12345678901234567890123456789012",
		TokenTTL:               24 * time.Hour,
		CookieName:             "promptaat_session",
		VerificationMaxPerHour: 3,
		VerificationTTL:        24 * time.Hour,
		PasswordResetTTL:       time.Hour,
	}
}
