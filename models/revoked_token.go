package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const blacklistGracePeriod = 24 * time.Hour

// RevokedToken records an access token that was logged out before expiry
type RevokedToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	TokenJTI  string    `gorm:"type:varchar(255);not null;unique;index:idx_revoked_tokens_jti" json:"token_jti"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"type:timestamptz;not null;index:idx_revoked_tokens_expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for RevokedToken model
func (*RevokedToken) TableName() string {
	return "revoked_tokens"
}

// BeforeCreate sets up the model before creation
func (rt *RevokedToken) BeforeCreate(_ *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}

// ShouldCleanup reports whether the entry outlived the grace period
func (rt *RevokedToken) ShouldCleanup(now time.Time) bool {
	return now.After(rt.ExpiresAt.Add(blacklistGracePeriod))
}

// Validate performs validation on the revoked token model
func (rt *RevokedToken) Validate() error {
	if rt.TokenJTI == "" {
		return ErrInvalidTokenJTI
	}
	if rt.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if rt.ExpiresAt.Before(time.Now()) {
		return ErrTokenAlreadyExpired
	}
	return nil
}

// NewRevokedToken creates a new revocation entry
func NewRevokedToken(jti string, userID uuid.UUID, expiresAt time.Time) *RevokedToken {
	return &RevokedToken{
		TokenJTI:  jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
}

// PurgeRevokedTokens removes entries past their grace period
func PurgeRevokedTokens(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expires_at < ?", now.Add(-blacklistGracePeriod)).Delete(&RevokedToken{})
	return res.RowsAffected, res.Error
}
