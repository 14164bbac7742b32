package models

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRevokedToken(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		rt := RevokedToken{}
		assert.Equal(t, "revoked_tokens", rt.TableName())
	})

	t.Run("BeforeCreate keeps existing id", func(t *testing.T) {
		rt := RevokedToken{}
		assert.NoError(t, rt.BeforeCreate(nil))
		assert.NotEqual(t, uuid.Nil, rt.ID)

		existingID := uuid.New()
		rt2 := RevokedToken{ID: existingID}
		assert.NoError(t, rt2.BeforeCreate(nil))
		assert.Equal(t, existingID, rt2.ID)
	})

	t.Run("ShouldCleanup", func(t *testing.T) {
		now := time.Now()
		rt := RevokedToken{ExpiresAt: now.Add(-time.Hour)}
		assert.False(t, rt.ShouldCleanup(now))

		rt.ExpiresAt = now.Add(-25 * time.Hour)
		assert.True(t, rt.ShouldCleanup(now))
	})

	t.Run("Validate", func(t *testing.T) {
		valid := NewRevokedToken("jti_123", uuid.New(), time.Now().Add(time.Hour))
		assert.NoError(t, valid.Validate())

		tests := []struct {
			name   string
			modify func(*RevokedToken)
			err    error
		}{
			{"Empty TokenJTI", func(rt *RevokedToken) { rt.TokenJTI = "" }, ErrInvalidTokenJTI},
			{"Invalid UserID", func(rt *RevokedToken) { rt.UserID = uuid.Nil }, ErrInvalidUserID},
			{"Expired Token", func(rt *RevokedToken) { rt.ExpiresAt = time.Now().Add(-time.Hour) }, ErrTokenAlreadyExpired},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				token := *valid
				tt.modify(&token)
				assert.Equal(t, tt.err, token.Validate())
			})
		}
	})

	t.Run("PurgeRevokedTokens", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{
			Conn: db,
		}), &gorm.Config{})
		assert.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "revoked_tokens" WHERE expires_at < \$1`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		n, err := PurgeRevokedTokens(gormDB, time.Now())
		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
