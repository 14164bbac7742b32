package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		u := User{}
		assert.Equal(t, "users", u.TableName())
	})

	t.Run("SetPassword and CheckPassword", func(t *testing.T) {
		u := User{}
		assert.ErrorIs(t, u.SetPassword("short"), ErrPasswordTooShort)

		require.NoError(t, u.SetPassword("correct-horse"))
		assert.NotEqual(t, "correct-horse", u.PasswordHash)
		assert.True(t, u.CheckPassword("correct-horse"))
		assert.False(t, u.CheckPassword("wrong-horse"))
	})

	t.Run("Failed logins lock the account", func(t *testing.T) {
		u := User{}
		for i := 0; i < maxFailedLogins-1; i++ {
			u.IncrementFailedLogins()
		}
		assert.False(t, u.IsLocked())

		u.IncrementFailedLogins()
		assert.True(t, u.IsLocked())

		u.RecordLogin(time.Now())
		assert.False(t, u.IsLocked())
		assert.Zero(t, u.FailedLoginAttempts)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("Email verification", func(t *testing.T) {
		u := User{}
		assert.False(t, u.IsEmailVerified())
		u.MarkEmailVerified(time.Now())
		assert.True(t, u.IsEmailVerified())
	})

	t.Run("Active defaults to true", func(t *testing.T) {
		inactive := false
		assert.True(t, (&User{}).Active())
		assert.False(t, (&User{IsActive: &inactive}).Active())
	})

	t.Run("PermissionNames deduplicates across roles", func(t *testing.T) {
		roleID := uuid.New()
		u := User{Roles: []Role{
			{ID: roleID, Permissions: []Permission{{Name: "admin:categories:write"}, {Name: "admin:users:read"}}},
			{ID: uuid.New(), Permissions: []Permission{{Name: "admin:users:read"}}},
		}}
		assert.ElementsMatch(t, []string{"admin:categories:write", "admin:users:read"}, u.PermissionNames())
		assert.True(t, u.HasRole(roleID))
		assert.False(t, u.HasRole(uuid.New()))
	})

	t.Run("Validate", func(t *testing.T) {
		assert.ErrorIs(t, (&User{Email: "nope"}).Validate(), ErrInvalidEmail)
		assert.ErrorIs(t, (&User{Email: "a@b.co"}).Validate(), ErrInvalidPassword)
		assert.NoError(t, (&User{Email: "a@b.co", PasswordHash: "x"}).Validate())
	})

	t.Run("MaskSensitiveData", func(t *testing.T) {
		u := User{Email: "sara@example.com", Phone: "+966501234567", PasswordHash: "hash"}
		m := u.MaskSensitiveData()
		assert.Equal(t, "s***@example.com", m.Email)
		assert.Equal(t, "***4567", m.Phone)
		assert.Equal(t, "***", m.PasswordHash)
		assert.Equal(t, "hash", u.PasswordHash)
	})

	t.Run("IsEmail", func(t *testing.T) {
		assert.True(t, IsEmail("user@example.com"))
		assert.False(t, IsEmail("@example.com"))
		assert.False(t, IsEmail("user@"))
		assert.False(t, IsEmail("user@localhost"))
	})
}
