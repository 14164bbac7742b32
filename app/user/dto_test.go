package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

func TestRegisterUserRequest_SanitizeAndValidate(t *testing.T) {
	stripper := sanitizer.NewHTMLStripper()

	t.Run("normalizes", func(t *testing.T) {
		req := &RegisterUserRequest{
			FirstName:   "<script>x</script>Sara",
			Email:       " SARA@example.com",
			Password:    "password123",
			CountryCode: "sa",
			PhoneNumber: "0501234567",
		}
		v := validator.New()

		assert.True(t, req.SanitizeAndValidate(v, stripper), v.Errors)
		assert.Equal(t, "Sara", req.FirstName)
		assert.Equal(t, "sara@example.com", req.Email)
		assert.Equal(t, "+966501234567", req.PhoneNumber)
		assert.Equal(t, "en", req.PreferredLang)
	})

	t.Run("rejects", func(t *testing.T) {
		req := &RegisterUserRequest{
			Email:         "sara",
			Password:      "1234567",
			PreferredLang: "fr",
			PhoneNumber:   "abc",
			CountryCode:   "SA",
		}
		v := validator.New()

		assert.False(t, req.SanitizeAndValidate(v, stripper))
		for _, field := range []string{"email", "password", "preferred_lang", "phone_number"} {
			assert.Contains(t, v.Errors, field)
		}
	})
}

func TestAdminUserFilters_Defaults(t *testing.T) {
	f := &AdminUserFilters{}
	v := validator.New()
	f.SanitizeAndValidate(v, sanitizer.NewHTMLStripper())

	assert.True(t, v.Valid())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PerPage)
}

func TestToAdminUserResponse(t *testing.T) {
	off := false
	u := &models.User{Email: "a@example.com", IsActive: &off, Roles: []models.Role{{Name: "member"}}}

	resp := ToAdminUserResponse(u)

	assert.False(t, resp.IsActive)
	assert.Equal(t, []string{"member"}, resp.Roles)
	assert.NotNil(t, ToAdminUserResponse(&models.User{}).Roles)
}
