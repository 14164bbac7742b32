package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/internal/formatter"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// RegisterUserRequest represents the request to create a user.
type RegisterUserRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	CountryCode   string `json:"country_code"`
	PhoneNumber   string `json:"phone_number"`
	Password      string `json:"password"`
	PreferredLang string `json:"preferred_lang"`
}

// SanitizeAndValidate cleans the request, normalizes the email and phone
// and reports whether it is valid.
func (r *RegisterUserRequest) SanitizeAndValidate(v *validator.Validator, s sanitizer.HTMLStripperer) bool {
	sanitizer.StripAll(s, &r.FirstName, &r.LastName, &r.CountryCode, &r.PhoneNumber)
	r.Email = formatter.NormalizeEmail(r.Email)
	if r.PreferredLang == "" {
		r.PreferredLang = "en"
	}

	v.Check(validator.MaxRunes(r.FirstName, 100), "first_name", "first name must not exceed 100 characters")
	v.Check(validator.MaxRunes(r.LastName, 100), "last_name", "last name must not exceed 100 characters")
	v.Check(validator.IsEmail(r.Email), "email", "email is invalid")
	v.Check(validator.MinRunes(r.Password, 8), "password", "password must be at least 8 characters")
	v.Check(validator.MaxRunes(r.Password, 72), "password", "password must not exceed 72 characters")
	v.Check(validator.In(r.PreferredLang, "en", "ar"), "preferred_lang", "must be en or ar")

	if r.PhoneNumber != "" {
		phone, err := formatter.FormatPhone(r.PhoneNumber, r.CountryCode)
		if err != nil {
			v.AddError("phone_number", "phone number is invalid for the given country code")
		} else {
			r.PhoneNumber = phone
		}
	}

	return v.Valid()
}

// LoginRequest represents the request to log in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmailRequest carries the address for a password reset.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TokenRequest carries an emailed verification token.
type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// SetNewPasswordRequest represents the request to set a new password.
type SetNewPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// Response represents the response for user data.
type Response struct {
	ID            uuid.UUID  `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	PreferredLang string     `json:"preferred_lang"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToResponse(u *models.User) *Response {
	return &Response{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		PreferredLang: u.PreferredLang,
		EmailVerified: u.IsEmailVerified(),
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Response  `json:"user"`
}
