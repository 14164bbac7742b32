package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// AdminUserFilters defines the query parameters for filtering the user list.
type AdminUserFilters struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Status    string `form:"status"` // "active" or "inactive"
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// SanitizeAndValidate cleans and validates the filter inputs.
func (f *AdminUserFilters) SanitizeAndValidate(v *validator.Validator, s sanitizer.HTMLStripperer) {
	sanitizer.StripAll(s, &f.Search, &f.Status, &f.SortBy, &f.SortOrder)

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}

	v.Check(f.PerPage <= 100, "per_page", "must not exceed 100")
	v.Check(validator.In(f.Status, "", "active", "inactive"), "status", "status must be either active or inactive")
	v.Check(validator.In(f.SortBy, "", "created_at", "first_name", "email"), "sort_by", "invalid sort field")
	v.Check(validator.In(f.SortOrder, "", "asc", "desc"), "sort_order", "sort order must be either asc or desc")
}

// AdminAssignRoleRequest is the request body for assigning a role to a user.
type AdminAssignRoleRequest struct {
	RoleID uuid.UUID `json:"role_id"`
}

// Validate checks the request data.
func (r *AdminAssignRoleRequest) Validate(v *validator.Validator) {
	v.Check(r.RoleID != uuid.Nil, "role_id", "role_id is required")
}

// AdminUpdateUserStatusRequest is the request body for changing a user's active status.
type AdminUpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

// Validate checks the request data.
func (r *AdminUpdateUserStatusRequest) Validate(v *validator.Validator) {
	v.Check(r.IsActive != nil, "is_active", "is_active is a required field")
}

// AdminUserResponse is the detailed user response for admin views.
type AdminUserResponse struct {
	ID            uuid.UUID  `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Roles         []string   `json:"roles"`
}

func ToAdminUserResponse(u *models.User) *AdminUserResponse {
	roles := make([]string, 0, len(u.Roles))
	for i := range u.Roles {
		roles = append(roles, u.Roles[i].Name)
	}
	return &AdminUserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		IsActive:      u.Active(),
		EmailVerified: u.IsEmailVerified(),
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		Roles:         roles,
	}
}

// RoleResponse lists a role with its permission names
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
}

func ToRoleResponse(r *models.Role) RoleResponse {
	perms := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, p.Name)
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
	}
}
