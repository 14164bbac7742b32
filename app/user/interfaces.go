package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/internal/security"
	"github.com/promptaat/promptaat/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User, roleName string) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error
	MarkEmailVerified(ctx context.Context, userID uuid.UUID, at time.Time) error

	GetByIDWithPermissions(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUserByIDWithRoles(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUsers(ctx context.Context, filters *AdminUserFilters) ([]models.User, int64, error)
	UpdateUserStatus(ctx context.Context, userID uuid.UUID, isActive bool) error

	ListRoles(ctx context.Context) ([]models.Role, error)
	GetRoleByID(ctx context.Context, roleID uuid.UUID) (*models.Role, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	RemoveRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) error

	RevokeToken(ctx context.Context, token *models.RevokedToken) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	GetSessionVersion(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Service interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*Response, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, payload *security.Payload) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error)

	RequestEmailVerification(ctx context.Context, userID uuid.UUID) error
	VerifyEmail(ctx context.Context, token string) error

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AdminService interface {
	GetUsers(ctx context.Context, filters *AdminUserFilters) ([]AdminUserResponse, int64, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*AdminUserResponse, error)
	UpdateUserStatus(ctx context.Context, userID uuid.UUID, isActive bool) error
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) (*AdminUserResponse, error)
	RemoveRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) (*AdminUserResponse, error)
	ListRoles(ctx context.Context) ([]RoleResponse, error)
}

type AuthService interface {
	GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
	InvalidatePermissions(ctx context.Context, userID uuid.UUID) error
	IsRevoked(ctx context.Context, payload *security.Payload) (bool, error)
}
