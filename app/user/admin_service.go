package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/models"
)

type adminService struct {
	repo   Repository
	auth   AuthService
	logger logger.Logger
}

func NewAdminService(repo Repository, auth AuthService, log logger.Logger) AdminService {
	return &adminService{repo: repo, auth: auth, logger: log}
}

func (s *adminService) GetUsers(ctx context.Context, filters *AdminUserFilters) ([]AdminUserResponse, int64, error) {
	users, total, err := s.repo.GetUsers(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AdminUserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *ToAdminUserResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *adminService) GetUserByID(ctx context.Context, id uuid.UUID) (*AdminUserResponse, error) {
	user, err := s.userWithRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAdminUserResponse(user), nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, userID uuid.UUID, isActive bool) error {
	if err := s.repo.UpdateUserStatus(ctx, userID, isActive); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update user status: %w", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *adminService) AssignRole(ctx context.Context, userID, roleID uuid.UUID) (*AdminUserResponse, error) {
	if _, err := s.userWithRoles(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetRoleByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	if err := s.repo.AssignRole(ctx, userID, roleID); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	s.invalidate(ctx, userID)

	return s.GetUserByID(ctx, userID)
}

func (s *adminService) RemoveRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) (*AdminUserResponse, error) {
	user, err := s.userWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(roleID) {
		return nil, models.ErrRoleNotAssigned
	}

	if err := s.repo.RemoveRoleFromUser(ctx, userID, roleID); err != nil {
		return nil, fmt.Errorf("failed to remove role from user: %w", err)
	}
	s.invalidate(ctx, userID)

	return s.GetUserByID(ctx, userID)
}

func (s *adminService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RoleResponse, len(roles))
	for i := range roles {
		out[i] = ToRoleResponse(&roles[i])
	}
	return out, nil
}

func (s *adminService) userWithRoles(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByIDWithRoles(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *adminService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.auth.InvalidatePermissions(ctx, userID); err != nil {
		s.logger.Error(err, logger.Fields{"user_id": userID, "action": "invalidate_permissions"})
	}
}
