package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/internal/cache"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/security"
	"github.com/promptaat/promptaat/models"
)

const permissionsTTL = 30 * time.Minute

type authService struct {
	repo   Repository
	cache  cache.Cache[string]
	logger logger.Logger
}

func NewAuthService(repo Repository, cache cache.Cache[string], log logger.Logger) AuthService {
	return &authService{repo: repo, cache: cache, logger: log}
}

func permissionsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:permissions", userID)
}

// GetUserPermissions returns the permission names granted through the
// user's roles. Inactive users get none.
func (s *authService) GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	cacheKey := permissionsKey(userID)

	cachedPermissions, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cachedPermissions != "" {
		var permissions []string
		if err := json.Unmarshal([]byte(cachedPermissions), &permissions); err == nil {
			return permissions, nil
		}
	}

	user, err := s.repo.GetByIDWithPermissions(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}
	if !user.Active() {
		return nil, models.ErrAccountInactive
	}

	permissions := user.PermissionNames()

	permissionsJSON, err := json.Marshal(permissions)
	if err == nil {
		err = s.cache.Set(ctx, cacheKey, string(permissionsJSON), permissionsTTL)
	}
	if err != nil {
		s.logger.Error(err, logger.Fields{"user_id": userID, "action": "cache_permissions"})
	}

	return permissions, nil
}

// InvalidatePermissions drops the cached permission set after a role or status change
func (s *authService) InvalidatePermissions(ctx context.Context, userID uuid.UUID) error {
	if err := s.cache.Delete(ctx, permissionsKey(userID)); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return err
	}
	return nil
}

// IsRevoked reports whether the token was logged out or issued before the
// user's sessions were ended by a password reset or deactivation.
func (s *authService) IsRevoked(ctx context.Context, payload *security.Payload) (bool, error) {
	revoked, err := s.repo.IsTokenRevoked(ctx, payload.ID.String())
	if err != nil || revoked {
		return revoked, err
	}

	version, err := s.repo.GetSessionVersion(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return payload.Version != version, nil
}
