package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/promptaat/promptaat/internal/formatter"
	"github.com/promptaat/promptaat/models"
)

var userSortColumns = map[string]string{
	"":           "created_at",
	"created_at": "created_at",
	"first_name": "first_name",
	"email":      "email",
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the user and grants roleName when it is not empty
func (r *repository) Create(ctx context.Context, user *models.User, roleName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		if roleName == "" {
			return nil
		}

		var role models.Role
		if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
			return err
		}
		return tx.Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", user.ID, role.ID).Error
	})
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *repository) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"password_hash":         hash,
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"session_version":       gorm.Expr("session_version + 1"),
	})
}

func (r *repository) MarkEmailVerified(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{"email_verified_at": at})
}

func (r *repository) UpdateUserStatus(ctx context.Context, userID uuid.UUID, isActive bool) error {
	values := map[string]interface{}{"is_active": isActive}
	if !isActive {
		values["session_version"] = gorm.Expr("session_version + 1")
	}
	return r.updateColumns(ctx, userID, values)
}

func (r *repository) GetSessionVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	var version int64
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Select("session_version").
		Limit(1).
		Scan(&version)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return version, nil
}

func (r *repository) updateColumns(ctx context.Context, userID uuid.UUID, values map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GetByIDWithPermissions(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUserByIDWithRoles(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Roles", func(db *gorm.DB) *gorm.DB { return db.Order("roles.name") }).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers returns one page of users with their roles and the total match count
func (r *repository) GetUsers(ctx context.Context, filters *AdminUserFilters) ([]models.User, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		switch filters.Status {
		case "active":
			db = db.Where("is_active = ?", true)
		case "inactive":
			db = db.Where("is_active = ?", false)
		}
		if search := strings.TrimSpace(filters.Search); search != "" {
			like := formatter.ContainsPattern(search)
			db = db.Where("(email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?)", like, like, like)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if total == 0 {
		return users, 0, nil
	}

	order := clause.OrderByColumn{
		Column: clause.Column{Name: userSortColumns[filters.SortBy]},
		Desc:   filters.SortOrder != "asc",
	}
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Roles").
		Order(order).
		Order("id").
		Offset((filters.Page - 1) * filters.PerPage).
		Limit(filters.PerPage).
		Find(&users).Error
	return users, total, err
}

func (r *repository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Order("name").Find(&roles).Error
	return roles, err
}

func (r *repository) GetRoleByID(ctx context.Context, roleID uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("id = ?", roleID).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?) ON CONFLICT DO NOTHING", userID, roleID).
		Error
}

func (r *repository) RemoveRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) error {
	res := r.db.WithContext(ctx).Exec("DELETE FROM user_roles WHERE user_id = ? AND role_id = ?", userID, roleID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) RevokeToken(ctx context.Context, token *models.RevokedToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_jti"}}, DoNothing: true}).
		Create(token).Error
}

func (r *repository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RevokedToken{}).Where("token_jti = ?", jti).Count(&count).Error
	return count > 0, err
}
