package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLogins = 5
	lockDuration    = time.Hour
)

// User represents a registered member of the catalog
type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email               string     `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	EmailVerifiedAt     *time.Time `gorm:"type:timestamptz" json:"email_verified_at"`
	PasswordHash        string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName           string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName            string     `gorm:"type:varchar(100)" json:"last_name"`
	Phone               string     `gorm:"type:varchar(20)" json:"phone"`
	PreferredLang       string     `gorm:"type:varchar(2);default:'en'" json:"preferred_lang"`
	LastLoginAt         *time.Time `gorm:"type:timestamptz" json:"last_login_at"`
	FailedLoginAttempts int        `gorm:"default:0" json:"failed_login_attempts"`
	LockedUntil         *time.Time `gorm:"type:timestamptz" json:"locked_until"`
	IsActive            *bool      `gorm:"default:true" json:"is_active"`
	SessionVersion      int64      `gorm:"not null;default:1" json:"-"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Roles         []Role         `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	Catalogs      []Catalog      `gorm:"foreignKey:UserID" json:"-"`
	Subscriptions []Subscription `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for User model
func (*User) TableName() string {
	return "users"
}

// BeforeCreate sets up the model before creation
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetPassword hashes and sets the user password
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// IsEmailVerified checks if the user's email is verified
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

// MarkEmailVerified stamps the verification time
func (u *User) MarkEmailVerified(at time.Time) {
	u.EmailVerifiedAt = &at
}

// IsAnonymous reports whether u is the unauthenticated placeholder user
func (u *User) IsAnonymous() bool {
	return u.ID == uuid.Nil
}

// Active reports whether the account is enabled
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// IsLocked checks if the user account is currently locked
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && u.LockedUntil.After(time.Now())
}

// IncrementFailedLogins increments the failed login counter and locks
// the account once the limit is reached
func (u *User) IncrementFailedLogins() {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxFailedLogins {
		lockUntil := time.Now().Add(lockDuration)
		u.LockedUntil = &lockUntil
	}
}

// ResetFailedLogins resets the failed login counter
func (u *User) ResetFailedLogins() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
}

// RecordLogin updates the last login information
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.ResetFailedLogins()
}

// HasRole checks whether the user holds the role with the given id
func (u *User) HasRole(roleID uuid.UUID) bool {
	for i := range u.Roles {
		if u.Roles[i].ID == roleID {
			return true
		}
	}
	return false
}

// PermissionNames flattens the permissions granted through all roles
func (u *User) PermissionNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for i := range u.Roles {
		for _, p := range u.Roles[i].Permissions {
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			names = append(names, p.Name)
		}
	}
	return names
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validate performs validation on the user model
func (u *User) Validate() error {
	if !IsEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrInvalidPassword
	}
	return nil
}

// MaskSensitiveData masks sensitive information for logging
func (u *User) MaskSensitiveData() *User {
	masked := *u
	masked.PasswordHash = "***"
	if at := strings.LastIndex(masked.Email, "@"); at > 0 {
		masked.Email = masked.Email[:1] + "***" + masked.Email[at:]
	}
	if len(masked.Phone) > 4 {
		masked.Phone = "***" + masked.Phone[len(masked.Phone)-4:]
	}
	return &masked
}

func IsEmail(identity string) bool {
	at := strings.LastIndex(identity, "@")
	return at > 0 && at < len(identity)-1 && strings.Contains(identity[at:], ".")
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
