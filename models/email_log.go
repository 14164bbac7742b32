package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailStatus represents the delivery outcome of an email
type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// Email templates sent by the application
const (
	EmailTemplateVerification  = "email_verification"
	EmailTemplatePasswordReset = "password_reset"
	EmailTemplateWelcome       = "welcome"
)

// EmailData holds template variables recorded with an email
type EmailData map[string]interface{}

// EmailLog is the delivery record of one outgoing email
type EmailLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    *uuid.UUID  `gorm:"type:uuid;index:idx_email_logs_user" json:"user_id"`
	Recipient string      `gorm:"type:varchar(255);not null;index:idx_email_logs_recipient" json:"recipient"`
	Subject   string      `gorm:"type:varchar(255);not null" json:"subject"`
	Template  string      `gorm:"type:varchar(50);not null" json:"template"`
	Data      EmailData   `gorm:"type:jsonb" json:"data,omitempty"`
	Status    EmailStatus `gorm:"type:varchar(20);not null;index:idx_email_logs_status" json:"status"`
	Error     string      `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime;index:idx_email_logs_created_at" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for EmailLog model
func (*EmailLog) TableName() string {
	return "email_logs"
}

// BeforeCreate sets up the model before creation
func (el *EmailLog) BeforeCreate(_ *gorm.DB) error {
	if el.ID == uuid.Nil {
		el.ID = uuid.New()
	}
	return nil
}

// Value implements driver.Valuer interface for EmailData
func (d EmailData) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner interface for EmailData
func (d *EmailData) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return nil
}

// Failed reports whether delivery failed
func (el *EmailLog) Failed() bool {
	return el.Status == EmailStatusFailed
}

// Validate performs validation on the email log model
func (el *EmailLog) Validate() error {
	if !IsEmail(el.Recipient) {
		return ErrInvalidEmailRecipient
	}
	if strings.TrimSpace(el.Subject) == "" {
		return ErrInvalidEmailSubject
	}
	return nil
}
