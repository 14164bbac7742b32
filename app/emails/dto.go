package emails

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// LogFilters narrows the email log listing
type LogFilters struct {
	Status    string `form:"status"`
	Template  string `form:"template"`
	Recipient string `form:"recipient"`
	UserID    string `form:"user_id"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

func (f *LogFilters) SanitizeAndValidate(v *validator.Validator, s sanitizer.HTMLStripperer) {
	sanitizer.StripAll(s, &f.Status, &f.Template, &f.Recipient, &f.UserID)

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = defaultPerPage
	}

	v.Check(f.PerPage <= maxPerPage, "per_page", "must not exceed 100")
	if f.Status != "" {
		v.Check(validator.In(f.Status, string(models.EmailStatusSent), string(models.EmailStatusFailed)),
			"status", "must be sent or failed")
	}
	if f.Template != "" {
		v.Check(validator.In(f.Template,
			models.EmailTemplateVerification, models.EmailTemplatePasswordReset, models.EmailTemplateWelcome),
			"template", "is not a known template")
	}
	v.Check(validator.MaxRunes(f.Recipient, 255), "recipient", "must not exceed 255 characters")
	if f.UserID != "" {
		_, err := uuid.Parse(f.UserID)
		v.Check(err == nil, "user_id", "must be a valid UUID")
	}
}

func (f *LogFilters) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// EmailLogResponse is the admin view of one delivery record
type EmailLogResponse struct {
	ID        uuid.UUID        `json:"id"`
	UserID    *uuid.UUID       `json:"user_id,omitempty"`
	Recipient string           `json:"recipient"`
	Subject   string           `json:"subject"`
	Template  string           `json:"template"`
	Data      models.EmailData `json:"data,omitempty"`
	Status    string           `json:"status"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func ToEmailLogResponse(l *models.EmailLog) EmailLogResponse {
	return EmailLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Recipient: l.Recipient,
		Subject:   l.Subject,
		Template:  l.Template,
		Data:      l.Data,
		Status:    string(l.Status),
		Error:     l.Error,
		CreatedAt: l.CreatedAt,
	}
}
