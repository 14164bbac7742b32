package emails

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/google/uuid"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/models"
)

// Message is one outgoing email
type Message struct {
	UserID   *uuid.UUID
	To       string
	Subject  string
	Template string
	Data     models.EmailData
}

// Sender sends application emails and records every attempt
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Transport hands a rendered email to a delivery provider
type Transport interface {
	Deliver(ctx context.Context, from, to, subject, body string) error
}

var bodies = template.Must(template.New("emails").Parse(`
{{define "email_verification"}}Hello {{.name}},

Confirm your email address by opening the link below. It expires in 24 hours.

{{.link}}
{{end}}
{{define "password_reset"}}Hello {{.name}},

Reset your password using the link below. If you did not ask for this, ignore this email.

{{.link}}
{{end}}
{{define "welcome"}}Welcome to Promptaat, {{.name}}!
{{end}}
`))

// sender renders templates, delivers through a Transport and writes the log
type sender struct {
	cfg       *Config
	transport Transport
	repo      Repository
	logger    logger.Logger
}

// NewSender creates a Sender
func NewSender(cfg *Config, transport Transport, repo Repository, log logger.Logger) Sender {
	return &sender{
		cfg:       cfg,
		transport: transport,
		repo:      repo,
		logger:    log,
	}
}

// Send delivers msg. The delivery error is returned after the attempt is logged.
func (s *sender) Send(ctx context.Context, msg Message) error {
	entry := &models.EmailLog{
		UserID:    msg.UserID,
		Recipient: msg.To,
		Subject:   msg.Subject,
		Template:  msg.Template,
		Data:      redact(msg.Data),
		Status:    models.EmailStatusSent,
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	var body bytes.Buffer
	deliveryErr := bodies.ExecuteTemplate(&body, msg.Template, msg.Data)
	if deliveryErr == nil {
		deliveryErr = s.transport.Deliver(ctx, s.cfg.FromAddress, msg.To, msg.Subject, body.String())
	}
	if deliveryErr != nil {
		entry.Status = models.EmailStatusFailed
		entry.Error = deliveryErr.Error()
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error(fmt.Errorf("failed to write email log: %w", err), logger.Fields{
			"recipient": msg.To,
			"template":  msg.Template,
		})
	}

	if deliveryErr != nil {
		return fmt.Errorf("failed to send %s email: %w", msg.Template, deliveryErr)
	}

	s.logger.Info("email sent", logger.Fields{"email_log_id": entry.ID, "template": msg.Template})
	return nil
}

// redact drops secrets from the data stored with the log entry
func redact(data models.EmailData) models.EmailData {
	if data == nil {
		return nil
	}
	out := make(models.EmailData, len(data))
	for k, v := range data {
		switch k {
		case "link", "token":
			out[k] = "[redacted]"
		default:
			out[k] = v
		}
	}
	return out
}

// LogTransport writes emails to the application log instead of delivering them
type LogTransport struct {
	Logger logger.Logger
}

func (t LogTransport) Deliver(_ context.Context, from, to, subject, body string) error {
	t.Logger.Info("email delivered to log", logger.Fields{
		"from":    from,
		"to":      to,
		"subject": subject,
	})
	t.Logger.Debug(body, logger.Fields{"to": to})
	return nil
}
