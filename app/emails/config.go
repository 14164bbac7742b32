package emails

import (
	"errors"
	"strings"

	"github.com/promptaat/promptaat/models"
)

// Config controls outgoing mail
type Config struct {
	FromAddress string `env:"EMAIL_FROM" env-default:"no-reply@promptaat.com"`
	// FrontendURL prefixes the links placed in verification and reset emails
	FrontendURL string `env:"APP_FRONTEND_URL" env-default:"http://localhost:3000"`
}

func (c *Config) Validate() error {
	if !models.IsEmail(c.FromAddress) {
		return errors.New("EMAIL_FROM must be an email address")
	}
	if !strings.HasPrefix(c.FrontendURL, "http://") && !strings.HasPrefix(c.FrontendURL, "https://") {
		return errors.New("APP_FRONTEND_URL must be an http(s) URL")
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		FromAddress: "no-reply@promptaat.com",
		FrontendURL: "http://localhost:3000",
	}
}

// Link joins the frontend URL with path
func (c *Config) Link(path string) string {
	return strings.TrimRight(c.FrontendURL, "/") + "/" + strings.TrimLeft(path, "/")
}
