package app

import (
	"context"
	"errors"

	"github.com/promptaat/promptaat/app/categories"
	"github.com/promptaat/promptaat/app/database"
	"github.com/promptaat/promptaat/app/emails"
	"github.com/promptaat/promptaat/app/user"
	"github.com/promptaat/promptaat/internal/cache"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/nexus"
)

type Config struct {
	DB         database.Config
	User       user.Config
	Cache      cache.Config
	Categories categories.Config
	Email      emails.Config

	AppHost        string `env:"APP_HOST" env-default:"localhost"`
	AppPort        string `env:"APP_PORT" env-default:"8080"`
	Env            string `env:"APP_ENV" env-default:"development" validate:"oneof=development staging production test"`
	Version        string `env:"APP_VERSION" env-default:"dev"`
	LogLevel       string `env:"LOG_LEVEL" env-default:"info"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

// Validate checks every module section
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return errors.Join(
		c.User.Validate(),
		c.Categories.Validate(),
		c.Email.Validate(),
	)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// productionSecrets rejects placeholder secrets once the loaded config says
// it runs in production
type productionSecrets struct {
	checker nexus.SecurityChecker
}

func (p productionSecrets) CheckSecurity(ctx context.Context, cfg interface{}) error {
	c, ok := cfg.(*Config)
	if !ok || !c.IsProduction() {
		return nil
	}
	return p.checker.CheckSecurity(ctx, cfg)
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	loader := nexus.NewLoader(
		nexus.WithSecurityChecker(productionSecrets{checker: nexus.NewWeakSecretChecker()}),
	)
	if err := loader.Load(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
