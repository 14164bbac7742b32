package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app"
	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/app/catalogs"
	"github.com/promptaat/promptaat/app/categories"
	"github.com/promptaat/promptaat/app/database"
	apiDoc "github.com/promptaat/promptaat/app/doc"
	"github.com/promptaat/promptaat/app/emails"
	"github.com/promptaat/promptaat/app/prompts"
	"github.com/promptaat/promptaat/app/subscriptions"
	"github.com/promptaat/promptaat/app/tools"
	"github.com/promptaat/promptaat/app/user"
	_ "github.com/promptaat/promptaat/docs"
	"github.com/promptaat/promptaat/internal/cache"
	"github.com/promptaat/promptaat/internal/deps"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/router"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/security"
)

// @title Promptaat API
// @version 1.0
// @description Bilingual catalog of AI prompts and tools with subscriptions and personal catalogs.

// @contact.name API Support Team
// @contact.email support@promptaat.com

// @license.name MIT License
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	appLogger := logger.NewZeroLogger(os.Stdout, level, logger.Fields{
		"service": "promptaat-api",
		"env":     cfg.Env,
	})

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal(err, nil)
	}
}

func run(cfg *app.Config, appLogger logger.Logger) error {
	db, err := database.New(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		appLogger.Info("migrations applied", nil)
	}

	store, err := cache.New[string](&cfg.Cache)
	if err != nil {
		return err
	}

	tokenMaker, err := security.NewMaker(cfg.User.TokenType, cfg.User.SymmetricKey)
	if err != nil {
		return fmt.Errorf("cannot create token maker: %w", err)
	}

	container := deps.NewContainer(db, tokenMaker, sanitizer.NewHTMLStripper(), appLogger, store)

	categories.InitRepositories(container, &cfg.Categories)
	tools.InitRepositories(container)
	subscriptions.InitRepositories(container)
	prompts.InitRepositories(container)
	catalogs.InitRepositories(container)
	emails.InitRepositories(container, &cfg.Email)
	user.InitRepositories(container, &cfg.User, &cfg.Email)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(appLogger), api.CorsMiddleware(cfg.AllowedOrigins))

	r.GET("/api/v1/healthz", api.HealthCheck(cfg.Env, cfg.Version, healthDeps(container)))

	mounter := router.NewMounter(container, user.Middleware(container))
	mounter.Public(r).Mount(
		categories.MountPublic,
		tools.MountPublic,
		prompts.MountPublic,
		subscriptions.MountPublic,
		user.MountPublic,
	)
	mounter.Authenticated(r).Mount(
		prompts.MountAuthenticated,
		catalogs.MountAuthenticated,
		subscriptions.MountAuthenticated,
		user.MountAuthenticated,
	)
	mounter.Admin(r).Mount(
		categories.MountAdmin,
		tools.MountAdmin,
		prompts.MountAdmin,
		subscriptions.MountAdmin,
		user.MountAdmin,
		emails.MountAdmin,
	)
	apiDoc.Init(r, cfg.Env)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("starting Promptaat API server", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		appLogger.Info("shutting down", logger.Fields{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	closeCache(store, appLogger)
	return nil
}

// healthDeps lists what the readiness probe pings
func healthDeps(c *deps.Container) map[string]api.Pinger {
	checks := map[string]api.Pinger{"database": database.Pinger{DB: c.DB}}
	if p, ok := c.Cache.(api.Pinger); ok {
		checks["cache"] = p
	}
	return checks
}

func closeCache(store cache.Cache[string], appLogger logger.Logger) {
	switch s := store.(type) {
	case interface{ Close() error }:
		if err := s.Close(); err != nil {
			appLogger.Error(fmt.Errorf("failed to close cache: %w", err), nil)
		}
	case interface{ Stop() }:
		s.Stop()
	}
}

func requestLogger(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := logger.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			l.Error(fmt.Errorf("request failed: %s", c.Errors.String()), fields)
			return
		}
		l.Debug("request", fields)
	}
}
