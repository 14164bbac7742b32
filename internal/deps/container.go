package deps

import (
	"fmt"
	"time"

	"github.com/promptaat/promptaat/internal/cache"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/security"
	"gorm.io/gorm"
)

// Container holds all shared dependencies
type Container struct {
	DB         *gorm.DB
	TokenMaker security.Maker
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger
	Cache      cache.Cache[string]
	Now        func() time.Time

	// modules register their repositories and services by key so that
	// packages can share them without importing each other
	repositories map[string]interface{}
	services     map[string]interface{}
}

func NewContainer(db *gorm.DB, tokenMaker security.Maker, sanitizer sanitizer.HTMLStripperer, logger logger.Logger, cache cache.Cache[string]) *Container {
	return &Container{
		DB:           db,
		TokenMaker:   tokenMaker,
		Sanitizer:    sanitizer,
		Logger:       logger,
		Cache:        cache,
		Now:          time.Now,
		repositories: make(map[string]interface{}),
		services:     make(map[string]interface{}),
	}
}

// RegisterRepository stores a repository with a key
func (c *Container) RegisterRepository(key string, repo interface{}) {
	c.repositories[key] = repo
}

// GetRepository retrieves a repository by key
func (c *Container) GetRepository(key string) interface{} {
	return c.repositories[key]
}

// RegisterService stores a service with a key
func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

// GetService retrieves a service by key
func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}

// Service returns the service registered under key as T. It panics when
// the key is missing or holds another type, which is a wiring bug.
func Service[T any](c *Container, key string) T {
	return mustAs[T](c.services[key], "service", key)
}

// Repository returns the repository registered under key as T
func Repository[T any](c *Container, key string) T {
	return mustAs[T](c.repositories[key], "repository", key)
}

func mustAs[T any](v interface{}, kind, key string) T {
	typed, ok := v.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("deps: %s %q is %T, want %T", kind, key, v, zero))
	}
	return typed
}
