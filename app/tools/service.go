package tools

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/slug"
	"github.com/promptaat/promptaat/models"
)

// service implements the Service interface
type service struct {
	repo      Repository
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

// NewService creates a new tool service
func NewService(repo Repository, stripper sanitizer.HTMLStripperer, log logger.Logger) Service {
	return &service{
		repo:      repo,
		sanitizer: stripper,
		logger:    log,
	}
}

func (s *service) GetAllTools(ctx context.Context) ([]ToolResponse, error) {
	tools, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToToolResponseList(tools), nil
}

func (s *service) GetActiveTools(ctx context.Context) ([]ToolResponse, error) {
	tools, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToToolResponseList(tools), nil
}

// GetToolBySlug returns an active tool; inactive tools are reported as not found
func (s *service) GetToolBySlug(ctx context.Context, toolSlug string) (*ToolResponse, error) {
	tool, err := s.repo.GetBySlug(ctx, toolSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	if !tool.Active() {
		return nil, models.ErrRecordNotFound
	}
	return ToToolResponse(tool), nil
}

func (s *service) CreateTool(ctx context.Context, req *CreateToolRequest) (*ToolResponse, error) {
	sanitizer.StripAll(s.sanitizer, &req.Name, &req.Description)

	toolSlug, err := slug.Unique(ctx, req.Name, s.slugExists(0))
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	isActive := true
	tool := &models.Tool{
		Name:        req.Name,
		Slug:        toolSlug,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
		IconURL:     req.IconURL,
		IsActive:    &isActive,
	}

	if err := tool.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tool); err != nil {
		return nil, err
	}

	s.logger.Info("tool created", logger.Fields{"tool_id": tool.ID, "slug": tool.Slug})
	return ToToolResponse(tool), nil
}

// UpdateTool merges the provided fields; the slug follows the name
func (s *service) UpdateTool(ctx context.Context, id uint, req UpdateToolRequest) (*ToolResponse, error) {
	tool, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}

	sanitizer.StripAll(s.sanitizer, req.Name, req.Description)

	if req.Name != nil && *req.Name != tool.Name {
		toolSlug, err := slug.Unique(ctx, *req.Name, s.slugExists(tool.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
		tool.Name = *req.Name
		tool.Slug = toolSlug
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.WebsiteURL != nil {
		tool.WebsiteURL = *req.WebsiteURL
	}
	if req.IconURL != nil {
		tool.IconURL = *req.IconURL
	}
	if req.IsActive != nil {
		tool.IsActive = req.IsActive
	}

	if err := tool.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tool); err != nil {
		return nil, err
	}

	return ToToolResponse(tool), nil
}

func (s *service) DeleteTool(ctx context.Context, id uint) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) slugExists(excludeID uint) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate, excludeID)
	}
}
