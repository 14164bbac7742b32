package prompts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/models"
)

// service implements the Service interface
type service struct {
	repo          Repository
	categories    CategoryReader
	tools         ToolReader
	subscriptions SubscriptionChecker
	sanitizer     sanitizer.HTMLStripperer
	logger        logger.Logger
	now           func() time.Time
}

// NewService creates a new prompt service
func NewService(
	repo Repository,
	categories CategoryReader,
	tools ToolReader,
	subscriptions SubscriptionChecker,
	stripper sanitizer.HTMLStripperer,
	log logger.Logger,
) Service {
	return &service{
		repo:          repo,
		categories:    categories,
		tools:         tools,
		subscriptions: subscriptions,
		sanitizer:     stripper,
		logger:        log,
		now:           time.Now,
	}
}

// SearchPrompts lists prompts; public results hide premium content
func (s *service) SearchPrompts(ctx context.Context, filters *SearchFilters) ([]PromptResponse, int64, error) {
	filters.applyDefaults()

	prompts, total, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	return ToPromptResponseList(prompts, filters.IncludeUnpublished), total, nil
}

// GetPrompt returns a published prompt and counts the view
func (s *service) GetPrompt(ctx context.Context, id uint) (*PromptResponse, error) {
	prompt, err := s.published(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, notFound(err)
	}
	prompt.Views++

	return ToPromptResponse(prompt, prompt.IsPremium), nil
}

// GetPromptContent returns the full prompt; premium prompts need an active subscription
func (s *service) GetPromptContent(ctx context.Context, id uint, userID uuid.UUID) (*PromptResponse, error) {
	prompt, err := s.published(ctx, id)
	if err != nil {
		return nil, err
	}

	if prompt.IsPremium {
		ok, err := s.subscriptions.HasActiveSubscription(ctx, userID, s.now())
		if err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
		if !ok {
			return nil, models.ErrNoActiveSubscription
		}
	}

	return ToPromptResponse(prompt, false), nil
}

func (s *service) GetPromptForAdmin(ctx context.Context, id uint) (*PromptResponse, error) {
	prompt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return ToPromptResponse(prompt, false), nil
}

func (s *service) CreatePrompt(ctx context.Context, req *CreatePromptRequest) (*PromptResponse, error) {
	sanitizer.StripAll(s.sanitizer, &req.TitleEn, &req.TitleAr, &req.DescriptionEn, &req.DescriptionAr)

	if err := s.checkPlacement(ctx, req.CategoryID, req.SubcategoryID); err != nil {
		return nil, err
	}

	tools, err := s.resolveTools(ctx, req.ToolIDs)
	if err != nil {
		return nil, err
	}

	prompt := &models.Prompt{
		TitleEn:       req.TitleEn,
		TitleAr:       req.TitleAr,
		ContentEn:     req.ContentEn,
		ContentAr:     req.ContentAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		IsPremium:     req.IsPremium,
		IsPublished:   req.IsPublished,
		Tools:         tools,
	}

	if err := prompt.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	s.logger.Info("prompt created", logger.Fields{"prompt_id": prompt.ID, "category_id": prompt.CategoryID})
	return ToPromptResponse(prompt, false), nil
}

// UpdatePrompt merges the provided fields. Moving a prompt to another
// category drops its subcategory unless a new one is given.
func (s *service) UpdatePrompt(ctx context.Context, id uint, req UpdatePromptRequest) (*PromptResponse, error) {
	prompt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	sanitizer.StripAll(s.sanitizer, req.TitleEn, req.TitleAr, req.DescriptionEn, req.DescriptionAr)

	if req.CategoryID != nil && *req.CategoryID != prompt.CategoryID {
		prompt.CategoryID = *req.CategoryID
		prompt.SubcategoryID = nil
	}
	if req.SubcategoryID != nil {
		prompt.SubcategoryID = req.SubcategoryID
		if *req.SubcategoryID == 0 {
			prompt.SubcategoryID = nil
		}
	}
	if req.CategoryID != nil || req.SubcategoryID != nil {
		if err := s.checkPlacement(ctx, prompt.CategoryID, prompt.SubcategoryID); err != nil {
			return nil, err
		}
	}

	assign(&prompt.TitleEn, req.TitleEn)
	assign(&prompt.TitleAr, req.TitleAr)
	assign(&prompt.ContentEn, req.ContentEn)
	assign(&prompt.ContentAr, req.ContentAr)
	assign(&prompt.DescriptionEn, req.DescriptionEn)
	assign(&prompt.DescriptionAr, req.DescriptionAr)
	assign(&prompt.IsPremium, req.IsPremium)
	assign(&prompt.IsPublished, req.IsPublished)

	if req.ToolIDs != nil {
		tools, err := s.resolveTools(ctx, *req.ToolIDs)
		if err != nil {
			return nil, err
		}
		prompt.Tools = tools
	}

	if err := prompt.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, prompt, req.ToolIDs != nil); err != nil {
		return nil, err
	}

	return ToPromptResponse(prompt, false), nil
}

func (s *service) DeletePrompt(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}

	s.logger.Info("prompt deleted", logger.Fields{"prompt_id": id})
	return nil
}

func (s *service) published(ctx context.Context, id uint) (*models.Prompt, error) {
	prompt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !prompt.IsPublished {
		return nil, models.ErrRecordNotFound
	}
	return prompt, nil
}

// checkPlacement requires a top-level category and, when given, one of its children
func (s *service) checkPlacement(ctx context.Context, categoryID uint, subcategoryID *uint) error {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrInvalidPromptParent
		}
		return err
	}
	if !category.IsTopLevel() {
		return models.ErrInvalidPromptParent
	}

	if subcategoryID == nil {
		return nil
	}

	sub, err := s.categories.GetByID(ctx, *subcategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrInvalidSubcategory
		}
		return err
	}
	if !sub.HasParent(categoryID) {
		return models.ErrInvalidSubcategory
	}
	return nil
}

func (s *service) resolveTools(ctx context.Context, ids []uint) ([]models.Tool, error) {
	if len(ids) == 0 {
		return []models.Tool{}, nil
	}

	tools, err := s.tools.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tools) != len(ids) {
		return nil, models.ErrUnknownTool
	}
	return tools, nil
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return err
}
