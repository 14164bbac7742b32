package catalogs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/models"
)

// service implements the Service interface
type service struct {
	repo      Repository
	prompts   PromptReader
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

// NewService creates a new catalog service
func NewService(repo Repository, prompts PromptReader, stripper sanitizer.HTMLStripperer, log logger.Logger) Service {
	return &service{
		repo:      repo,
		prompts:   prompts,
		sanitizer: stripper,
		logger:    log,
	}
}

func (s *service) ListCatalogs(ctx context.Context, userID uuid.UUID) ([]CatalogResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToCatalogSummaryList(rows), nil
}

func (s *service) GetCatalog(ctx context.Context, userID uuid.UUID, id uint) (*CatalogResponse, error) {
	catalog, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToCatalogResponse(catalog), nil
}

func (s *service) CreateCatalog(ctx context.Context, userID uuid.UUID, req *CatalogRequest) (*CatalogResponse, error) {
	sanitizer.StripAll(s.sanitizer, &req.Name)

	catalog := &models.Catalog{UserID: userID, Name: req.Name}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, catalog); err != nil {
		return nil, err
	}

	s.logger.Info("catalog created", logger.Fields{"catalog_id": catalog.ID, "user_id": userID})
	return ToCatalogResponse(catalog), nil
}

func (s *service) RenameCatalog(ctx context.Context, userID uuid.UUID, id uint, req *CatalogRequest) (*CatalogResponse, error) {
	catalog, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	sanitizer.StripAll(s.sanitizer, &req.Name)
	catalog.Name = req.Name
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Rename(ctx, id, catalog.Name); err != nil {
		return nil, err
	}

	return ToCatalogResponse(catalog), nil
}

func (s *service) DeleteCatalog(ctx context.Context, userID uuid.UUID, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("catalog deleted", logger.Fields{"catalog_id": id, "user_id": userID})
	return nil
}

// AddPrompt saves a published prompt into the catalog
func (s *service) AddPrompt(ctx context.Context, userID uuid.UUID, id, promptID uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	prompt, err := s.prompts.GetByID(ctx, promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrPromptUnavailable
		}
		return err
	}
	if !prompt.IsPublished {
		return models.ErrPromptUnavailable
	}

	return s.repo.AddPrompt(ctx, id, promptID)
}

func (s *service) RemovePrompt(ctx context.Context, userID uuid.UUID, id, promptID uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.RemovePrompt(ctx, id, promptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrPromptUnavailable
		}
		return err
	}
	return nil
}

// owned loads the catalog, hiding catalogs of other users behind not found
func (s *service) owned(ctx context.Context, userID uuid.UUID, id uint) (*models.Catalog, error) {
	catalog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	if !catalog.IsOwnedBy(userID) {
		return nil, models.ErrRecordNotFound
	}
	return catalog, nil
}
