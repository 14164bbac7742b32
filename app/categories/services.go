package categories

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
	hierarchy *Hierarchy
	ordering  *Ordering
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

// NewService creates a new category service
func NewService(repo Repository, cfg *Config, stripper sanitizer.HTMLStripperer, log logger.Logger) Service {
	return &service{
		repo:      repo,
		hierarchy: NewHierarchy(repo, cfg.MaxDepth),
		ordering:  NewOrdering(repo),
		sanitizer: stripper,
		logger:    log,
	}
}

// GetCategoryTree returns the top-level categories with their subcategories nested
func (s *service) GetCategoryTree(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

func (s *service) GetCategoryByID(ctx context.Context, id uint) (*CategoryResponse, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.withSubcategories(ctx, category)
}

func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err)
	}
	return s.withSubcategories(ctx, category)
}

func (s *service) withSubcategories(ctx context.Context, category *models.Category) (*CategoryResponse, error) {
	children, err := s.repo.FindByParent(ctx, &category.ID)
	if err != nil {
		return nil, err
	}
	category.Subcategories = children
	return ToCategoryResponse(category), nil
}

// CreateCategory validates the parent, derives a unique slug and appends the
// category to the end of its sibling group
func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	sanitizer.StripAll(s.sanitizer, &req.NameEn, &req.NameAr, &req.Description)

	if req.ParentCategoryID != nil {
		if err := s.checkParent(ctx, nil, *req.ParentCategoryID); err != nil {
			return nil, err
		}
	}

	categorySlug, err := slug.Unique(ctx, req.NameEn, s.slugExists(0))
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	order, err := s.ordering.NextOrder(ctx, req.ParentCategoryID)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		NameEn:           req.NameEn,
		NameAr:           req.NameAr,
		Slug:             categorySlug,
		ParentCategoryID: req.ParentCategoryID,
		Description:      req.Description,
		SortOrder:        order,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", logger.Fields{
		"category_id": category.ID,
		"slug":        category.Slug,
		"order":       category.SortOrder,
	})
	return ToCategoryResponse(category), nil
}

// UpdateCategory merges the provided fields. The slug follows name_en and a
// new parent is validated; a moved category is appended to its new group.
func (s *service) UpdateCategory(ctx context.Context, id uint, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	sanitizer.StripAll(s.sanitizer, req.NameEn, req.NameAr, req.Description)

	if req.ParentCategoryID.Set && !sameParent(category.ParentCategoryID, req.ParentCategoryID.Value) {
		newParent := req.ParentCategoryID.Value
		if newParent != nil {
			if err := s.checkParent(ctx, &category.ID, *newParent); err != nil {
				return nil, err
			}
		}
		order, err := s.ordering.NextOrder(ctx, newParent)
		if err != nil {
			return nil, err
		}
		category.ParentCategoryID = newParent
		category.SortOrder = order
	}

	if req.NameEn != nil && *req.NameEn != category.NameEn {
		categorySlug, err := slug.Unique(ctx, *req.NameEn, s.slugExists(category.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
		category.NameEn = *req.NameEn
		category.Slug = categorySlug
	}
	if req.NameAr != nil {
		category.NameAr = *req.NameAr
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// DeleteCategory removes a category that has no subcategories
func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFound(err)
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return models.ErrCategoryHasChildren
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("category deleted", logger.Fields{"category_id": id})
	return nil
}

func (s *service) ReorderCategories(ctx context.Context, req ReorderRequest) error {
	if err := s.ordering.ValidateAndUpdateOrder(ctx, req.Updates); err != nil {
		return err
	}

	s.logger.Info("categories reordered", logger.Fields{"count": len(req.Updates)})
	return nil
}

func (s *service) checkParent(ctx context.Context, categoryID *uint, parentID uint) error {
	ok, err := s.hierarchy.ValidateParent(ctx, categoryID, parentID)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrInvalidParentCategory
	}
	return s.hierarchy.CheckDepth(ctx, categoryID, &parentID)
}

func (s *service) slugExists(excludeID uint) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate, excludeID)
	}
}

func sameParent(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return err
}
