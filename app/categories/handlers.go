package categories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// Handler handles HTTP requests for categories
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new category handler
func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// GetCategoryTree godoc
// @Summary List categories
// @Description Get the category tree: top-level categories by order, each with its subcategories
// @Tags categories
// @Produce json
// @Success 200 {object} api.Response{data=[]CategoryResponse}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/categories [get]
func (h *Handler) GetCategoryTree(c *gin.Context) {
	tree, err := h.service.GetCategoryTree(c.Request.Context())
	if err != nil {
		h.logger.Error(err, logger.Fields{"action": "get_category_tree"})
		api.InternalErrorResponse(c, "Failed to fetch categories")
		return
	}

	api.ListResponse(c, "Categories retrieved successfully", tree, len(tree))
}

// GetCategoryByID godoc
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} api.Response{data=CategoryResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/categories/{id} [get]
func (h *Handler) GetCategoryByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.service.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "Failed to fetch category")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

// GetCategoryBySlug godoc
// @Summary Get category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} api.Response{data=CategoryResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/categories/slug/{slug} [get]
func (h *Handler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.service.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err, "Failed to fetch category")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

// CreateCategory godoc
// @Summary Create category
// @Description Create a category; the slug and the order within its sibling group are assigned
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} api.Response{data=CategoryResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "Failed to create category")
		return
	}

	api.CreatedResponse(c, "Category created successfully", category)
}

// UpdateCategory godoc
// @Summary Update category
// @Description Partially update a category. Changing name_en regenerates the slug; parent_category_id null makes it top-level
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} api.Response{data=CategoryResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err, "Failed to update category")
		return
	}

	api.UpdatedResponse(c, "Category updated successfully", category)
}

// DeleteCategory godoc
// @Summary Delete category
// @Description Delete a category without subcategories
// @Tags admin-categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "Failed to delete category")
		return
	}

	api.DeletedResponse(c, "Category deleted successfully")
}

// ReorderCategories godoc
// @Summary Reorder categories
// @Description Assign new orders to a batch of categories; orders must stay unique within each sibling group
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReorderRequest true "Order updates"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/categories/reorder [put]
func (h *Handler) ReorderCategories(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.ReorderCategories(c.Request.Context(), req); err != nil {
		h.handleError(c, err, "Failed to reorder categories")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Categories reordered successfully", nil)
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Category")
	case errors.Is(err, models.ErrCategoryHasChildren):
		api.ConflictResponse(c, "Category has subcategories and cannot be deleted")
	case errors.Is(err, models.ErrInvalidParentCategory),
		errors.Is(err, models.ErrCategoryDepthExceeded),
		errors.Is(err, models.ErrDuplicateSiblingOrder),
		errors.Is(err, models.ErrDuplicateOrderTarget),
		errors.Is(err, models.ErrEmptyOrderBatch),
		errors.Is(err, models.ErrInvalidCategoryName),
		errors.Is(err, models.ErrInvalidCategorySlug):
		api.ValidationErrorResponse(c, err.Error())
	default:
		h.logger.Error(err, logger.Fields{"path": c.FullPath()})
		api.InternalErrorResponse(c, fallback)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		api.ValidationErrorResponse(c, "Invalid category ID format")
		return 0, false
	}
	return uint(id), true
}
