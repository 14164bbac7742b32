package prompts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// Handler handles HTTP requests for prompts
type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

// NewHandler creates a new prompt handler
func NewHandler(service Service, stripper sanitizer.HTMLStripperer, log logger.Logger) *Handler {
	return &Handler{
		service:   service,
		sanitizer: stripper,
		logger:    log,
	}
}

// SearchPrompts godoc
// @Summary Search prompts
// @Description Search published prompts by text, category, subcategory, tool and premium flag
// @Tags prompts
// @Produce json
// @Param q query string false "Search term"
// @Param category_id query int false "Category ID"
// @Param subcategory_id query int false "Subcategory ID"
// @Param tool_id query int false "Tool ID"
// @Param premium query string false "true or false"
// @Param sort query string false "newest, oldest or popular"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (max 100)"
// @Success 200 {object} api.Response{data=[]PromptResponse,meta=api.PaginationMeta}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/prompts [get]
func (h *Handler) SearchPrompts(c *gin.Context) {
	h.search(c, false)
}

// AdminListPrompts godoc
// @Summary List prompts
// @Description Same filters as the public search, unpublished prompts included
// @Tags admin-prompts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=[]PromptResponse,meta=api.PaginationMeta}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/prompts [get]
func (h *Handler) AdminListPrompts(c *gin.Context) {
	h.search(c, true)
}

func (h *Handler) search(c *gin.Context, includeUnpublished bool) {
	var filters SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	filters.SanitizeAndValidate(v, h.sanitizer)
	if !v.Valid() {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}
	filters.IncludeUnpublished = includeUnpublished

	prompts, total, err := h.service.SearchPrompts(c.Request.Context(), &filters)
	if err != nil {
		h.logger.Error(err, logger.Fields{"action": "search_prompts"})
		api.InternalErrorResponse(c, "Failed to fetch prompts")
		return
	}

	api.PaginatedResponse(c, "Prompts retrieved successfully", prompts,
		api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}

// GetPrompt godoc
// @Summary Get prompt
// @Description Get a published prompt and count the view. Premium content is locked.
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Success 200 {object} api.Response{data=PromptResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/prompts/{id} [get]
func (h *Handler) GetPrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	prompt, err := h.service.GetPrompt(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "Failed to fetch prompt")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Prompt retrieved successfully", prompt)
}

// GetPromptContent godoc
// @Summary Get prompt content
// @Description Get the full prompt text; premium prompts need an active subscription
// @Tags prompts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Prompt ID"
// @Success 200 {object} api.Response{data=PromptResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/prompts/{id}/content [get]
func (h *Handler) GetPromptContent(c *gin.Context) {
	userID, ok := api.UserID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	prompt, err := h.service.GetPromptContent(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err, "Failed to fetch prompt")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Prompt retrieved successfully", prompt)
}

// AdminGetPrompt godoc
// @Summary Get prompt (admin)
// @Tags admin-prompts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Prompt ID"
// @Success 200 {object} api.Response{data=PromptResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/prompts/{id} [get]
func (h *Handler) AdminGetPrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	prompt, err := h.service.GetPromptForAdmin(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "Failed to fetch prompt")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Prompt retrieved successfully", prompt)
}

// CreatePrompt godoc
// @Summary Create a prompt
// @Tags admin-prompts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePromptRequest true "Prompt creation request"
// @Success 201 {object} api.Response{data=PromptResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/prompts [post]
func (h *Handler) CreatePrompt(c *gin.Context) {
	var req CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	prompt, err := h.service.CreatePrompt(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err, "Failed to create prompt")
		return
	}

	api.CreatedResponse(c, "Prompt created successfully", prompt)
}

// UpdatePrompt godoc
// @Summary Update a prompt
// @Tags admin-prompts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Prompt ID"
// @Param request body UpdatePromptRequest true "Prompt update request"
// @Success 200 {object} api.Response{data=PromptResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/prompts/{id} [put]
func (h *Handler) UpdatePrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	prompt, err := h.service.UpdatePrompt(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err, "Failed to update prompt")
		return
	}

	api.UpdatedResponse(c, "Prompt updated successfully", prompt)
}

// DeletePrompt godoc
// @Summary Delete a prompt
// @Tags admin-prompts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Prompt ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/prompts/{id} [delete]
func (h *Handler) DeletePrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePrompt(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "Failed to delete prompt")
		return
	}

	api.DeletedResponse(c, "Prompt deleted successfully")
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Prompt")
	case errors.Is(err, models.ErrNoActiveSubscription):
		api.ForbiddenResponse(c, "An active subscription is required for premium prompts")
	case errors.Is(err, models.ErrInvalidPromptParent),
		errors.Is(err, models.ErrInvalidSubcategory),
		errors.Is(err, models.ErrUnknownTool),
		errors.Is(err, models.ErrInvalidPromptTitle),
		errors.Is(err, models.ErrInvalidPromptContent):
		api.ValidationErrorResponse(c, err.Error())
	default:
		h.logger.Error(err, logger.Fields{"path": c.FullPath()})
		api.InternalErrorResponse(c, fallback)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		api.ValidationErrorResponse(c, "Invalid prompt ID format")
		return 0, false
	}
	return uint(id), true
}
