package catalogs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// Handler handles HTTP requests for catalogs
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// ListCatalogs godoc
// @Summary List my catalogs
// @Tags catalogs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=[]CatalogResponse}
// @Router /api/v1/catalogs [get]
func (h *Handler) ListCatalogs(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	catalogs, err := h.service.ListCatalogs(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err, "Failed to fetch catalogs")
		return
	}

	api.ListResponse(c, "Catalogs retrieved successfully", catalogs, len(catalogs))
}

// GetCatalog godoc
// @Summary Get a catalog with its prompts
// @Tags catalogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Catalog ID"
// @Success 200 {object} api.Response{data=CatalogResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/catalogs/{id} [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseParam(c, "id", "catalog")
	if !ok {
		return
	}

	catalog, err := h.service.GetCatalog(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, err, "Failed to fetch catalog")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Catalog retrieved successfully", catalog)
}

// CreateCatalog godoc
// @Summary Create a catalog
// @Tags catalogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CatalogRequest true "Catalog name"
// @Success 201 {object} api.Response{data=CatalogResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/catalogs [post]
func (h *Handler) CreateCatalog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	req, ok := bindCatalogRequest(c)
	if !ok {
		return
	}

	catalog, err := h.service.CreateCatalog(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err, "Failed to create catalog")
		return
	}

	api.CreatedResponse(c, "Catalog created successfully", catalog)
}

// RenameCatalog godoc
// @Summary Rename a catalog
// @Tags catalogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Catalog ID"
// @Param request body CatalogRequest true "Catalog name"
// @Success 200 {object} api.Response{data=CatalogResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/catalogs/{id} [put]
func (h *Handler) RenameCatalog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseParam(c, "id", "catalog")
	if !ok {
		return
	}

	req, ok := bindCatalogRequest(c)
	if !ok {
		return
	}

	catalog, err := h.service.RenameCatalog(c.Request.Context(), userID, id, req)
	if err != nil {
		h.handleError(c, err, "Failed to rename catalog")
		return
	}

	api.UpdatedResponse(c, "Catalog renamed successfully", catalog)
}

// DeleteCatalog godoc
// @Summary Delete a catalog
// @Tags catalogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Catalog ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/catalogs/{id} [delete]
func (h *Handler) DeleteCatalog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseParam(c, "id", "catalog")
	if !ok {
		return
	}

	if err := h.service.DeleteCatalog(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, err, "Failed to delete catalog")
		return
	}

	api.DeletedResponse(c, "Catalog deleted successfully")
}

// AddPrompt godoc
// @Summary Save a prompt into a catalog
// @Tags catalogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Catalog ID"
// @Param request body AddPromptRequest true "Prompt to add"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/catalogs/{id}/prompts [post]
func (h *Handler) AddPrompt(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseParam(c, "id", "catalog")
	if !ok {
		return
	}

	var req AddPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.AddPrompt(c.Request.Context(), userID, id, req.PromptID); err != nil {
		h.handleError(c, err, "Failed to add prompt")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Prompt added to catalog", nil)
}

// RemovePrompt godoc
// @Summary Remove a prompt from a catalog
// @Tags catalogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Catalog ID"
// @Param prompt_id path int true "Prompt ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/catalogs/{id}/prompts/{prompt_id} [delete]
func (h *Handler) RemovePrompt(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseParam(c, "id", "catalog")
	if !ok {
		return
	}
	promptID, ok := parseParam(c, "prompt_id", "prompt")
	if !ok {
		return
	}

	if err := h.service.RemovePrompt(c.Request.Context(), userID, id, promptID); err != nil {
		h.handleError(c, err, "Failed to remove prompt")
		return
	}

	api.DeletedResponse(c, "Prompt removed from catalog")
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Catalog")
	case errors.Is(err, models.ErrPromptUnavailable):
		api.NotFoundResponse(c, "Prompt")
	case errors.Is(err, models.ErrInvalidCatalogName):
		api.ValidationErrorResponse(c, err.Error())
	default:
		h.logger.Error(err, logger.Fields{"path": c.FullPath()})
		api.InternalErrorResponse(c, fallback)
	}
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := api.UserID(c)
	if !ok {
		api.UnauthorizedResponse(c)
	}
	return userID, ok
}

func bindCatalogRequest(c *gin.Context) (*CatalogRequest, bool) {
	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return nil, false
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return nil, false
	}
	return &req, true
}

func parseParam(c *gin.Context, name, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		api.ValidationErrorResponse(c, "Invalid "+resource+" ID format")
		return 0, false
	}
	return uint(id), true
}
