package tools

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// Handler handles HTTP requests for tools
type Handler struct {
	service Service
}

// NewHandler creates a new tool handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetActiveTools godoc
// @Summary List tools
// @Description Get the AI tools prompts can be filtered by
// @Tags tools
// @Produce json
// @Success 200 {object} api.Response{data=[]ToolResponse}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/tools [get]
func (h *Handler) GetActiveTools(c *gin.Context) {
	tools, err := h.service.GetActiveTools(c.Request.Context())
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch tools")
		return
	}

	api.ListResponse(c, "Tools retrieved successfully", tools, len(tools))
}

// GetAllTools godoc
// @Summary List all tools
// @Description Get every tool including inactive ones
// @Tags admin-tools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=[]ToolResponse}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/tools [get]
func (h *Handler) GetAllTools(c *gin.Context) {
	tools, err := h.service.GetAllTools(c.Request.Context())
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch tools")
		return
	}

	api.ListResponse(c, "Tools retrieved successfully", tools, len(tools))
}

// GetToolBySlug godoc
// @Summary Get tool by slug
// @Tags tools
// @Produce json
// @Param slug path string true "Tool slug"
// @Success 200 {object} api.Response{data=ToolResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/tools/{slug} [get]
func (h *Handler) GetToolBySlug(c *gin.Context) {
	tool, err := h.service.GetToolBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Tool")
			return
		}
		api.InternalErrorResponse(c, "Failed to fetch tool")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Tool retrieved successfully", tool)
}

// CreateTool godoc
// @Summary Create a tool
// @Tags admin-tools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateToolRequest true "Tool creation request"
// @Success 201 {object} api.Response{data=ToolResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/tools [post]
func (h *Handler) CreateTool(c *gin.Context) {
	var req CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	tool, err := h.service.CreateTool(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidToolName) || errors.Is(err, models.ErrInvalidToolURL) {
			api.ValidationErrorResponse(c, err.Error())
			return
		}
		api.InternalErrorResponse(c, "Failed to create tool")
		return
	}

	api.CreatedResponse(c, "Tool created successfully", tool)
}

// UpdateTool godoc
// @Summary Update a tool
// @Tags admin-tools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tool ID"
// @Param request body UpdateToolRequest true "Tool update request"
// @Success 200 {object} api.Response{data=ToolResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/tools/{id} [put]
func (h *Handler) UpdateTool(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		api.ValidationErrorResponse(c, "Invalid tool ID format")
		return
	}

	var req UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	tool, err := h.service.UpdateTool(c.Request.Context(), uint(id), req)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Tool")
			return
		}
		if errors.Is(err, models.ErrInvalidToolName) || errors.Is(err, models.ErrInvalidToolURL) {
			api.ValidationErrorResponse(c, err.Error())
			return
		}
		api.InternalErrorResponse(c, "Failed to update tool")
		return
	}

	api.UpdatedResponse(c, "Tool updated successfully", tool)
}

// DeleteTool godoc
// @Summary Delete a tool
// @Tags admin-tools
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tool ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/tools/{id} [delete]
func (h *Handler) DeleteTool(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		api.ValidationErrorResponse(c, "Invalid tool ID format")
		return
	}

	if err := h.service.DeleteTool(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Tool")
			return
		}
		api.InternalErrorResponse(c, "Failed to delete tool")
		return
	}

	api.DeletedResponse(c, "Tool deleted successfully")
}
