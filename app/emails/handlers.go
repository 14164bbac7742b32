package emails

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// Handler serves the admin email log
type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

func NewHandler(service Service, stripper sanitizer.HTMLStripperer, log logger.Logger) *Handler {
	return &Handler{
		service:   service,
		sanitizer: stripper,
		logger:    log,
	}
}

// ListLogs godoc
// @Summary List sent emails
// @Tags admin-emails
// @Produce json
// @Security BearerAuth
// @Param status query string false "sent or failed"
// @Param template query string false "Template name"
// @Param recipient query string false "Recipient address"
// @Param user_id query string false "User ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (max 100)"
// @Success 200 {object} api.Response{data=[]EmailLogResponse,meta=api.PaginationMeta}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/emails [get]
func (h *Handler) ListLogs(c *gin.Context) {
	var filters LogFilters
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

	logs, total, err := h.service.ListLogs(c.Request.Context(), &filters)
	if err != nil {
		h.logger.Error(err, logger.Fields{"action": "list_email_logs"})
		api.InternalErrorResponse(c, "Failed to fetch email logs")
		return
	}

	api.PaginatedResponse(c, "Email logs retrieved successfully", logs,
		api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}

// GetLog godoc
// @Summary Get one email log entry
// @Tags admin-emails
// @Produce json
// @Security BearerAuth
// @Param id path string true "Email log ID"
// @Success 200 {object} api.Response{data=EmailLogResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/emails/{id} [get]
func (h *Handler) GetLog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid email log ID")
		return
	}

	entry, err := h.service.GetLog(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Email log")
			return
		}
		h.logger.Error(err, logger.Fields{"action": "get_email_log", "id": id})
		api.InternalErrorResponse(c, "Failed to fetch email log")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Email log retrieved successfully", entry)
}
