package subscriptions

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

// Handler handles HTTP requests for plans and subscriptions
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new subscription handler
func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// ListPlans godoc
// @Summary List plans
// @Tags subscriptions
// @Produce json
// @Success 200 {object} api.Response{data=[]PlanResponse}
// @Router /api/v1/plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	h.listPlans(c, false)
}

// AdminListPlans godoc
// @Summary List all plans
// @Tags admin-subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=[]PlanResponse}
// @Router /api/v1/admin/plans [get]
func (h *Handler) AdminListPlans(c *gin.Context) {
	h.listPlans(c, true)
}

func (h *Handler) listPlans(c *gin.Context, includeInactive bool) {
	plans, err := h.service.ListPlans(c.Request.Context(), includeInactive)
	if err != nil {
		h.handleError(c, err, "Failed to fetch plans")
		return
	}

	api.ListResponse(c, "Plans retrieved successfully", plans, len(plans))
}

// CreatePlan godoc
// @Summary Create a plan
// @Tags admin-subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePlanRequest true "Plan creation request"
// @Success 201 {object} api.Response{data=PlanResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/plans [post]
func (h *Handler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	plan, err := h.service.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err, "Failed to create plan")
		return
	}

	api.CreatedResponse(c, "Plan created successfully", plan)
}

// UpdatePlan godoc
// @Summary Update a plan
// @Tags admin-subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Param request body UpdatePlanRequest true "Plan update request"
// @Success 200 {object} api.Response{data=PlanResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/plans/{id} [patch]
func (h *Handler) UpdatePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		api.ValidationErrorResponse(c, "Invalid plan ID format")
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	plan, err := h.service.UpdatePlan(c.Request.Context(), uint(id), req)
	if err != nil {
		h.handleError(c, err, "Failed to update plan")
		return
	}

	api.UpdatedResponse(c, "Plan updated successfully", plan)
}

// Subscribe godoc
// @Summary Subscribe to a plan
// @Description Starts a subscription now; a current subscription is cancelled
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubscribeRequest true "Plan to subscribe to"
// @Success 201 {object} api.Response{data=SubscriptionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/subscriptions [post]
func (h *Handler) Subscribe(c *gin.Context) {
	userID, ok := api.UserID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		h.handleError(c, err, "Failed to subscribe")
		return
	}

	api.CreatedResponse(c, "Subscription started", sub)
}

// GetCurrent godoc
// @Summary Current subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=SubscriptionResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/subscriptions/current [get]
func (h *Handler) GetCurrent(c *gin.Context) {
	userID, ok := api.UserID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	sub, err := h.service.GetCurrent(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err, "Failed to fetch subscription")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Subscription retrieved successfully", sub)
}

// Cancel godoc
// @Summary Cancel the current subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/subscriptions/current [delete]
func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := api.UserID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID); err != nil {
		h.handleError(c, err, "Failed to cancel subscription")
		return
	}

	api.DeletedResponse(c, "Subscription cancelled")
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Plan")
	case errors.Is(err, models.ErrNoActiveSubscription):
		api.NotFoundResponse(c, "Active subscription")
	case errors.Is(err, models.ErrPlanNotActive),
		errors.Is(err, models.ErrInvalidPlanName),
		errors.Is(err, models.ErrInvalidPlanPrice),
		errors.Is(err, models.ErrInvalidPlanInterval):
		api.ValidationErrorResponse(c, err.Error())
	default:
		h.logger.Error(err, logger.Fields{"path": c.FullPath()})
		api.InternalErrorResponse(c, fallback)
	}
}
