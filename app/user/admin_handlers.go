package user

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

type AdminHandler struct {
	service   AdminService
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

func NewAdminHandler(service AdminService, stripper sanitizer.HTMLStripperer, log logger.Logger) *AdminHandler {
	return &AdminHandler{service: service, sanitizer: stripper, logger: log}
}

// GetUsers godoc
// @Summary      List users (Admin)
// @Description  Retrieves a paginated list of users with filtering options.
// @Tags         admin-users
// @Produce      json
// @Param        page    query     int     false  "Page number" default(1)
// @Param        per_page query    int     false  "Items per page" default(20)
// @Param        status  query     string  false  "Filter by status (active or inactive)" Enums(active, inactive)
// @Param        search  query     string  false  "Search term for name or email"
// @Param        sort_by query     string  false  "Sort by field" Enums(created_at, first_name, email)
// @Param        sort_order query string  false  "Sort order" Enums(asc, desc)
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=[]AdminUserResponse,meta=api.PaginationMeta}
// @Failure      400  {object}  api.Response{error=api.ErrorInfo}
// @Failure      500  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users [get]
func (h *AdminHandler) GetUsers(c *gin.Context) {
	var filters AdminUserFilters
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

	users, total, err := h.service.GetUsers(c.Request.Context(), &filters)
	if err != nil {
		h.handleError(c, err, "Failed to retrieve users")
		return
	}

	api.PaginatedResponse(c, "Users retrieved successfully", users,
		api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}

// GetUserByID godoc
// @Summary      Get a user (Admin)
// @Tags         admin-users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=AdminUserResponse}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id} [get]
func (h *AdminHandler) GetUserByID(c *gin.Context) {
	userID, ok := parseUUID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err, "Failed to retrieve user")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "User retrieved successfully", user)
}

// UpdateUserStatus godoc
// @Summary      Update user status (Admin)
// @Description  Activates or deactivates a user account.
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Param        request body AdminUpdateUserStatusRequest true "Update Status Request"
// @Security     BearerAuth
// @Success      200  {object}  api.Response
// @Failure      400  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id}/status [patch]
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	userID, ok := parseUUID(c, "id", "user")
	if !ok {
		return
	}

	var req AdminUpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	if err := h.service.UpdateUserStatus(c.Request.Context(), userID, *req.IsActive); err != nil {
		h.handleError(c, err, "Failed to update user status")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "User status updated successfully", nil)
}

// AssignRoleToUser godoc
// @Summary      Assign role to user (Admin)
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Param        request body AdminAssignRoleRequest true "Assign Role Request"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=AdminUserResponse}
// @Failure      400  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id}/roles [post]
func (h *AdminHandler) AssignRoleToUser(c *gin.Context) {
	userID, ok := parseUUID(c, "id", "user")
	if !ok {
		return
	}

	var req AdminAssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	user, err := h.service.AssignRole(c.Request.Context(), userID, req.RoleID)
	if err != nil {
		h.handleError(c, err, "Failed to assign role")
		return
	}

	api.UpdatedResponse(c, "Role assigned successfully", user)
}

// RemoveRoleFromUser godoc
// @Summary      Remove role from user (Admin)
// @Tags         admin-users
// @Produce      json
// @Param        id       path  string  true  "User ID"
// @Param        role_id  path  string  true  "Role ID"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=AdminUserResponse}
// @Failure      400  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id}/roles/{role_id} [delete]
func (h *AdminHandler) RemoveRoleFromUser(c *gin.Context) {
	userID, ok := parseUUID(c, "id", "user")
	if !ok {
		return
	}
	roleID, ok := parseUUID(c, "role_id", "role")
	if !ok {
		return
	}

	user, err := h.service.RemoveRoleFromUser(c.Request.Context(), userID, roleID)
	if err != nil {
		h.handleError(c, err, "Failed to remove role")
		return
	}

	api.UpdatedResponse(c, "Role removed successfully", user)
}

// ListRoles godoc
// @Summary      List roles with their permissions (Admin)
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=[]RoleResponse}
// @Router       /api/v1/admin/roles [get]
func (h *AdminHandler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "Failed to retrieve roles")
		return
	}

	api.ListResponse(c, "Roles retrieved successfully", roles, len(roles))
}

func (h *AdminHandler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "User")
	case errors.Is(err, models.ErrRoleNotFound):
		api.NotFoundResponse(c, "Role")
	case errors.Is(err, models.ErrRoleNotAssigned):
		api.ValidationErrorResponse(c, err.Error())
	default:
		h.logger.Error(err, logger.Fields{"path": c.FullPath()})
		api.InternalErrorResponse(c, fallback)
	}
}

func parseUUID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		api.BadRequestResponse(c, "Invalid "+resource+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
