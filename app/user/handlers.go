package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service   Service
	cfg       *Config
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

// NewHandler creates a new user handler
func NewHandler(service Service, cfg *Config, stripper sanitizer.HTMLStripperer, log logger.Logger) *Handler {
	return &Handler{service: service, cfg: cfg, sanitizer: stripper, logger: log}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a new user account and send a verification email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterUserRequest  true  "User registration details"
// @Success      201      {object}  api.Response{data=Response}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      409      {object}  api.Response{error=api.ErrorInfo}
// @Failure      500      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.SanitizeAndValidate(v, h.sanitizer) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err, "Failed to register user")
		return
	}

	api.CreatedResponse(c, "User registered successfully", user)
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticate a user, return an access token and set the session cookie
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "User credentials"
// @Success      200      {object}  api.Response{data=LoginResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      401      {object}  api.Response{error=api.ErrorInfo}
// @Failure      403      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err, "Failed to log in")
		return
	}

	h.setSessionCookie(c, resp.AccessToken, time.Until(resp.ExpiresAt))
	api.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// Logout godoc
// @Summary      Log out
// @Description  Revoke the current token and clear the session cookie
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	payload, ok := ContextGetToken(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	if err := h.service.Logout(c.Request.Context(), payload); err != nil {
		h.handleError(c, err, "Failed to log out")
		return
	}

	h.setSessionCookie(c, "", -1)
	api.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// GetProfile godoc
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=Response}
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := api.UserID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err, "Failed to fetch profile")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}

// RequestEmailVerification godoc
// @Summary      Send a new verification email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response
// @Failure      409  {object}  api.Response{error=api.ErrorInfo}
// @Failure      429  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/verify-email/request [post]
func (h *Handler) RequestEmailVerification(c *gin.Context) {
	userID, ok := api.UserID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	if err := h.service.RequestEmailVerification(c.Request.Context(), userID); err != nil {
		h.handleError(c, err, "Failed to send verification email")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Verification email sent", nil)
}

// VerifyEmail godoc
// @Summary      Confirm an email address
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  TokenRequest  true  "Emailed token"
// @Success      200  {object}  api.Response
// @Failure      400  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/verify-email [post]
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		h.handleError(c, err, "Failed to verify email")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Email verified successfully", nil)
}

// RequestPasswordReset godoc
// @Summary      Request a password reset
// @Description  Send a password reset email if the user exists
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      EmailRequest  true  "Email for password reset"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      429      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/password-reset/request [post]
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.handleError(c, err, "Failed to process request")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "If the address is registered, a reset email has been sent", nil)
}

// ResetPassword godoc
// @Summary      Reset a user's password
// @Description  Set a new password using a valid reset token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      SetNewPasswordRequest  true  "Token and new password"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/password-reset/reset [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req SetNewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.handleError(c, err, "Failed to reset password")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, token, maxAge, "/", "", h.cfg.CookieSecure, true)
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		api.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	case errors.Is(err, models.ErrAccountLocked):
		api.ForbiddenResponse(c, "Account is temporarily locked")
	case errors.Is(err, models.ErrAccountInactive):
		api.ForbiddenResponse(c, "Account is inactive")
	case errors.Is(err, models.ErrEmailTaken):
		api.ConflictResponse(c, "Email address already registered")
	case errors.Is(err, models.ErrEmailAlreadyVerified):
		api.ConflictResponse(c, "Email address already verified")
	case errors.Is(err, models.ErrRateLimitExceeded):
		api.TooManyRequestsResponse(c, "Too many emails requested, try again later")
	case errors.Is(err, models.ErrInvalidVerifyToken),
		errors.Is(err, models.ErrPasswordTooShort),
		errors.Is(err, models.ErrInvalidEmail):
		api.ValidationErrorResponse(c, err.Error())
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "User")
	default:
		h.logger.Error(err, logger.Fields{"path": c.FullPath()})
		api.InternalErrorResponse(c, fallback)
	}
}
