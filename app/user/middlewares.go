package user

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/app/api"
	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/security"
	"github.com/promptaat/promptaat/models"
)

// AuthMiddleware authenticates the request with a bearer token or the
// session cookie and loads the user's permissions.
func AuthMiddleware(tokenMaker security.Maker, authService AuthService, cookieName string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", AuthorizationHeaderKey)

		token, ok := requestToken(c, cookieName)
		if !ok {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(token)
		if err != nil || payload.Scope != security.TokenScopeAccess {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		revoked, err := authService.IsRevoked(c.Request.Context(), payload)
		if err != nil {
			log.Error(err, logger.Fields{"action": "check_revoked_token"})
			api.InternalErrorResponse(c, "Could not verify session")
			c.Abort()
			return
		}
		if revoked {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		permissions, err := authService.GetUserPermissions(c.Request.Context(), payload.UserID)
		if err != nil {
			if errors.Is(err, models.ErrUnauthorized) || errors.Is(err, models.ErrAccountInactive) {
				api.UnauthorizedResponse(c)
			} else {
				api.ForbiddenResponse(c, "Could not retrieve user permissions")
			}
			c.Abort()
			return
		}

		c.Set(api.ContextUserID, payload.UserID)
		c.Set(api.ContextPermissions, permissions)
		c.Set(ContextToken, payload)
		c.Next()
	}
}
