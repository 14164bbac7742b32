package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the authentication middleware
const (
	ContextUserID      = "userID"
	ContextPermissions = "permissions"
)

// Can aborts with 403 unless the authenticated user holds permission
func Can(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissionsValue, exists := c.Get(ContextPermissions)
		if !exists {
			ForbiddenResponse(c, "Access Denied: Permissions not found in context")
			c.Abort()
			return
		}

		permissions, ok := permissionsValue.([]string)
		if !ok {
			ForbiddenResponse(c, "Access Denied: Invalid permissions data in context")
			c.Abort()
			return
		}

		for _, p := range permissions {
			if p == permission {
				c.Next()
				return
			}
		}

		ForbiddenResponse(c, "Access Denied: You do not have the required permission")
		c.Abort()
	}
}

// UserID returns the id the authentication middleware stored on the context
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
