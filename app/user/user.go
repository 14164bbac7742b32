package user

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promptaat/promptaat/internal/security"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"

	// ContextToken holds the verified *security.Payload of the request
	ContextToken = "context_token"
)

// ContextGetToken returns the payload stored by AuthMiddleware
func ContextGetToken(c *gin.Context) (*security.Payload, bool) {
	v, ok := c.Get(ContextToken)
	if !ok {
		return nil, false
	}
	payload, ok := v.(*security.Payload)
	return payload, ok
}

// requestToken reads the bearer token, falling back to the session cookie.
// A malformed Authorization header is reported as ok=false.
func requestToken(c *gin.Context, cookieName string) (string, bool) {
	if header := c.GetHeader(AuthorizationHeaderKey); header != "" {
		fields := strings.Fields(header)
		if len(fields) != 2 || !strings.EqualFold(fields[0], AuthorizationTypeBearer) {
			return "", false
		}
		return fields[1], true
	}

	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
