package security

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TokenScopeAccess  = "access"
	TokenScopeRefresh = "refresh"
)

const (
	TokenTypePaseto = "paseto"
	TokenTypeJWT    = "jwt"
)

// Maker makes a new token
type Maker interface {
	// CreateToken creates a new token for a specific user and duration
	CreateToken(userID uuid.UUID, duration time.Duration, version int64, scope string) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not
	VerifyToken(token string) (*Payload, error)
}

// NewMaker returns the Maker for tokenType
func NewMaker(tokenType, key string) (Maker, error) {
	switch tokenType {
	case TokenTypePaseto, "":
		return NewPasetoMaker(key)
	case TokenTypeJWT:
		return NewJWTMaker(key)
	default:
		return nil, fmt.Errorf("unknown token type %q", tokenType)
	}
}
