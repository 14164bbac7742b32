package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minJWTKeySize = 32

type jwtClaims struct {
	Version int64  `json:"ver"`
	Scope   string `json:"scope"`
	jwt.RegisteredClaims
}

// JWTMaker issues HS256 signed JSON web tokens
type JWTMaker struct {
	secret []byte
}

// NewJWTMaker creates a JWTMaker; the secret must be at least 32 bytes
func NewJWTMaker(secret string) (Maker, error) {
	if len(secret) < minJWTKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minJWTKeySize)
	}
	return &JWTMaker{secret: []byte(secret)}, nil
}

func (m *JWTMaker) CreateToken(userID uuid.UUID, duration time.Duration, version int64, scope string) (string, *Payload, error) {
	payload, err := NewPayload(userID, duration, version, scope)
	if err != nil {
		return "", nil, err
	}

	claims := jwtClaims{
		Version: version,
		Scope:   scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        payload.ID.String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(payload.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(payload.ExpiredAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return token, payload, nil
}

func (m *JWTMaker) VerifyToken(token string) (*Payload, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	payload := &Payload{
		ID:      id,
		UserID:  userID,
		Version: claims.Version,
		Scope:   claims.Scope,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		payload.ExpiredAt = claims.ExpiresAt.Time
	}
	return payload, nil
}
