package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	"github.com/Karmugilan015/aution-platform/internal/models"
)

// Request-context keys under which the auth middleware stores verified claims.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// JWTManager issues and verifies bearer tokens for signed-in users.
type JWTManager struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// Claims are the session claims carried inside each token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a manager signing with the given secret.
// tokenTTL controls how long issued tokens stay valid.
func NewJWTManager(secretKey string, tokenTTL time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Issue creates a signed token for the given user.
func (m *JWTManager) Issue(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.UserID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims.
// Expired, malformed and wrongly-signed tokens all map to ErrInvalidToken.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auctionerrors.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, auctionerrors.ErrInvalidToken
	}
	return claims, nil
}
