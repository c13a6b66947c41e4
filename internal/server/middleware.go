package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	"github.com/Karmugilan015/aution-platform/internal/token"
	"github.com/Karmugilan015/aution-platform/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// RequireAuth validates the bearer token and puts the caller's identity into
// the request context. Missing and invalid credentials are distinct outcomes;
// both abort before any domain logic runs. The raw token without the "Bearer"
// prefix is accepted for compatibility with older clients.
func RequireAuth(tokens *token.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrMissingToken, "authorization token required")
			c.Abort()
			return
		}

		tokenString := header
		if rest, found := strings.CutPrefix(header, "Bearer "); found {
			tokenString = rest
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrInvalidToken, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(token.ContextUserID, claims.UserID)
		c.Set(token.ContextUsername, claims.Username)
		c.Next()
	}
}
