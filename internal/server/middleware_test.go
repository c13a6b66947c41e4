package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	model "github.com/Karmugilan015/aution-platform/internal/models"
	"github.com/Karmugilan015/aution-platform/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func authTestRouter(tokens *token.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString(token.ContextUserID),
			"username": c.GetString(token.ContextUsername),
		})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	tokens := token.NewJWTManager("test-secret", time.Hour)

	signed, err := tokens.Issue(model.User{UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	expiredTokens := token.NewJWTManager("test-secret", -time.Minute)
	expired, err := expiredTokens.Issue(model.User{UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "bearer_token",
			authHeader:     "Bearer " + signed,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "raw_token_without_prefix",
			authHeader:     signed,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing_header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage_token",
			authHeader:     "Bearer not-a-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired_token",
			authHeader:     "Bearer " + expired,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong_secret",
			authHeader:     "Bearer " + mustIssue(t, token.NewJWTManager("other-secret", time.Hour)),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	router := authTestRouter(tokens)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusOK {
				require.Contains(t, w.Body.String(), `"user_id":"u1"`)
				require.Contains(t, w.Body.String(), `"username":"alice"`)
			}
		})
	}
}

// Missing and invalid credentials must stay distinguishable to callers.
func TestRequireAuth_DistinctFailureMessages(t *testing.T) {
	router := authTestRouter(token.NewJWTManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "authorization token required")

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "invalid or expired token")
}

func mustIssue(t *testing.T, tokens *token.JWTManager) string {
	t.Helper()
	signed, err := tokens.Issue(model.User{UserID: "u1", Username: "alice"})
	require.NoError(t, err)
	return signed
}
