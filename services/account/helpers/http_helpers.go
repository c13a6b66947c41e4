package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	"github.com/Karmugilan015/aution-platform/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrUsernameTaken):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondServiceError maps a service error to HTTP. Expected caller errors go
// back with their detail; internal failures are logged and surfaced opaquely.
func RespondServiceError(c *gin.Context, handlerName string, err error) {
	status, message := MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": internal error", map[string]any{"error": err.Error()})
		utils.JSONError(c, status, errors.New(message), message)
		return
	}
	utils.JSONError(c, status, err, message)
	utils.Warn(handlerName+": request rejected", map[string]any{"status": status, "error": err.Error()})
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
