package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if isGuest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = isGuest
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError maps classified service errors onto the error envelope.
// Unclassified errors become a 500 with fallback as the message.
func FromError(c *gin.Context, err error, fallback string) {
	ae, ok := apperr.As(err)
	if !ok {
		telemetry.Error("http.unexpected_error", map[string]any{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("requestId"),
			"error":      err,
		})
		Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
		return
	}
	switch ae.Kind {
	case apperr.KindAuthorization:
		Error(c, http.StatusForbidden, "forbidden", ae.Message, nil)
	case apperr.KindPrecondition:
		Error(c, http.StatusPreconditionFailed, "precondition_failed", ae.Message, nil)
	case apperr.KindNotFound:
		Error(c, http.StatusNotFound, "not_found", ae.Message, nil)
	case apperr.KindValidation:
		Error(c, http.StatusBadRequest, "validation_error", ae.Message, nil)
	default:
		Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
