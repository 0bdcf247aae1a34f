package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/response"
)

const (
	internalErrorMessage = "internal server error"
	bodyTooLargeMessage  = "request body too large"
	timeoutMessage       = "request timeout"
)

// statusFor maps err to the status and message of the error envelope. A body cut off
// by SizeLimit wins over the binding error wrapping it.
func statusFor(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, bodyTooLargeMessage
	}
	if code, ok := apperrors.CodeOf(err); ok {
		return code.Status, code.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, timeoutMessage
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// ErrorHandler writes the error envelope for the last error recorded on the context.
// Application errors keep their status and message; an expired request deadline is a
// 504 and anything else becomes a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		lastErr := c.Errors.Last()

		status, message := statusFor(lastErr.Err)

		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Err(lastErr.Err).
			Str("request_id", requestID).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("client_ip", c.ClientIP()).
			Int("status", status).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}
		c.JSON(status, response.ErrorEnvelope{
			Status:  status,
			Message: message,
		})
	}
}
