package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/overcomingroom/bellbell/pkg/response"
)

// SizeLimitConfig represents size limit configuration
type SizeLimitConfig struct {
	MaxBodySize int64 // in bytes
}

func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{
		MaxBodySize: 64 << 10, // 64KB
	}
}

// SizeLimit rejects declared oversized bodies up front and caps the rest while they
// are read. A body of unknown length that crosses the limit fails binding, and
// ErrorHandler answers it with 413.
func SizeLimit(config SizeLimitConfig) gin.HandlerFunc {
	if config.MaxBodySize <= 0 {
		config = DefaultSizeLimitConfig()
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > config.MaxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, response.ErrorEnvelope{
				Status:  http.StatusRequestEntityTooLarge,
				Message: bodyTooLargeMessage,
			})
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxBodySize)
		}
		c.Next()
	}
}
