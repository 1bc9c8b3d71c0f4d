package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
)

// DefaultMaxBodyBytes caps JSON request bodies
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit rejects requests whose body exceeds maxBytes
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				"REQUEST_TOO_LARGE",
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
