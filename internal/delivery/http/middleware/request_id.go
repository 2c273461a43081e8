package middleware

import (
	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/audit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's when it is a UUID.
// The id and client address also ride on the request context for audit events.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(string(domain.KeyRequestID), id)
		c.Header(HeaderRequestID, id)

		meta := audit.RequestMeta{IP: c.ClientIP(), RequestID: id}
		c.Request = c.Request.WithContext(audit.WithRequest(c.Request.Context(), meta))

		c.Next()
	}
}
