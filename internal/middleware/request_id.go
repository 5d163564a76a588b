package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/requestid"
)

const (
	RequestIDHeader  = "X-Request-Id"
	ContextRequestID = "requestID"
)

// RequestID reuses the caller's X-Request-Id or assigns a new uuid, and
// stores it both in the gin context and in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(ContextRequestID, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Request = c.Request.WithContext(requestid.With(c.Request.Context(), id))

		c.Next()
	}
}

func RequestIDFromContext(ctx context.Context) string {
	return requestid.From(ctx)
}
