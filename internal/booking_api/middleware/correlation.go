package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CorrelationIDHeader carries the correlation ID on requests and responses
	CorrelationIDHeader = "X-Correlation-ID"

	// CorrelationIDKey stores the correlation ID in the gin context
	CorrelationIDKey = "correlation_id"
)

// CorrelationID tags every request with an identifier, minting one when the
// caller did not supply it, so a booking can be traced from HTTP request to
// outbox row to dispatched message
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Header(CorrelationIDHeader, correlationID)
		c.Set(CorrelationIDKey, correlationID)

		c.Next()
	}
}

// GetCorrelationID returns the request's correlation ID, or "" before the
// middleware has run
func GetCorrelationID(c *gin.Context) string {
	if id, exists := c.Get(CorrelationIDKey); exists {
		if correlationID, ok := id.(string); ok {
			return correlationID
		}
	}
	return ""
}
