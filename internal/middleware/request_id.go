package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a correlation id. Callers may supply
// their own via X-Request-ID; otherwise a uuid is minted. The id is echoed
// back on the response so storefront errors can be matched to server logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
