package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows the storefront SPA to call the API from any origin. Preflight
// requests are answered directly with 204.
func CORS() gin.HandlerFunc {
	headers := map[string]string{
		"Access-Control-Allow-Origin":   "*",
		"Access-Control-Allow-Methods":  "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers":  "Authorization, Content-Type, X-Request-ID",
		"Access-Control-Expose-Headers": "X-Request-ID",
	}
	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
