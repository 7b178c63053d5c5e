package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// bearerAuth guards an operator endpoint with a shared secret. An empty
// secret disables the endpoint entirely (fail closed): a misconfigured
// operator endpoint is a deployment bug, never a silent no-op. Bad secrets
// get a uniform 401 regardless of what the request targets.
func bearerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Endpoint not configured",
			})
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || token != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization token",
			})
			return
		}

		c.Next()
	}
}
