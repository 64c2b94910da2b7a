package middleware

import (
	"net/http"
	"webshop-partner-server/internal/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware protects the admin registry endpoints with an API
// key. When ADMIN_API_KEY is not configured the routes stay open, which
// matches the default deployment behind a private ingress.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		required := config.AppConfig.AdminAPIKey
		if required == "" {
			c.Next()
			return
		}

		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			apiKey = c.Query("api_key")
		}

		if apiKey != required {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or missing api key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
