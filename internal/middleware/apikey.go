package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAPIKey guards the admin surface with a shared key checked against
// the X-API-Key header. An empty configured key disables the check, which is
// how the development environment runs.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		if c.GetHeader("X-API-Key") != key {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
