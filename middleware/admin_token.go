package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken guards admin routes with a shared token. With no token
// configured the routes are closed.
func RequireAdminToken(token string) gin.HandlerFunc {
	expected := sha256.Sum256([]byte(token))

	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access is disabled"})
			return
		}

		provided := c.GetHeader(AdminTokenHeader)
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing admin token"})
			return
		}

		got := sha256.Sum256([]byte(provided))
		if !hmac.Equal(got[:], expected[:]) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin token"})
			return
		}

		c.Next()
	}
}
