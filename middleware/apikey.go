package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateAPIKey gates the admin group. A wrong or absent key is a 403 so a
// logged-in customer probing admin routes sees forbidden, not unauthorized.
func ValidateAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-API-KEY") != key {
			c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
