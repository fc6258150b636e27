package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sushilkumar-me/civic-monitoring/models"
)

// RequireRole gates a route group to the given roles. It must run after
// AuthMiddleware, which puts user_role on the context.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not present on session"})
			c.Abort()
			return
		}

		roleStr, _ := roleVal.(string)
		for _, role := range roles {
			if models.Role(roleStr) == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to access this resource"})
		c.Abort()
	}
}
