package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const roleHeader = "X-Role"
const roleContextKey = "role"

// RequireRole validates the caller's role header and stores the role in the
// request context for later permission checks.
func RequireRole(authorizer *Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c.GetHeader(roleHeader))
		if !authorizer.Valid(role) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or unknown role"})
			return
		}
		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RequirePermission gates a route on one permission.
func RequirePermission(authorizer *Authorizer, perm Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(roleContextKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing role"})
			return
		}
		if !authorizer.Can(role.(Role), perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied", "required": perm})
			return
		}
		c.Next()
	}
}
