package middleware

import (
	"net/http"

	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/gin-gonic/gin"
)

// RequireRole creates middleware that only allows requests whose JWT role
// is one of the given workshop roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...workforce.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient role for this operation",
				},
			})
			return
		}

		c.Next()
	}
}

// RequireManager is shorthand for endpoints restricted to managers and admins
func RequireManager() gin.HandlerFunc {
	return RequireRole(workforce.RoleManager, workforce.RoleAdmin)
}

// RequireAdmin is shorthand for endpoints restricted to admins
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(workforce.RoleAdmin)
}
