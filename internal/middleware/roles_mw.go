package middleware

import (
	"net/http"
	"slices"

	"gym_management/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware only lets through users whose token carries one of allowedRoles.
// It must run after JWTAuthMiddleware.
func RoleMiddleware(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in token, ensure JWT middleware runs first"})
			return
		}

		userRole, ok := roleVal.(model.Role)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid role type in token"})
			return
		}

		if !slices.Contains(allowedRoles, userRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// TrainerMiddleware checks if the user is a trainer
func TrainerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleTrainer)
}
