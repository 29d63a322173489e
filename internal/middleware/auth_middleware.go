package middleware

import (
	"net/http"
	"strings"

	"designhub_backend/internal/models"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware creates a Gin middleware for JWT authentication. It resolves
// the bearer credential to a Principal exactly once and stores it in the
// request context; downstream code never re-derives identity or role.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(principalKey, models.Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})

		c.Next()
	}
}

// OptionalAuthMiddleware resolves a Principal when a valid bearer token is
// present but never rejects the request. Used on public routes whose payload
// widens for privileged callers.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			if claims, err := utils.ValidateToken(parts[1]); err == nil {
				c.Set(principalKey, models.Principal{
					UserID:   claims.UserID,
					Username: claims.Username,
					Role:     claims.Role,
				})
			}
		}
		c.Next()
	}
}

// GetPrincipal extracts the authenticated Principal from the request context.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the principal's role is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Principal not found. Ensure AuthMiddleware runs first.", ""))
			return
		}

		allowed := false
		for _, role := range allowedRoles {
			if strings.EqualFold(principal.Role, role) {
				allowed = true
				break
			}
		}

		if !allowed {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have permission to access this resource. Required roles: "+strings.Join(allowedRoles, ", "), ""))
			return
		}

		c.Next()
	}
}
