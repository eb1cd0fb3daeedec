package middleware

import (
	"net/http"

	"agromart/internal/domain"
	"agromart/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests that did not authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64(CtxUserID) == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole ensures the authenticated caller holds the given role.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return RequireAnyRole(role)
}

// RequireAnyRole ensures the authenticated caller holds one of the given roles.
func RequireAnyRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if c.GetInt64(CtxUserID) == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if _, ok := allowed[domain.Role(c.GetString(CtxRole))]; !ok {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly admits ADMIN and SUPER_ADMIN callers.
func AdminOnly() gin.HandlerFunc {
	return RequireAnyRole(domain.RoleAdmin, domain.RoleSuperAdmin)
}

// SuperAdminOnly admits SUPER_ADMIN callers only.
func SuperAdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleSuperAdmin)
}
