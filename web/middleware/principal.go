package middleware

import (
	"strings"

	"finanzas-ui/web/authz"
	"finanzas-ui/web/service"
	"finanzas-ui/web/session"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Principal resolves the authenticated actor for the request and stores
// it in the gin context: the session cookie wins, a Bearer token is the
// fallback for non-browser clients. Nothing is rejected here; the policy
// engine decides what an anonymous request may do.
func Principal(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := session.GetLoginUser(c); user != nil {
			role := ""
			if user.Role != nil {
				role = user.Role.Name
			}
			c.Set(principalKey, &authz.Principal{Id: user.Id, Role: role})
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if principal, err := authService.ParseToken(token); err == nil {
				c.Set(principalKey, principal)
			}
		}
		c.Next()
	}
}

// GetPrincipal returns the request's principal, or nil for anonymous.
func GetPrincipal(c *gin.Context) *authz.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*authz.Principal)
	if !ok {
		return nil
	}
	return principal
}
