package middleware

import (
	"net/http"

	"finanzas-ui/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditMiddleware logs every mutating request by an authenticated
// principal: who did what, from where, and how it ended.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		c.Next()

		principal := GetPrincipal(c)
		if principal == nil {
			return
		}

		logger.Infof("audit %s user=%d %s %s ip=%s status=%d",
			uuid.NewString(),
			principal.Id,
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.Writer.Status(),
		)
	}
}
