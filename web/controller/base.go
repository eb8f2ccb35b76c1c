// Package controller provides the HTTP request handlers of the
// finanzas-ui panel. Handlers never check roles themselves: every one of
// them asks the authz engine and maps its decision to a response.
package controller

import (
	"net/http"

	"finanzas-ui/logger"
	"finanzas-ui/web/authz"
	"finanzas-ui/web/middleware"

	"github.com/gin-gonic/gin"
)

// BaseController provides the shared authorize-and-respond step.
type BaseController struct{}

// authorize runs the policy engine for the request's principal and, when
// denied, writes the matching response. Returns the decision and whether
// the handler may proceed.
func (a *BaseController) authorize(c *gin.Context, action authz.Action, d authz.Descriptor) (authz.Decision, bool) {
	principal := middleware.GetPrincipal(c)
	decision := authz.Authorize(principal, action, d)
	if decision.Allowed {
		return decision, true
	}

	switch decision.Code {
	case authz.CodeUnauthenticated:
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "auth.unauthorized"))
	default:
		pureJsonMsg(c, http.StatusForbidden, false, I18nWeb(c, denialKey(decision.Reason)))
	}
	c.Abort()
	return decision, false
}

// denialKey maps an engine reason to a translation key. The messages do
// not reveal whether a resource exists.
func denialKey(reason string) string {
	switch reason {
	case "admin required":
		return "auth.adminRequired"
	case "not resource owner", "cannot reassign movement owner":
		return "movement.forbidden"
	}
	return "auth.forbidden"
}

// I18nWeb retrieves a localized message for the current request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, ok := anyfunc.(func(key string, params ...string) string)
	if !ok {
		return name
	}
	return i18nFunc(name, params...)
}
