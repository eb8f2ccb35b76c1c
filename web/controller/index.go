package controller

import (
	"errors"
	"html/template"
	"net/http"

	"finanzas-ui/config"
	"finanzas-ui/logger"
	"finanzas-ui/web/middleware"
	"finanzas-ui/web/service"
	"finanzas-ui/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles login, logout and the current-principal route.
type IndexController struct {
	BaseController

	authService *service.AuthService
}

func NewIndexController(g *gin.RouterGroup, authService *service.AuthService) *IndexController {
	a := &IndexController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
	g.GET("/me", a.me)
}

// login authenticates by email and password, sets the session cookie and
// returns a bearer token for API clients.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}
	if form.Email == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}

	token, user, err := a.authService.Login(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			safeEmail := template.HTMLEscapeString(form.Email)
			logger.Warningf("failed login for %q, IP: %s", safeEmail, getRemoteIp(c))
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "auth.invalidCredentials"))
			return
		}
		serverError(c, err)
		return
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("Unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("Unable to save session:", err)
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Email, getRemoteIp(c))
	jsonObj(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.Id,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	}, nil)
}

func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out successfully", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to clear session:", err)
	}
	jsonMsg(c, I18nWeb(c, "auth.logoutSuccess"), nil)
}

// me returns the authenticated principal, whichever way it was presented.
func (a *IndexController) me(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "auth.unauthorized"))
		return
	}
	jsonObj(c, gin.H{"id": principal.Id, "role": principal.Role}, nil)
}
