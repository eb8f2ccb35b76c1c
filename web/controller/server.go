package controller

import (
	"strconv"

	"finanzas-ui/web/authz"
	"finanzas-ui/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes host status and recent logs to admins.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	server := g.Group("/server")
	server.GET("/status", a.status)
	server.GET("/logs", a.logs)
}

func (a *ServerController) status(c *gin.Context) {
	if _, ok := a.authorize(c, authz.ReadServerStatus, authz.Descriptor{}); !ok {
		return
	}
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *ServerController) logs(c *gin.Context) {
	if _, ok := a.authorize(c, authz.ReadServerLogs, authz.Descriptor{}); !ok {
		return
	}
	count, _ := strconv.Atoi(c.DefaultQuery("count", "100"))
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, a.serverService.GetLogs(count, level), nil)
}
