package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"finanzas-ui/logger"
	"finanzas-ui/web/entity"
	"finanzas-ui/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonMsg sends a JSON response with a message and error status.
func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, http.StatusOK, msg, nil, err)
}

// jsonObj sends a JSON response with an object and error status.
func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, http.StatusOK, "", obj, err)
}

// jsonMsgObj sends a JSON response with a message, object, and error status.
func jsonMsgObj(c *gin.Context, statusCode int, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		m.Msg = msg
	} else {
		m.Success = false
		m.Msg = msg
		logger.Warning(msg+": ", err)
	}
	c.JSON(statusCode, m)
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// validationMsg sends a 400 carrying the offending field and its
// localized message.
func validationMsg(c *gin.Context, verr *service.ValidationError) {
	c.JSON(http.StatusBadRequest, entity.Msg{
		Success: false,
		Msg:     I18nWeb(c, verr.Message),
		Obj:     gin.H{"field": verr.Field},
	})
}

// serverError sends a generic 500; the cause goes to the log only.
func serverError(c *gin.Context, err error) {
	logger.Error("request failed: ", err)
	pureJsonMsg(c, http.StatusInternalServerError, false, I18nWeb(c, "common.serverError"))
}

// paramId parses the numeric :id path parameter. Zero means invalid.
func paramId(c *gin.Context) int {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
