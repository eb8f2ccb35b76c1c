package controller

import (
	"errors"
	"net/http"

	"finanzas-ui/database"
	"finanzas-ui/web/authz"
	"finanzas-ui/web/service"

	"github.com/gin-gonic/gin"
)

// UserController handles the user and role management routes.
type UserController struct {
	BaseController

	userService service.UserService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.GET("/roles", a.listRoles)

	users := g.Group("/users")
	users.GET("", a.list)
	users.POST("", a.create)
	users.GET("/:id", a.get)
	users.PUT("/:id", a.update)
	users.DELETE("/:id", a.delete)
}

func (a *UserController) list(c *gin.Context) {
	if _, ok := a.authorize(c, authz.ListUsers, authz.Descriptor{}); !ok {
		return
	}
	users, err := a.userService.ListUsers()
	if err != nil {
		serverError(c, err)
		return
	}
	jsonObj(c, users, nil)
}

func (a *UserController) listRoles(c *gin.Context) {
	if _, ok := a.authorize(c, authz.ListUsers, authz.Descriptor{}); !ok {
		return
	}
	roles, err := a.userService.ListRoles()
	if err != nil {
		serverError(c, err)
		return
	}
	jsonObj(c, roles, nil)
}

type userForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Phone    string `json:"phone" form:"phone"`
	RoleId   int    `json:"roleId" form:"roleId"`
}

func (a *UserController) create(c *gin.Context) {
	if _, ok := a.authorize(c, authz.CreateUser, authz.Descriptor{}); !ok {
		return
	}

	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}

	user, err := a.userService.CreateUser(form.Name, form.Email, form.Password, form.Phone, form.RoleId)
	if err != nil {
		a.userErr(c, err)
		return
	}
	jsonMsgObj(c, http.StatusCreated, I18nWeb(c, "user.created"), user, nil)
}

func (a *UserController) get(c *gin.Context) {
	id := paramId(c)
	if id == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}
	if _, ok := a.authorize(c, authz.ReadUser, authz.Descriptor{TargetUserId: id}); !ok {
		return
	}

	user, err := a.userService.GetUser(id)
	if err != nil {
		if database.IsNotFound(err) {
			pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "user.notFound"))
			return
		}
		serverError(c, err)
		return
	}
	jsonObj(c, user, nil)
}

func (a *UserController) update(c *gin.Context) {
	id := paramId(c)
	if id == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}
	if _, ok := a.authorize(c, authz.UpdateUser, authz.Descriptor{TargetUserId: id}); !ok {
		return
	}

	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}

	user, err := a.userService.UpdateUser(id, form.Name, form.Email, form.Phone, form.RoleId)
	if err != nil {
		a.userErr(c, err)
		return
	}
	jsonMsgObj(c, http.StatusOK, I18nWeb(c, "user.updated"), user, nil)
}

func (a *UserController) delete(c *gin.Context) {
	id := paramId(c)
	if id == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}
	if _, ok := a.authorize(c, authz.DeleteUser, authz.Descriptor{TargetUserId: id}); !ok {
		return
	}

	if err := a.userService.DeleteUser(id); err != nil {
		a.userErr(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "user.deleted"), nil)
}

// userErr maps user service failures to responses.
func (a *UserController) userErr(c *gin.Context, err error) {
	switch {
	case database.IsNotFound(err):
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "user.notFound"))
	case errors.Is(err, service.ErrMissingFields):
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "user.missingFields"))
	case errors.Is(err, service.ErrEmailInUse):
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "user.emailInUse"))
	case errors.Is(err, service.ErrUnknownRole):
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
	case errors.Is(err, service.ErrUserHasMovements):
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "user.hasMovements"))
	default:
		serverError(c, err)
	}
}
