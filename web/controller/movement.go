package controller

import (
	"errors"
	"net/http"
	"time"

	"finanzas-ui/database"
	"finanzas-ui/util/json_util"
	"finanzas-ui/web/authz"
	"finanzas-ui/web/service"

	"github.com/gin-gonic/gin"
)

// MovementController handles the income/expense record routes.
type MovementController struct {
	BaseController

	movementService service.MovementService
}

func NewMovementController(g *gin.RouterGroup) *MovementController {
	a := &MovementController{}
	a.initRouter(g)
	return a
}

func (a *MovementController) initRouter(g *gin.RouterGroup) {
	movements := g.Group("/movements")
	movements.GET("", a.list)
	movements.POST("", a.create)
	movements.GET("/export", a.export)
	movements.GET("/:id", a.get)
	movements.PUT("/:id", a.update)
	movements.DELETE("/:id", a.delete)
}

type movementForm struct {
	Concept string  `json:"concept" form:"concept"`
	Amount  float64 `json:"amount" form:"amount"`
	Date    string  `json:"date" form:"date"`
	Type    string  `json:"type" form:"type"`
	UserId  int     `json:"userId" form:"userId"`
}

// resolveOwner maps a movement id to its owner before the policy engine
// runs. A missing movement ends the request with 404 right here, so
// nonexistence is reported before any permission is computed. Transient
// store errors get one retry; not-found never does.
func (a *MovementController) resolveOwner(c *gin.Context, id int) (int, bool) {
	ownerId, err := a.movementService.ResolveOwner(id)
	if err != nil && !database.IsNotFound(err) {
		ownerId, err = a.movementService.ResolveOwner(id)
	}
	if err != nil {
		if database.IsNotFound(err) {
			pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "movement.notFound"))
		} else {
			serverError(c, err)
		}
		return 0, false
	}
	return ownerId, true
}

func (a *MovementController) list(c *gin.Context) {
	decision, ok := a.authorize(c, authz.ListMovements, authz.Descriptor{})
	if !ok {
		return
	}

	movements, err := a.movementService.ListMovements(decision.VisibilityScope, decision.ScopeOwnerId)
	if err != nil {
		serverError(c, err)
		return
	}
	jsonObj(c, movements, nil)
}

func (a *MovementController) create(c *gin.Context) {
	var form movementForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}

	in, verr := service.ValidateMovement(form.Concept, form.Amount, form.Date, form.Type, time.Now())
	if verr != nil {
		validationMsg(c, verr)
		return
	}

	decision, ok := a.authorize(c, authz.CreateMovement, authz.Descriptor{ProposedOwnerId: form.UserId})
	if !ok {
		return
	}

	movement, err := a.movementService.CreateMovement(in, decision.EffectiveOwnerId)
	if err != nil {
		if errors.Is(err, service.ErrOwnerNotFound) {
			pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "movement.ownerNotFound"))
			return
		}
		serverError(c, err)
		return
	}
	jsonMsgObj(c, http.StatusCreated, I18nWeb(c, "movement.created"), movement, nil)
}

func (a *MovementController) get(c *gin.Context) {
	id := paramId(c)
	if id == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}

	ownerId, ok := a.resolveOwner(c, id)
	if !ok {
		return
	}
	if _, ok := a.authorize(c, authz.ReadMovement, authz.Descriptor{OwnerUserId: ownerId}); !ok {
		return
	}

	movement, err := a.movementService.GetMovement(id)
	if err != nil {
		serverError(c, err)
		return
	}
	jsonObj(c, movement, nil)
}

func (a *MovementController) update(c *gin.Context) {
	id := paramId(c)
	if id == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}

	ownerId, ok := a.resolveOwner(c, id)
	if !ok {
		return
	}

	var form movementForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}

	in, verr := service.ValidateMovement(form.Concept, form.Amount, form.Date, form.Type, time.Now())
	if verr != nil {
		validationMsg(c, verr)
		return
	}

	if _, ok := a.authorize(c, authz.UpdateMovement, authz.Descriptor{
		OwnerUserId:     ownerId,
		ProposedOwnerId: form.UserId,
	}); !ok {
		return
	}

	movement, err := a.movementService.UpdateMovement(id, in, form.UserId)
	if err != nil {
		if errors.Is(err, service.ErrOwnerNotFound) {
			pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "movement.ownerNotFound"))
			return
		}
		serverError(c, err)
		return
	}
	jsonMsgObj(c, http.StatusOK, I18nWeb(c, "movement.updated"), movement, nil)
}

func (a *MovementController) delete(c *gin.Context) {
	id := paramId(c)
	if id == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "common.invalidRequest"))
		return
	}

	ownerId, ok := a.resolveOwner(c, id)
	if !ok {
		return
	}
	if _, ok := a.authorize(c, authz.DeleteMovement, authz.Descriptor{OwnerUserId: ownerId}); !ok {
		return
	}

	if err := a.movementService.DeleteMovement(id); err != nil {
		serverError(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "movement.deleted"), nil)
}

// export streams the full movement history as a JSON attachment.
func (a *MovementController) export(c *gin.Context) {
	if _, ok := a.authorize(c, authz.ExportMovements, authz.Descriptor{}); !ok {
		return
	}

	movements, err := a.movementService.AllMovements()
	if err != nil {
		serverError(c, err)
		return
	}

	data, err := json_util.MarshalIndented(movements)
	if err != nil {
		serverError(c, err)
		return
	}

	filename := "movements-" + time.Now().Format("2006-01-02") + ".json"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/json", data)
}
