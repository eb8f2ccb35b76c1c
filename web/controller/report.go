package controller

import (
	"strconv"
	"time"

	"finanzas-ui/web/authz"
	"finanzas-ui/web/service"

	"github.com/gin-gonic/gin"
)

// ReportController serves the aggregated figures behind the dashboard
// chart and the admin reports table.
type ReportController struct {
	BaseController

	reportService service.ReportService
}

func NewReportController(g *gin.RouterGroup) *ReportController {
	a := &ReportController{}
	a.initRouter(g)
	return a
}

func (a *ReportController) initRouter(g *gin.RouterGroup) {
	reports := g.Group("/reports")
	reports.GET("/summary", a.summary)
	reports.GET("/users", a.perUser)
}

// reportMonth reads year/month query params, defaulting to the current month.
func reportMonth(c *gin.Context) (int, time.Month) {
	now := time.Now()
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}
	return year, time.Month(month)
}

// summary reports daily totals for a month, scoped exactly like the
// movements list: admins see everyone, users see themselves.
func (a *ReportController) summary(c *gin.Context) {
	decision, ok := a.authorize(c, authz.ListMovements, authz.Descriptor{})
	if !ok {
		return
	}

	year, month := reportMonth(c)
	summary, err := a.reportService.Summary(decision.VisibilityScope, decision.ScopeOwnerId, year, month)
	if err != nil {
		serverError(c, err)
		return
	}
	jsonObj(c, summary, nil)
}

func (a *ReportController) perUser(c *gin.Context) {
	if _, ok := a.authorize(c, authz.ReadUserReport, authz.Descriptor{}); !ok {
		return
	}

	year, month := reportMonth(c)
	totals, err := a.reportService.PerUser(year, month)
	if err != nil {
		serverError(c, err)
		return
	}
	jsonObj(c, totals, nil)
}
