// Package web provides the web server of the finanzas-ui panel: routing,
// session handling, localization and background job scheduling.
package web

import (
	"context"
	"embed"
	"io"
	"net"
	"net/http"
	"strconv"

	"finanzas-ui/config"
	"finanzas-ui/logger"
	"finanzas-ui/util/common"
	"finanzas-ui/util/random"
	"finanzas-ui/web/controller"
	"finanzas-ui/web/job"
	"finanzas-ui/web/locale"
	"finanzas-ui/web/middleware"
	"finanzas-ui/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed translation/*
var i18nFS embed.FS

// Server is the finanzas-ui web server with its controllers and cron jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index    *controller.IndexController
	user     *controller.UserController
	movement *controller.MovementController
	report   *controller.ReportController
	server   *controller.ServerController

	authService *service.AuthService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	secret := config.GetSessionSecret()
	if secret == "" {
		// Without a configured secret sessions do not survive restarts.
		secret = random.Seq(32)
		logger.Warning("FUI_SESSION_SECRET not set, generated a transient one")
	}
	s.authService = service.NewAuthService([]byte(secret))

	store := cookie.NewStore([]byte(secret))
	engine.Use(sessions.Sessions("finanzas-ui", store))

	basePath := config.GetBasePath()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())
	engine.Use(middleware.Principal(s.authService))
	engine.Use(middleware.AuditMiddleware())

	api := engine.Group(basePath + "api")
	{
		s.index = controller.NewIndexController(api, s.authService)
		s.user = controller.NewUserController(api)
		s.movement = controller.NewMovementController(api)
		s.report = controller.NewReportController(api)
		s.server = controller.NewServerController(api)
	}

	engine.GET(basePath+"healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusMethodNotAllowed)
	})

	return engine, nil
}

// startTask schedules the maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewCheckpointJob())
	s.cron.AddJob("@weekly", job.NewClearLogsJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	if s.httpServer != nil {
		return common.NewError("web server already started")
	}
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}
