package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/dashboard"
	"github.com/muhammadsami84343/ecampus/core/leave"
	"github.com/muhammadsami84343/ecampus/core/report"
	metricsvc "github.com/muhammadsami84343/ecampus/services/metrics"
	notifysvc "github.com/muhammadsami84343/ecampus/services/notify"
)

type (
	// HealthCheck reports whether a backing service is reachable.
	HealthCheck func(ctx context.Context) error

	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		LeaveSvc      leave.Service
		AttendanceSvc attendance.Service
		DashboardSvc  dashboard.Service
		Counter       calendar.Counter
		Exporter      report.Exporter
		Notifications notifysvc.Reader   // optional
		Metrics       *metricsvc.Metrics // optional
		HealthChecks  map[string]HealthCheck
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if s.deps.Metrics != nil {
		s.app.Use(metricsMiddleware(s.deps.Metrics))
		s.app.GET("/metrics", echo.WrapHandler(s.deps.Metrics.Handler()))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	s.app.GET("/healthz", s.health)

	v1 := s.app.Group("/v1")
	pg := newPaginator(conf.Pagination)

	registerCalendarAPI(v1, s.deps.Counter)
	registerLeaveAPI(v1, s.deps.LeaveSvc, pg)
	registerAttendanceAPI(v1, s.deps.AttendanceSvc, s.deps.Exporter, pg)
	registerReportAPI(v1, s.deps.AttendanceSvc, s.deps.Validate)
	if s.deps.DashboardSvc != nil {
		registerDashboardAPI(v1, s.deps.DashboardSvc)
	}
	if s.deps.Notifications != nil {
		registerNotificationAPI(v1, s.deps.Notifications)
	}
}

// Start listens on the configured address; startup and serving errors are sent to Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the application to shut down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signalled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}

type healthResponse struct {
	Status   string            `json:"status"`
	Build    string            `json:"build"`
	Services map[string]string `json:"services"`
}

func (s *Server) health(ctx echo.Context) error {
	res := healthResponse{Status: "ok", Build: s.deps.Conf.Build, Services: make(map[string]string, len(s.deps.HealthChecks))}
	code := http.StatusOK
	for name, check := range s.deps.HealthChecks {
		if err := check(ctx.Request().Context()); err != nil {
			res.Services[name] = err.Error()
			res.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		res.Services[name] = "ok"
	}
	return ctx.JSON(code, res)
}
