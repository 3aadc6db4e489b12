// Package webserver owns the echo instance and the HTTP plumbing shared by
// the shop and admin API surfaces: sessions, metrics, validation, and the
// uniform response envelope.
package webserver

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket/config"
)

// SessionName is the cookie session shared by auth state and the cart.
const SessionName = "greenbasket"

type Server struct {
	cfg  *config.AppConfig
	db   *gorm.DB
	echo *echo.Echo
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.AppConfig, db *gorm.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options.MaxAge = cfg.Session.MaxAge
	store.Options.HttpOnly = true
	e.Use(session.Middleware(store))

	e.Use(echoprometheus.NewMiddleware(cfg.System.Name))
	e.GET("/metrics", echoprometheus.NewHandler())

	return &Server{cfg: cfg, db: db, echo: e}
}

// Echo exposes the router for route registration.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// DB returns the shared database handle.
func (s *Server) DB() *gorm.DB {
	return s.db
}

func (s *Server) Start() error {
	zap.S().Infof("web server listening on %s", s.cfg.System.Listen)
	return s.echo.Start(s.cfg.System.Listen)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
