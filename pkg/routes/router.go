// Package routes assembles the HTTP surface of the service.
package routes

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/routes/aliasgroup"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	"github.com/Ramsey-B/fern/pkg/routes/match"
	"github.com/Ramsey-B/fern/pkg/routes/weightprofile"
)

// NewRouter builds the echo instance with middleware and all route groups
// mounted under /api/v1.
func NewRouter(cfg config.Config, logger ectologger.Logger, checker *health.Checker) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.HTTPErrorHandler = middleware.Error(logger)

	api := e.Group("/api/v1")
	match.Register(api.Group("/match"))
	aliasgroup.Register(api.Group("/alias-groups"))
	weightprofile.Register(api.Group("/weight-profiles"))

	if checker != nil {
		checker.RegisterRoutes(e)
	}

	return e
}
