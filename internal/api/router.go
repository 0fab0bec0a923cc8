package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sentinelforce/agency-api/internal/api/handler"
	"github.com/sentinelforce/agency-api/internal/api/middleware"
	"github.com/sentinelforce/agency-api/internal/core/ports"
)

// Dependencies is everything the router needs to serve the API.
type Dependencies struct {
	Users    ports.UserService
	Messages ports.MessageService
	Guards   ports.GuardService

	// Store is pinged by /health. Cache is optional.
	Store handler.Pinger
	Cache handler.Pinger

	Logger zerolog.Logger

	// Registerer enables HTTP metrics and GET /metrics when set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(dep Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(dep.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(dep.Logger))

	if dep.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "agency",
			Registerer: dep.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: dep.Gatherer,
		}))
	}

	// --- Health and docs ---
	health := handler.NewHealthHandler(dep.Store, dep.Cache)
	e.GET("/", health.Root)
	e.GET("/health", health.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Users ---
	uh := handler.NewUserHandler(dep.Users)
	e.GET("/users", uh.List)
	e.POST("/users", uh.Create)
	e.GET("/users/role-check/:email", uh.RoleCheck)
	e.PATCH("/users/admin/:id", uh.SetAdmin)
	e.GET("/users/:email", uh.Get)
	e.PATCH("/users/:email", uh.Update)

	// Message and guard routes answer with the success envelope.
	env := middleware.Envelope()

	// --- Messages ---
	mh := handler.NewMessageHandler(dep.Messages)
	e.POST("/users-message", mh.Create, env)
	e.GET("/all-users-messages", mh.List, env)
	e.PATCH("/users-messages/:id", mh.Update, env)
	e.GET("/users-messages/:userEmail", mh.ListByUser, env)

	// --- Guards ---
	gh := handler.NewGuardHandler(dep.Guards)
	guards := e.Group("/guards", env)
	guards.GET("", gh.List)
	guards.POST("", gh.Create)
	guards.GET("/:id", gh.Get)
	guards.PATCH("/:id", gh.Update)
	guards.POST("/:id/transactions", gh.AppendTransaction)
	guards.GET("/:id/transactions", gh.Transactions)
	guards.POST("/:id/presence", gh.AppendPresence)
	guards.GET("/:id/presence", gh.Presence)

	return e
}
