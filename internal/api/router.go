package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petrohaul/transport-system/internal/api/handler"
	"github.com/petrohaul/transport-system/internal/api/middleware"
	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// Dependencies carries everything the router needs; main assembles it once.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger

	AuthService      ports.AuthService
	RequestService   ports.RequestService
	TripService      ports.TripService
	PaymentService   ports.PaymentService
	DashboardService ports.DashboardService
	Dispatcher       handler.EventDispatcher
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("transport"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	requestHandler := handler.NewRequestHandler(deps.RequestService)
	tripHandler := handler.NewTripHandler(deps.TripService)
	paymentHandler := handler.NewPaymentHandler(deps.PaymentService)
	dashboardHandler := handler.NewDashboardHandler(deps.DashboardService)
	eventHandler := handler.NewEventHandler(deps.Dispatcher)

	auth := middleware.Auth(deps.JWTSecret)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", auth)

	requests := v1.Group("/requests")
	requests.POST("", requestHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleCompany))
	requests.GET("", requestHandler.List, middleware.RBAC(domain.RoleAdmin, domain.RoleCompany))
	requests.GET("/stats", requestHandler.Stats, middleware.RBAC(domain.RoleAdmin))
	requests.GET("/:id", requestHandler.Get, middleware.RBAC(domain.RoleAdmin, domain.RoleCompany))
	requests.PATCH("/:id/status", requestHandler.UpdateStatus, middleware.RBAC(domain.RoleAdmin))
	requests.POST("/:id/assign", requestHandler.Assign, middleware.RBAC(domain.RoleAdmin))

	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleCompany, domain.RoleManager,
		domain.RoleVehicleOwner, domain.RoleDriver)

	trips := v1.Group("/trips")
	trips.POST("", tripHandler.Create, middleware.RBAC(domain.RoleAdmin))
	trips.GET("", tripHandler.List, anyRole)
	trips.GET("/stats", tripHandler.Stats, middleware.RBAC(domain.RoleAdmin))
	trips.GET("/:id", tripHandler.Get, anyRole)
	trips.PATCH("/:id/status", tripHandler.UpdateStatus, middleware.RBAC(domain.RoleAdmin))
	trips.PATCH("/:id", tripHandler.Update, middleware.RBAC(domain.RoleAdmin))
	trips.DELETE("/:id", tripHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	payments := v1.Group("/payments")
	paymentReaders := middleware.RBAC(domain.RoleAdmin, domain.RoleCompany, domain.RoleVehicleOwner)
	payments.POST("", paymentHandler.Create, middleware.RBAC(domain.RoleAdmin))
	payments.GET("", paymentHandler.List, paymentReaders)
	payments.GET("/stats", paymentHandler.Stats, middleware.RBAC(domain.RoleAdmin))
	payments.GET("/:id", paymentHandler.Get, paymentReaders)
	payments.PATCH("/:id/status", paymentHandler.UpdateStatus, middleware.RBAC(domain.RoleAdmin))
	payments.DELETE("/:id", paymentHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	v1.GET("/dashboard", dashboardHandler.Stats, middleware.RBAC(domain.RoleCompany,
		domain.RoleManager, domain.RoleVehicleOwner, domain.RoleDriver))

	// Driver-app event ingestion. Admin access covers backfills.
	events := v1.Group("/events", middleware.RBAC(domain.RoleAdmin, domain.RoleDriver))
	events.POST("", eventHandler.Receive)
	events.POST("/batch", eventHandler.ReceiveBatch)

	return e
}
