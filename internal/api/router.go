package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/eie-idiomas/admin-api/docs"
	"github.com/eie-idiomas/admin-api/internal/api/handler"
	"github.com/eie-idiomas/admin-api/internal/api/middleware"
	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// Services groups the collaborators the HTTP layer is built on.
type Services struct {
	Authenticator ports.TokenAuthenticator
	Gate          ports.PermissionGate
	Auth          ports.AuthService
	Roles         ports.RoleService
	Modules       ports.ModuleService
	Users         ports.UserService
	Checks        map[string]handler.DependencyCheck
}

// Options controls the ambient parts of the router.
type Options struct {
	Logger zerolog.Logger
	// Registry receives the HTTP metrics and backs GET /metrics. Defaults
	// to the global Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "eie_admin",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	roleHandler := handler.NewRoleHandler(svc.Roles)
	moduleHandler := handler.NewModuleHandler(svc.Modules)
	userHandler := handler.NewUserHandler(svc.Users)

	auth := middleware.Auth(svc.Authenticator)
	requires := func(modules ...string) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{auth, middleware.Permission(svc.Gate, modules...)}
	}

	// --- Public routes ---
	e.POST("/login", authHandler.Login)

	// --- Session routes ---
	e.GET("/me", authHandler.Me, auth)
	e.POST("/logout", authHandler.Logout, auth)
	e.PUT("/perfil/:id", authHandler.ChangePassword, auth)

	// --- Catalogue routes ---
	e.GET("/roles", roleHandler.List, requires(domain.ModuleUsuarios, domain.ModuleParametros)...)
	e.GET("/modulos", moduleHandler.List, requires(domain.ModuleParametros)...)

	// --- Role and module administration ---
	admin := requires(domain.ModuleParametros)
	e.POST("/roles", roleHandler.Create, admin...)
	e.GET("/roles/:id", roleHandler.Show, admin...)
	e.PUT("/roles/:id", roleHandler.Update, admin...)
	e.DELETE("/roles/:id", roleHandler.Delete, admin...)
	e.POST("/modulos", moduleHandler.Create, admin...)
	e.GET("/modulos/:id", moduleHandler.Show, admin...)
	e.PUT("/modulos/:id", moduleHandler.Update, admin...)
	e.DELETE("/modulos/:id", moduleHandler.Delete, admin...)

	// --- User administration ---
	accounts := requires(domain.ModuleUsuarios)
	e.GET("/usuarios", userHandler.List, accounts...)
	e.POST("/usuarios", userHandler.Create, accounts...)
	e.GET("/usuarios/:id", userHandler.Show, accounts...)
	e.PUT("/usuarios/:id", userHandler.Update, accounts...)
	e.DELETE("/usuarios/:id", userHandler.Delete, accounts...)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)                     // liveness: is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(svc.Checks).Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
