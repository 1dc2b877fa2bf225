package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gianfig/TecnicasReal/api-gateway/config"
	"github.com/gianfig/TecnicasReal/api-gateway/health"
	"github.com/gianfig/TecnicasReal/api-gateway/middleware"
	"github.com/gianfig/TecnicasReal/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool // Requires authentication
	RequireAdmin bool // Requires admin role
}

// Routes holds all route definitions. Inventory prefixes stay public here:
// the inventario service itself rejects unauthenticated writes, and its
// reads are open.
var Routes = []RouteDefinition{
	{
		Prefix:       "/auth",
		ServiceName:  "usuarios",
		Description:  "Authentication endpoints (login, register, verify)",
		RequireAuth:  false,
		RequireAdmin: false,
	},
	{
		Prefix:       "/users",
		ServiceName:  "usuarios",
		Description:  "Authenticated user profile",
		RequireAuth:  true,
		RequireAdmin: false,
	},
	{
		Prefix:       "/admin",
		ServiceName:  "usuarios",
		Description:  "User administration",
		RequireAuth:  true,
		RequireAdmin: true,
	},

	{
		Prefix:       "/categorias",
		ServiceName:  "inventario",
		Description:  "Category management",
		RequireAuth:  false,
		RequireAdmin: false,
	},
	{
		Prefix:       "/proveedores",
		ServiceName:  "inventario",
		Description:  "Supplier management",
		RequireAuth:  false,
		RequireAdmin: false,
	},
	{
		Prefix:       "/productos",
		ServiceName:  "inventario",
		Description:  "Product management",
		RequireAuth:  false,
		RequireAdmin: false,
	},
	{
		Prefix:       "/movimientos",
		ServiceName:  "inventario",
		Description:  "Stock movement ledger",
		RequireAuth:  false,
		RequireAdmin: false,
	},
	{
		Prefix:       "/reportes",
		ServiceName:  "inventario",
		Description:  "Inventory reports",
		RequireAuth:  false,
		RequireAdmin: false,
	},

	{
		Prefix:       "/tasks",
		ServiceName:  "tareas",
		Description:  "Task management",
		RequireAuth:  false,
		RequireAdmin: false,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
	// Create reverse proxy
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Ledger writes get a tighter rate budget than the global limit
	if redisClient != nil {
		app.Use("/movimientos", middleware.MovementRateLimiter(redisClient))
	}

	// Create health checker
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// Circuit breaker stats
	app.Get("/health/circuits", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.GetAllStats())
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Sistema de Inventario - API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	// Apply middleware based on route requirements
	var middlewares []fiber.Handler

	if route.RequireAdmin {
		// Admin routes need both auth and admin check
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}

	// Create a route group for this service
	group := app.Group(route.Prefix, middlewares...)

	// Handle all HTTP methods with wildcard path
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
