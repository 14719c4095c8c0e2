package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/infrastructure/realtime"
	"github.com/jhoicas/estoque-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	UserUC    *usecase.UserUseCase
	ReportUC  *usecase.ReportUseCase
	Hub       *realtime.Hub
	JWTSecret string
	AppName   string
	Logger    *logger.Logger

	// StorageTimeout límite por operación de almacenamiento; 0 usa DefaultStorageTimeout.
	StorageTimeout time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(requestid.New())

	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Logger, deps.StorageTimeout)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Products (cualquier usuario autenticado; altas y bajas solo administrador)
	products := api.Group("/products", AuthMiddleware(deps.JWTSecret), RequireRole())
	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC, deps.Logger, deps.StorageTimeout)
	products.Get("/", productHandler.List)
	products.Get("/report", RequireAdmin(), productHandler.StockReport)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireAdmin(), productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)

	// Users (solo administrador)
	users := api.Group("/users", AuthMiddleware(deps.JWTSecret), RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC, deps.Logger, deps.StorageTimeout)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Patch("/:id/role", userHandler.UpdateRole)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Realtime: token por query string
	realtimeHandler := NewRealtimeHandler(deps.Hub, deps.Logger.Component("realtime"))
	app.Get("/ws", WebsocketAuth(deps.JWTSecret), realtimeHandler.Serve())
}
