// Package router assembles the gin engine of the receipts API.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/receipts/backend/internal/infrastructure/logger"
	"github.com/receipts/backend/internal/interfaces/http/handler"
	"github.com/receipts/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// APIPrefix is the prefix of every data route
const APIPrefix = "/api/v1"

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Currency            *handler.CurrencyHandler
	Store               *handler.StoreHandler
	Product             *handler.ProductHandler
	Inventory           *handler.InventoryHandler
	Receipt             *handler.ReceiptHandler
	CustomizedInventory *handler.CustomizedInventoryHandler
	Command             *handler.CommandHandler
	Auth                *handler.AuthHandler
	Health              *handler.HealthHandler
}

// Config holds router configuration
type Config struct {
	ServiceName    string
	TracingEnabled bool
	TracerProvider trace.TracerProvider
	MaxBodySize    int64
	CORS           middleware.CORSConfig
	TrustedProxies []string
	CookieName     string
}

// New creates the gin engine with every route and middleware
func New(cfg Config, h Handlers, sessions middleware.Authenticator, loginLimiter *middleware.RateLimiter, log *zap.Logger) (*gin.Engine, error) {
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName:    cfg.ServiceName,
			Enabled:        cfg.TracingEnabled,
			TracerProvider: cfg.TracerProvider,
		}),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.BodyLimit(cfg.MaxBodySize),
	)

	engine.GET("/health", h.Health.Health)

	api := engine.Group(APIPrefix)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", middleware.RateLimit(loginLimiter), h.Auth.Login)
	authGroup.POST("/logout", h.Auth.Logout)

	data := api.Group("")
	data.Use(middleware.SessionAuth(sessions, cfg.CookieName))

	currencies := data.Group("/currencies")
	currencies.GET("", h.Currency.List)
	currencies.GET("/:id", h.Currency.GetByID)
	currencies.PATCH("/:id", h.Currency.Patch)
	currencies.GET("/:id/customized-inventories", h.CustomizedInventory.ListByCurrency)

	stores := data.Group("/stores")
	stores.GET("", h.Store.List)
	stores.GET("/:id", h.Store.GetByID)
	stores.PATCH("/:id", h.Store.Patch)
	stores.GET("/:id/customized-inventories", h.CustomizedInventory.ListByStore)

	products := data.Group("/products")
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.GetByID)
	products.PATCH("/:id", h.Product.Patch)
	products.GET("/:id/customized-inventories", h.CustomizedInventory.ListByProduct)

	inventories := data.Group("/inventories")
	inventories.GET("", h.Inventory.List)
	inventories.GET("/:id", h.Inventory.GetByID)
	inventories.PATCH("/:id", h.Inventory.Patch)

	receipts := data.Group("/receipts")
	receipts.GET("", h.Receipt.List)
	receipts.POST("", h.Receipt.Create)
	receipts.GET("/:id", h.Receipt.GetByID)
	receipts.PATCH("/:id", h.Receipt.Patch)
	receipts.DELETE("/:id", h.Receipt.Delete)
	receipts.GET("/:id/customized-inventories", h.CustomizedInventory.ListByReceipt)

	customized := data.Group("/customized-inventories")
	customized.GET("", h.CustomizedInventory.List)
	customized.GET("/:id", h.CustomizedInventory.GetByID)

	data.GET("/commands/:ticket", h.Command.GetResult)

	return engine, nil
}
