// Package stub provides an in-memory inventory web API for local development
// and end-to-end tests of the client.
package stub

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/core/clock"
	"stockroom/internal/infrastructure/http/stub/middleware"
	"stockroom/internal/infrastructure/memstore"
	"stockroom/pkg/logger"
)

// RouterConfig holds the stub dependencies.
type RouterConfig struct {
	// Store holds the inventory records. Nil creates an empty store.
	Store *memstore.Store

	// Logger for request logging
	Logger *logger.Logger

	// Clock supplies "today" and default record dates. Nil uses the system clock.
	Clock clock.Clock
}

// CollectionRouteHandler is implemented by the CRUD handlers.
type CollectionRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterCollectionRoutes registers the standard CRUD routes of a collection.
func RegisterCollectionRoutes(group *gin.RouterGroup, handler CollectionRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}

// NewRouter creates the gin engine serving the inventory API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Store == nil {
		cfg.Store = memstore.NewStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	log := cfg.Logger.WithComponent("inventory-stub")

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	inv := newInventory(cfg.Store, cfg.Clock)
	api := router.Group("/api")

	products := api.Group("/products")
	products.GET("/low-stock", inv.LowStockProducts)
	RegisterCollectionRoutes(products, inv.productsHandler())

	suppliers := api.Group("/suppliers")
	suppliers.GET("/with-debt", inv.SuppliersWithDebt)
	RegisterCollectionRoutes(suppliers, inv.suppliersHandler())

	RegisterCollectionRoutes(api.Group("/stock-ins"), inv.stockInsHandler())
	RegisterCollectionRoutes(api.Group("/stock-outs"), inv.stockOutsHandler())

	reports := api.Group("/reports")
	reports.GET("/today-sales", inv.TodaySales)
	reports.GET("/sales", inv.SalesReport)
	reports.GET("/product-sales", inv.ProductSales)
	reports.GET("/stock-status", inv.StockStatus)
	reports.GET("/supplier-deliveries", inv.SupplierDeliveries)
	reports.GET("/profit", inv.Profit)
	reports.GET("/outstanding-debts", inv.OutstandingDebts)
	reports.GET("/activity", inv.Activity)

	return router
}
