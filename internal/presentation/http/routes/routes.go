package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmaweb/pharmapos-api/internal/config"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	domainRepo "github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/handler"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/middleware"
	"github.com/pharmaweb/pharmapos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Cart      *handler.CartHandler
	Checkout  *handler.CheckoutHandler
	Sale      *handler.SaleHandler
	Catalog   *handler.CatalogHandler
	Patient   *handler.PatientHandler
	Proforma  *handler.ProformaHandler
	Supplier  *handler.SupplierHandler
	Purchase  *handler.PurchaseHandler
	Pharmacy  *handler.PharmacyHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Stats)

	// Cart
	registerCartRoutes(protected, h)

	// Checkout
	registerCheckoutRoutes(protected, h, deps)

	// Sales history
	registerSaleRoutes(protected, h)

	// Medication catalog
	registerCatalogRoutes(protected, h)

	// Patients
	registerPatientRoutes(protected, h)

	// Proformas
	registerProformaRoutes(protected, h)

	// Suppliers and restocking
	registerSupplyRoutes(protected, h)

	// Pharmacy profile
	registerPharmacyRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.DELETE("/items/:index", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
	}
}

func registerCheckoutRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	checkout := protected.Group("/checkout")
	{
		checkout.POST("/validate", h.Checkout.Validate)
		// Finalization uses idempotency middleware so a retried request can
		// never produce two sales
		checkout.POST("/finalize", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Checkout.Finalize)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/ticket/:ticketNo", h.Sale.GetByTicketNo)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/print", h.Sale.Ticket)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	medications := protected.Group("/medications")
	{
		medications.GET("", h.Catalog.List)
		medications.GET("/search", h.Catalog.Search)
		medications.GET("/low-stock", h.Catalog.LowStock)
		medications.GET("/:id", h.Catalog.Get)
		medications.GET("/:id/movements", h.Catalog.Movements)

		// Catalog and stock management is restricted to pharmacists and admins
		managed := medications.Group("")
		managed.Use(middleware.RequireRole(entity.RoleAdmin, entity.RolePharmacist))
		{
			managed.POST("", h.Catalog.Create)
			managed.PUT("/:id", h.Catalog.Update)
			managed.DELETE("/:id", h.Catalog.Delete)
			managed.POST("/:id/adjust-stock", h.Catalog.AdjustStock)
		}
	}
}

func registerPatientRoutes(protected *gin.RouterGroup, h *Handlers) {
	patients := protected.Group("/patients")
	{
		patients.GET("", h.Patient.List)
		patients.POST("", h.Patient.Create)
		patients.GET("/:id", h.Patient.Get)
		patients.PUT("/:id", h.Patient.Update)
		patients.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin, entity.RolePharmacist), h.Patient.Delete)
	}
}

func registerProformaRoutes(protected *gin.RouterGroup, h *Handlers) {
	proformas := protected.Group("/proformas")
	{
		proformas.GET("", h.Proforma.List)
		proformas.POST("", h.Proforma.Create)
		proformas.GET("/:id", h.Proforma.Get)
		proformas.PUT("/:id/status", h.Proforma.UpdateStatus)
		proformas.DELETE("/:id", h.Proforma.Delete)
	}
}

func registerSupplyRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Restocking is stock management, same roles as the catalog
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequireRole(entity.RoleAdmin, entity.RolePharmacist))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}

	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequireRole(entity.RoleAdmin, entity.RolePharmacist))
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/receive", h.Purchase.Receive)
		purchases.POST("/:id/cancel", h.Purchase.Cancel)
	}
}

func registerPharmacyRoutes(protected *gin.RouterGroup, h *Handlers) {
	pharmacy := protected.Group("/pharmacy")
	{
		pharmacy.GET("", h.Pharmacy.Get)
		pharmacy.PUT("", middleware.RequireRole(entity.RoleAdmin), h.Pharmacy.Update)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.POST("", h.Auth.CreateUser)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.Status)
	}
}
