package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printflow/printflow-api/internal/config"
	domainRepo "github.com/printflow/printflow-api/internal/domain/repository"
	"github.com/printflow/printflow-api/internal/presentation/http/handler"
	"github.com/printflow/printflow-api/internal/presentation/http/middleware"
	"github.com/printflow/printflow-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Company    *handler.CompanyHandler
	Customer   *handler.CustomerHandler
	Product    *handler.ProductHandler
	Pricing    *handler.PricingHandler
	Invoice    *handler.InvoiceHandler
	Production *handler.ProductionHandler
	Delivery   *handler.DeliveryHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
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
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireCompany())

		// Per-company rate limiter
		rateLimiter := middleware.NewCompanyRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		// Replay protection on mutating endpoints
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/auth/profile", h.Auth.Profile)

	company := rg.Group("/company")
	{
		company.GET("", h.Company.Get)
		company.PUT("", h.Company.Update)
		company.GET("/branches", h.Company.ListBranches)
		company.POST("/branches", h.Company.CreateBranch)
		company.PUT("/branches/:id", h.Company.UpdateBranch)
		company.DELETE("/branches/:id", h.Company.DeleteBranch)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	pricing := rg.Group("/pricing")
	{
		pricing.GET("/tiers", h.Pricing.ListTiers)
		pricing.POST("/tiers", h.Pricing.CreateTier)
		pricing.PUT("/tiers/:id", h.Pricing.UpdateTier)
		pricing.DELETE("/tiers/:id", h.Pricing.DeleteTier)
		pricing.GET("/quote", h.Pricing.Quote)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)
		invoices.PATCH("/:id/discount", h.Invoice.SetDiscount)
		invoices.POST("/:id/recalculate", h.Invoice.Recalculate)
		invoices.POST("/:id/payments", h.Invoice.RecordPayment)
		invoices.POST("/:id/items", h.Invoice.AddLineItem)
		invoices.PUT("/:id/items/:itemId", h.Invoice.UpdateLineItem)
		invoices.DELETE("/:id/items/:itemId", h.Invoice.RemoveLineItem)
	}

	jobs := rg.Group("/print-jobs")
	{
		jobs.GET("", h.Production.List)
		jobs.POST("", h.Production.Create)
		jobs.GET("/:id", h.Production.Get)
		jobs.DELETE("/:id", h.Production.Delete)
		jobs.POST("/:id/stages", h.Production.AddStage)
		jobs.POST("/:id/stages/:stageId/transition", h.Production.TransitionStage)
		jobs.POST("/:id/progress/recompute", h.Production.RecomputeProgress)
		jobs.PUT("/:id/progress/manual", h.Production.SetManualProgress)
		jobs.DELETE("/:id/progress/manual", h.Production.ClearManualProgress)
	}

	deliveries := rg.Group("/deliveries")
	{
		deliveries.GET("", h.Delivery.List)
		deliveries.POST("", h.Delivery.Create)
		deliveries.GET("/:id", h.Delivery.Get)
		deliveries.POST("/:id/dispatch", h.Delivery.Dispatch)
		deliveries.POST("/:id/delivered", h.Delivery.MarkDelivered)
		deliveries.POST("/:id/failed", h.Delivery.MarkFailed)
	}
}
