package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/printflow/printflow-api/internal/application/service"
	"github.com/printflow/printflow-api/internal/config"
	"github.com/printflow/printflow-api/internal/infrastructure/database"
	"github.com/printflow/printflow-api/internal/infrastructure/repository"
	"github.com/printflow/printflow-api/internal/presentation/http/handler"
	"github.com/printflow/printflow-api/internal/presentation/http/routes"
	"github.com/printflow/printflow-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize structured logger
	var logger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	tierRepo := repository.NewPricingTierRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	jobRepo := repository.NewPrintJobRepository(db)
	stageRepo := repository.NewProductionStageRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	companyService := service.NewCompanyService(companyRepo, branchRepo)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	pricingService := service.NewPricingService(tierRepo)
	invoiceService := service.NewInvoiceService(
		invoiceRepo, branchRepo, customerRepo, productRepo, tierRepo, companyRepo,
		cfg.Billing.DefaultTaxRate,
	)
	productionService := service.NewProductionService(jobRepo, stageRepo)
	deliveryService := service.NewDeliveryService(deliveryRepo, invoiceRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Company:    handler.NewCompanyHandler(companyService),
		Customer:   handler.NewCustomerHandler(customerService),
		Product:    handler.NewProductHandler(productService),
		Pricing:    handler.NewPricingHandler(pricingService),
		Invoice:    handler.NewInvoiceHandler(invoiceService),
		Production: handler.NewProductionHandler(productionService),
		Delivery:   handler.NewDeliveryHandler(deliveryService),
	}

	// Setup router and start server
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	logger.Info("starting server",
		zap.String("name", cfg.App.Name),
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env),
	)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
