package database

import (
	"fmt"
	"log"

	"github.com/printflow/printflow-api/internal/config"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenant entities
		&entity.Company{},
		&entity.Branch{},
		&entity.User{},

		// Catalog entities
		&entity.Customer{},
		&entity.Product{},
		&entity.WeightPricingTier{},

		// Billing entities
		&entity.Invoice{},
		&entity.InvoiceLineItem{},
		&entity.Payment{},

		// Production entities
		&entity.PrintJob{},
		&entity.ProductionStage{},
		&entity.Delivery{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds a default company, branch and admin user so a fresh
// install is usable immediately.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var company entity.Company
	err := db.Where("slug = ?", "default").First(&company).Error
	if err != nil {
		company = entity.Company{
			Name:     "Default Print Shop",
			Slug:     "default",
			Currency: "KES",
		}
		if err := db.Create(&company).Error; err != nil {
			return fmt.Errorf("failed to create default company: %w", err)
		}

		branch := entity.Branch{
			CompanyID: company.ID,
			Name:      "Main Branch",
			Code:      "MAIN",
		}
		if err := db.Create(&branch).Error; err != nil {
			return fmt.Errorf("failed to create default branch: %w", err)
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "password"
		log.Println("Warning: using default admin password, change it in production")
	}

	var admin entity.User
	err = db.Where("email = ?", adminEmail).First(&admin).Error
	if err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin = entity.User{
			CompanyID: company.ID,
			FirstName: "Admin",
			LastName:  "User",
			Email:     adminEmail,
			Password:  string(hashed),
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Printf("Created admin user: %s", adminEmail)
	}

	log.Println("Default data seeding completed")
	return nil
}
