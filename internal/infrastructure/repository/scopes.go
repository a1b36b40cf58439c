package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// CompanyIDKey is the context key for the authenticated company ID
	CompanyIDKey ctxKey = "company_id"
)

// CompanyScope returns a GORM scope that filters by company
// This should be applied to all queries for company-scoped entities
func CompanyScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if company context missing
			// This prevents accidental cross-company data access
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}

// WithCompany adds company ID to context
func WithCompany(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, CompanyIDKey, companyID)
}

// GetCompanyID extracts company ID from context
func GetCompanyID(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
	return companyID, ok
}
