package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
)

// PricingTierRepository defines the interface for weight tier operations
type PricingTierRepository interface {
	Create(ctx context.Context, tier *entity.WeightPricingTier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.WeightPricingTier, error)
	// ListActive returns the company's active tiers ordered by sort order.
	ListActive(ctx context.Context, companyID uuid.UUID) ([]entity.WeightPricingTier, error)
	ListAll(ctx context.Context, companyID uuid.UUID) ([]entity.WeightPricingTier, error)
	Update(ctx context.Context, tier *entity.WeightPricingTier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
