package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	domainRepo "github.com/printflow/printflow-api/internal/domain/repository"
	"gorm.io/gorm"
)

type pricingTierRepository struct {
	db *gorm.DB
}

// NewPricingTierRepository creates a new weight pricing tier repository
func NewPricingTierRepository(db *gorm.DB) domainRepo.PricingTierRepository {
	return &pricingTierRepository{db: db}
}

func (r *pricingTierRepository) Create(ctx context.Context, tier *entity.WeightPricingTier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

func (r *pricingTierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.WeightPricingTier, error) {
	var tier entity.WeightPricingTier
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&tier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tier, err
}

func (r *pricingTierRepository) ListActive(ctx context.Context, companyID uuid.UUID) ([]entity.WeightPricingTier, error) {
	var tiers []entity.WeightPricingTier
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("sort_order ASC, min_weight_kg ASC").
		Find(&tiers).Error
	return tiers, err
}

func (r *pricingTierRepository) ListAll(ctx context.Context, companyID uuid.UUID) ([]entity.WeightPricingTier, error) {
	var tiers []entity.WeightPricingTier
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("sort_order ASC, min_weight_kg ASC").
		Find(&tiers).Error
	return tiers, err
}

func (r *pricingTierRepository) Update(ctx context.Context, tier *entity.WeightPricingTier) error {
	return r.db.WithContext(ctx).Save(tier).Error
}

func (r *pricingTierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.WeightPricingTier{}, "id = ?", id).Error
}
