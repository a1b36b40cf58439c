package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/pricing"
	"github.com/printflow/printflow-api/internal/domain/repository"
	infraRepo "github.com/printflow/printflow-api/internal/infrastructure/repository"
	"github.com/printflow/printflow-api/pkg/apperror"
	"github.com/printflow/printflow-api/pkg/utils"
)

// PricingService handles weight tier configuration and weight quoting
type PricingService struct {
	tierRepo repository.PricingTierRepository
}

// NewPricingService creates a new pricing service
func NewPricingService(tierRepo repository.PricingTierRepository) *PricingService {
	return &PricingService{tierRepo: tierRepo}
}

// TierInput represents the create/update tier input
type TierInput struct {
	Name        string
	MinWeightKg float64
	MaxWeightKg *float64
	BasePrice   float64 // decimal
	PricePerKg  float64 // decimal
	SortOrder   int
	IsActive    *bool
}

func validateTier(in *TierInput) error {
	var fields []apperror.FieldError
	if in.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if in.MinWeightKg < 0 {
		fields = append(fields, apperror.FieldError{Field: "min_weight_kg", Message: "minimum weight cannot be negative"})
	}
	if in.MaxWeightKg != nil && *in.MaxWeightKg <= in.MinWeightKg {
		fields = append(fields, apperror.FieldError{Field: "max_weight_kg", Message: "maximum weight must exceed the minimum"})
	}
	if in.BasePrice < 0 {
		fields = append(fields, apperror.FieldError{Field: "base_price", Message: "base price cannot be negative"})
	}
	if in.PricePerKg < 0 {
		fields = append(fields, apperror.FieldError{Field: "price_per_kg", Message: "price per kg cannot be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// CreateTier creates a weight pricing tier for the company
func (s *PricingService) CreateTier(ctx context.Context, input *TierInput) (*entity.WeightPricingTier, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if err := validateTier(input); err != nil {
		return nil, err
	}

	tier := &entity.WeightPricingTier{
		CompanyID:   companyID,
		TierName:    input.Name,
		MinWeightKg: input.MinWeightKg,
		MaxWeightKg: input.MaxWeightKg,
		BasePrice:   utils.Cents(input.BasePrice),
		PricePerKg:  utils.Cents(input.PricePerKg),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		tier.IsActive = *input.IsActive
	}
	if err := s.tierRepo.Create(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}

// ListTiers returns all of the company's tiers, active or not
func (s *PricingService) ListTiers(ctx context.Context) ([]entity.WeightPricingTier, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	return s.tierRepo.ListAll(ctx, companyID)
}

// UpdateTier updates a weight pricing tier
func (s *PricingService) UpdateTier(ctx context.Context, id uuid.UUID, input *TierInput) (*entity.WeightPricingTier, error) {
	tier, err := s.tierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, apperror.NewNotFoundError("Pricing tier")
	}
	if err := validateTier(input); err != nil {
		return nil, err
	}

	tier.TierName = input.Name
	tier.MinWeightKg = input.MinWeightKg
	tier.MaxWeightKg = input.MaxWeightKg
	tier.BasePrice = utils.Cents(input.BasePrice)
	tier.PricePerKg = utils.Cents(input.PricePerKg)
	tier.SortOrder = input.SortOrder
	if input.IsActive != nil {
		tier.IsActive = *input.IsActive
	}
	if err := s.tierRepo.Update(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}

// DeleteTier deletes a weight pricing tier
func (s *PricingService) DeleteTier(ctx context.Context, id uuid.UUID) error {
	tier, err := s.tierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tier == nil {
		return apperror.NewNotFoundError("Pricing tier")
	}
	return s.tierRepo.Delete(ctx, id)
}

// QuoteWeight prices a weight through the company's active tier table,
// falling back to the built-in ladder when no tier matches
func (s *PricingService) QuoteWeight(ctx context.Context, weightKg float64) (*pricing.Quote, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	tiers, err := s.tierRepo.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	quote := pricing.PriceForWeight(tiers, weightKg)
	return &quote, nil
}
