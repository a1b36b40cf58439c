package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/billing"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/repository"
	infraRepo "github.com/printflow/printflow-api/internal/infrastructure/repository"
	"github.com/printflow/printflow-api/pkg/apperror"
	"github.com/printflow/printflow-api/pkg/utils"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents the create/update product input
type ProductInput struct {
	Name            string
	Slug            string
	Code            string
	BasePrice       float64 // decimal
	TaxRate         float64 // percent
	UnitWeight      float64
	WeightUnit      string
	MinimumQuantity int
	MaximumQuantity int
	Description     *string
	IsActive        *bool
}

func validateProduct(in *ProductInput) error {
	var fields []apperror.FieldError
	if in.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if in.Code == "" {
		fields = append(fields, apperror.FieldError{Field: "code", Message: "code is required"})
	}
	if in.BasePrice < 0 {
		fields = append(fields, apperror.FieldError{Field: "base_price", Message: "base price cannot be negative"})
	}
	if in.UnitWeight < 0 {
		fields = append(fields, apperror.FieldError{Field: "unit_weight", Message: "unit weight cannot be negative"})
	}
	if in.MinimumQuantity < 0 || in.MaximumQuantity < 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "quantity bounds cannot be negative"})
	}
	if in.MaximumQuantity > 0 && in.MinimumQuantity > in.MaximumQuantity {
		fields = append(fields, apperror.FieldError{Field: "minimum_quantity", Message: "minimum quantity exceeds the maximum"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// CreateProduct creates a product. The captured weight is normalized to kg
// once here; everything downstream reads kilograms.
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	weightUnit := input.WeightUnit
	if weightUnit == "" {
		weightUnit = "kg"
	}
	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	product := &entity.Product{
		CompanyID:       companyID,
		Name:            input.Name,
		Slug:            slug,
		Code:            input.Code,
		BasePrice:       utils.Cents(input.BasePrice),
		TaxRate:         input.TaxRate,
		UnitWeightKg:    billing.NormalizeWeight(input.UnitWeight, weightUnit),
		WeightUnit:      weightUnit,
		MinimumQuantity: input.MinimumQuantity,
		MaximumQuantity: input.MaximumQuantity,
		Description:     input.Description,
		IsActive:        true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts retrieves products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// UpdateProduct updates a product, renormalizing the weight if it changed
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	weightUnit := input.WeightUnit
	if weightUnit == "" {
		weightUnit = product.WeightUnit
	}

	product.Name = input.Name
	if input.Slug != "" {
		product.Slug = input.Slug
	}
	product.Code = input.Code
	product.BasePrice = utils.Cents(input.BasePrice)
	product.TaxRate = input.TaxRate
	product.UnitWeightKg = billing.NormalizeWeight(input.UnitWeight, weightUnit)
	product.WeightUnit = weightUnit
	product.MinimumQuantity = input.MinimumQuantity
	product.MaximumQuantity = input.MaximumQuantity
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
