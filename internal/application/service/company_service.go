package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/repository"
	infraRepo "github.com/printflow/printflow-api/internal/infrastructure/repository"
	"github.com/printflow/printflow-api/pkg/apperror"
	"github.com/printflow/printflow-api/pkg/utils"
)

// CompanyService handles company and branch operations
type CompanyService struct {
	companyRepo repository.CompanyRepository
	branchRepo  repository.BranchRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(
	companyRepo repository.CompanyRepository,
	branchRepo repository.BranchRepository,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		branchRepo:  branchRepo,
	}
}

// CompanyInput represents the create/update company input
type CompanyInput struct {
	Name     string
	Slug     string
	Email    *string
	Phone    *string
	Address  *string
	Currency string
	TaxRate  *float64 // fraction, e.g. 0.12
}

// CreateCompany creates a company
func (s *CompanyService) CreateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "name",
			Message: "name is required",
		}})
	}
	if input.TaxRate != nil && (*input.TaxRate < 0 || *input.TaxRate >= 1) {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "tax_rate",
			Message: "tax rate must be a fraction between 0 and 1",
		}})
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	existing, err := s.companyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A company with this slug already exists")
	}

	company := &entity.Company{
		Name:     input.Name,
		Slug:     slug,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Currency: strings.ToUpper(input.Currency),
		IsActive: true,
	}
	if company.Currency == "" {
		company.Currency = "KES"
	}
	if input.TaxRate != nil {
		company.TaxRate = *input.TaxRate
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves the caller's company
func (s *CompanyService) GetCompany(ctx context.Context) (*entity.Company, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// UpdateCompany updates the caller's company settings
func (s *CompanyService) UpdateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	company, err := s.GetCompany(ctx)
	if err != nil {
		return nil, err
	}
	if input.TaxRate != nil && (*input.TaxRate < 0 || *input.TaxRate >= 1) {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "tax_rate",
			Message: "tax rate must be a fraction between 0 and 1",
		}})
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.Email != nil {
		company.Email = input.Email
	}
	if input.Phone != nil {
		company.Phone = input.Phone
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.Currency != "" {
		company.Currency = strings.ToUpper(input.Currency)
	}
	if input.TaxRate != nil {
		company.TaxRate = *input.TaxRate
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// BranchInput represents the create/update branch input
type BranchInput struct {
	Name    string
	Code    string
	Address *string
	Phone   *string
}

// CreateBranch creates a branch under the caller's company. The code
// becomes the invoice number prefix for the branch, so it is uppercased
// and immutable afterwards.
func (s *CompanyService) CreateBranch(ctx context.Context, input *BranchInput) (*entity.Branch, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	var fields []apperror.FieldError
	if input.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		fields = append(fields, apperror.FieldError{Field: "code", Message: "code is required"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	branch := &entity.Branch{
		CompanyID: companyID,
		Name:      input.Name,
		Code:      code,
		Address:   input.Address,
		Phone:     input.Phone,
		IsActive:  true,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// ListBranches returns the caller's branches
func (s *CompanyService) ListBranches(ctx context.Context) ([]entity.Branch, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	return s.branchRepo.ListByCompany(ctx, companyID)
}

// UpdateBranch updates a branch's details. The code is not editable since
// issued invoice numbers embed it.
func (s *CompanyService) UpdateBranch(ctx context.Context, id uuid.UUID, input *BranchInput) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.Name != "" {
		branch.Name = input.Name
	}
	if input.Address != nil {
		branch.Address = input.Address
	}
	if input.Phone != nil {
		branch.Phone = input.Phone
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch deletes a branch
func (s *CompanyService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	return s.branchRepo.Delete(ctx, id)
}
