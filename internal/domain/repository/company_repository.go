package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context) ([]entity.Company, error)
}

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
}
