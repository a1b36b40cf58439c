package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"github.com/printflow/printflow-api/pkg/pagination"
)

// PrintJobFilterParams contains filtering parameters for print job queries
type PrintJobFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ProductionStatus
	CustomerID *uuid.UUID
	InvoiceID  *uuid.UUID
}

// PrintJobRepository defines the interface for print job data operations
type PrintJobRepository interface {
	Create(ctx context.Context, job *entity.PrintJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PrintJob, error)
	GetWithStages(ctx context.Context, id uuid.UUID) (*entity.PrintJob, error)
	Update(ctx context.Context, job *entity.PrintJob) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PrintJobFilterParams) ([]entity.PrintJob, int64, error)
}

// ProductionStageRepository defines the interface for production stage operations
type ProductionStageRepository interface {
	Create(ctx context.Context, stage *entity.ProductionStage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductionStage, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]entity.ProductionStage, error)
	// UpdateGuarded persists the stage only if its version column still
	// matches stage.Version, then bumps the version. Returns
	// apperror.ErrConcurrencyConflict when the row changed underneath.
	UpdateGuarded(ctx context.Context, stage *entity.ProductionStage) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NextStageOrder returns max(stage_order)+1 for the job, starting at 1.
	NextStageOrder(ctx context.Context, jobID uuid.UUID) (int, error)
}
