package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"github.com/printflow/printflow-api/internal/domain/repository"
	"github.com/printflow/printflow-api/internal/domain/workflow"
	infraRepo "github.com/printflow/printflow-api/internal/infrastructure/repository"
	"github.com/printflow/printflow-api/pkg/apperror"
)

// ProductionService handles print job and production stage operations
type ProductionService struct {
	jobRepo   repository.PrintJobRepository
	stageRepo repository.ProductionStageRepository
}

// NewProductionService creates a new production service
func NewProductionService(
	jobRepo repository.PrintJobRepository,
	stageRepo repository.ProductionStageRepository,
) *ProductionService {
	return &ProductionService{
		jobRepo:   jobRepo,
		stageRepo: stageRepo,
	}
}

// StageInput represents one stage on a new print job
type StageInput struct {
	Name                     string
	RequiresCustomerApproval bool
}

// CreateJobInput represents the create print job input
type CreateJobInput struct {
	Title      string
	InvoiceID  *uuid.UUID
	CustomerID *uuid.UUID
	DueDate    *time.Time
	Stages     []StageInput
}

// CreateJob creates a print job with its initial stages. Stage order is
// assigned from position, starting at 1.
func (s *ProductionService) CreateJob(ctx context.Context, input *CreateJobInput) (*entity.PrintJob, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if input.Title == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "title",
			Message: "title is required",
		}})
	}

	stages := make([]entity.ProductionStage, 0, len(input.Stages))
	for i, st := range input.Stages {
		if st.Name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   fmt.Sprintf("stages[%d].name", i),
				Message: "stage name is required",
			}})
		}
		stages = append(stages, entity.ProductionStage{
			StageName:                st.Name,
			StageOrder:               i + 1,
			StageStatus:              enum.StageStatusPending,
			RequiresCustomerApproval: st.RequiresCustomerApproval,
		})
	}

	job := &entity.PrintJob{
		CompanyID:        companyID,
		InvoiceID:        input.InvoiceID,
		CustomerID:       input.CustomerID,
		Title:            input.Title,
		DueDate:          input.DueDate,
		ProductionStatus: enum.ProductionStatusPending,
		Stages:           stages,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return s.jobRepo.GetWithStages(ctx, job.ID)
}

// GetJob retrieves a print job with its stages ordered by stage order
func (s *ProductionService) GetJob(ctx context.Context, id uuid.UUID) (*entity.PrintJob, error) {
	job, err := s.jobRepo.GetWithStages(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Print job")
	}
	return job, nil
}

// ListJobs retrieves print jobs with filtering and pagination
func (s *ProductionService) ListJobs(ctx context.Context, params *repository.PrintJobFilterParams) ([]entity.PrintJob, int64, error) {
	return s.jobRepo.List(ctx, params)
}

// AddStage appends a stage to an existing job at the next stage order
func (s *ProductionService) AddStage(ctx context.Context, jobID uuid.UUID, input *StageInput) (*entity.ProductionStage, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Print job")
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "name",
			Message: "stage name is required",
		}})
	}

	order, err := s.stageRepo.NextStageOrder(ctx, jobID)
	if err != nil {
		return nil, err
	}
	stage := &entity.ProductionStage{
		PrintJobID:               jobID,
		StageName:                input.Name,
		StageOrder:               order,
		StageStatus:              enum.StageStatusPending,
		RequiresCustomerApproval: input.RequiresCustomerApproval,
	}
	if err := s.stageRepo.Create(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

// TransitionStage applies a workflow event to a stage. Invalid transitions
// fail with a conflict; they are never silently ignored. Completion and
// approval events trigger a progress recompute on the parent job.
func (s *ProductionService) TransitionStage(ctx context.Context, jobID, stageID uuid.UUID, eventName string, actorID uuid.UUID, note string) (*entity.ProductionStage, error) {
	event, ok := enum.ParseStageEvent(eventName)
	if !ok {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown stage event %q", eventName))
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Print job")
	}

	var stage *entity.ProductionStage
	err = retryOnConflict(func() error {
		var err error
		stage, err = s.stageRepo.GetByID(ctx, stageID)
		if err != nil {
			return err
		}
		if stage == nil || stage.PrintJobID != jobID {
			return apperror.NewNotFoundError("Production stage")
		}
		if err := workflow.Apply(stage, event, actorID, note, time.Now()); err != nil {
			return err
		}
		return s.stageRepo.UpdateGuarded(ctx, stage)
	})
	if err != nil {
		return nil, err
	}

	if workflow.TriggersProgressRecompute(event) {
		if err := s.recomputeProgress(ctx, job); err != nil {
			return nil, err
		}
	}
	return stage, nil
}

// RecomputeJobProgress recomputes and persists a job's completion
// percentage and production status from its stages
func (s *ProductionService) RecomputeJobProgress(ctx context.Context, jobID uuid.UUID) (*entity.PrintJob, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Print job")
	}
	if err := s.recomputeProgress(ctx, job); err != nil {
		return nil, err
	}
	return s.jobRepo.GetWithStages(ctx, job.ID)
}

// SetManualProgress pins the job's completion percentage, detaching it from
// the stage-derived value until cleared
func (s *ProductionService) SetManualProgress(ctx context.Context, jobID uuid.UUID, percentage int) (*entity.PrintJob, error) {
	if percentage < 0 || percentage > 100 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "completion_percentage",
			Message: "percentage must be between 0 and 100",
		}})
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Print job")
	}
	job.CompletionPercentage = percentage
	job.ManualProgress = true
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ClearManualProgress releases a manual override and recomputes from stages
func (s *ProductionService) ClearManualProgress(ctx context.Context, jobID uuid.UUID) (*entity.PrintJob, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Print job")
	}
	job.ManualProgress = false
	if err := s.recomputeProgress(ctx, job); err != nil {
		return nil, err
	}
	return s.jobRepo.GetWithStages(ctx, job.ID)
}

// DeleteJob deletes a print job and, via cascade, its stages
func (s *ProductionService) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return apperror.NewNotFoundError("Print job")
	}
	return s.jobRepo.Delete(ctx, jobID)
}

func (s *ProductionService) recomputeProgress(ctx context.Context, job *entity.PrintJob) error {
	stages, err := s.stageRepo.ListByJob(ctx, job.ID)
	if err != nil {
		return err
	}
	p := workflow.RecomputeProgress(job, stages)
	workflow.ApplyProgress(job, p)
	return s.jobRepo.Update(ctx, job)
}
