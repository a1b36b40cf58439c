package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	domainRepo "github.com/printflow/printflow-api/internal/domain/repository"
	"github.com/printflow/printflow-api/pkg/apperror"
	"gorm.io/gorm"
)

type printJobRepository struct {
	db *gorm.DB
}

// NewPrintJobRepository creates a new print job repository
func NewPrintJobRepository(db *gorm.DB) domainRepo.PrintJobRepository {
	return &printJobRepository{db: db}
}

func (r *printJobRepository) Create(ctx context.Context, job *entity.PrintJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *printJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PrintJob, error) {
	var job entity.PrintJob
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &job, err
}

func (r *printJobRepository) GetWithStages(ctx context.Context, id uuid.UUID) (*entity.PrintJob, error) {
	var job entity.PrintJob
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_order ASC")
		}).
		First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &job, err
}

func (r *printJobRepository) Update(ctx context.Context, job *entity.PrintJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *printJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.PrintJob{}, "id = ?", id).Error
}

func (r *printJobRepository) List(ctx context.Context, params *domainRepo.PrintJobFilterParams) ([]entity.PrintJob, int64, error) {
	var jobs []entity.PrintJob
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PrintJob{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		query = query.Where("title ILIKE ?", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("production_status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *params.InvoiceID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&jobs).Error

	return jobs, total, err
}

type productionStageRepository struct {
	db *gorm.DB
}

// NewProductionStageRepository creates a new production stage repository
func NewProductionStageRepository(db *gorm.DB) domainRepo.ProductionStageRepository {
	return &productionStageRepository{db: db}
}

func (r *productionStageRepository) Create(ctx context.Context, stage *entity.ProductionStage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *productionStageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductionStage, error) {
	var stage entity.ProductionStage
	err := r.db.WithContext(ctx).First(&stage, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stage, err
}

func (r *productionStageRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]entity.ProductionStage, error) {
	var stages []entity.ProductionStage
	err := r.db.WithContext(ctx).
		Where("print_job_id = ?", jobID).
		Order("stage_order ASC").
		Find(&stages).Error
	return stages, err
}

func (r *productionStageRepository) UpdateGuarded(ctx context.Context, stage *entity.ProductionStage) error {
	current := stage.Version
	stage.Version = current + 1

	res := r.db.WithContext(ctx).Model(&entity.ProductionStage{}).
		Where("id = ? AND version = ?", stage.ID, current).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(stage)
	if res.Error != nil {
		stage.Version = current
		return res.Error
	}
	if res.RowsAffected == 0 {
		stage.Version = current
		return apperror.ErrConcurrencyConflict
	}
	return nil
}

func (r *productionStageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductionStage{}, "id = ?", id).Error
}

func (r *productionStageRepository) NextStageOrder(ctx context.Context, jobID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&entity.ProductionStage{}).
		Where("print_job_id = ?", jobID).
		Select("COALESCE(MAX(stage_order), 0)").
		Scan(&max).Error
	return max + 1, err
}
