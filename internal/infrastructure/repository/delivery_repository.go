package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	domainRepo "github.com/printflow/printflow-api/internal/domain/repository"
	"gorm.io/gorm"
)

type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new delivery repository
func NewDeliveryRepository(db *gorm.DB) domainRepo.DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, delivery *entity.Delivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *deliveryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Delivery, error) {
	var delivery entity.Delivery
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&delivery, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &delivery, err
}

func (r *deliveryRepository) Update(ctx context.Context, delivery *entity.Delivery) error {
	return r.db.WithContext(ctx).Save(delivery).Error
}

func (r *deliveryRepository) List(ctx context.Context, params *domainRepo.DeliveryFilterParams) ([]entity.Delivery, int64, error) {
	var deliveries []entity.Delivery
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Delivery{}).Scopes(CompanyScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
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
		Find(&deliveries).Error

	return deliveries, total, err
}
