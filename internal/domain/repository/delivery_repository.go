package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"github.com/printflow/printflow-api/pkg/pagination"
)

// DeliveryFilterParams contains filtering parameters for delivery queries
type DeliveryFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.DeliveryStatus
	InvoiceID  *uuid.UUID
}

// DeliveryRepository defines the interface for delivery data operations
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Delivery, error)
	Update(ctx context.Context, delivery *entity.Delivery) error
	List(ctx context.Context, params *DeliveryFilterParams) ([]entity.Delivery, int64, error)
}
