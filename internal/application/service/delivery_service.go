package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"github.com/printflow/printflow-api/internal/domain/repository"
	infraRepo "github.com/printflow/printflow-api/internal/infrastructure/repository"
	"github.com/printflow/printflow-api/pkg/apperror"
	"gorm.io/datatypes"
)

// DeliveryService handles delivery tracking for finished invoices
type DeliveryService struct {
	deliveryRepo repository.DeliveryRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(
	deliveryRepo repository.DeliveryRepository,
	invoiceRepo repository.InvoiceRepository,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// CreateDeliveryInput represents the create delivery input
type CreateDeliveryInput struct {
	InvoiceID uuid.UUID
	Address   string
	Contact   *string
	Metadata  map[string]interface{}
}

// CreateDelivery creates a pending delivery for a confirmed invoice
func (s *DeliveryService) CreateDelivery(ctx context.Context, input *CreateDeliveryInput) (*entity.Delivery, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if input.Address == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "address",
			Message: "address is required",
		}})
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusConfirmed {
		return nil, apperror.NewConflictError("Deliveries can only be created for confirmed invoices")
	}

	delivery := &entity.Delivery{
		CompanyID: companyID,
		InvoiceID: input.InvoiceID,
		Address:   input.Address,
		Contact:   input.Contact,
		Status:    enum.DeliveryStatusPending,
		Metadata:  datatypes.JSONMap(input.Metadata),
	}
	if err := s.deliveryRepo.Create(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

// GetDelivery retrieves a delivery by ID
func (s *DeliveryService) GetDelivery(ctx context.Context, id uuid.UUID) (*entity.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, apperror.NewNotFoundError("Delivery")
	}
	return delivery, nil
}

// ListDeliveries retrieves deliveries with filtering and pagination
func (s *DeliveryService) ListDeliveries(ctx context.Context, params *repository.DeliveryFilterParams) ([]entity.Delivery, int64, error) {
	return s.deliveryRepo.List(ctx, params)
}

// Dispatch marks a pending delivery as on its way
func (s *DeliveryService) Dispatch(ctx context.Context, id uuid.UUID) (*entity.Delivery, error) {
	delivery, err := s.GetDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status != enum.DeliveryStatusPending {
		return nil, apperror.NewConflictError("Only pending deliveries can be dispatched")
	}
	now := time.Now()
	delivery.Status = enum.DeliveryStatusDispatched
	delivery.DispatchedAt = &now
	if err := s.deliveryRepo.Update(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

// MarkDelivered marks a dispatched delivery as received
func (s *DeliveryService) MarkDelivered(ctx context.Context, id uuid.UUID) (*entity.Delivery, error) {
	delivery, err := s.GetDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status != enum.DeliveryStatusDispatched {
		return nil, apperror.NewConflictError("Only dispatched deliveries can be marked delivered")
	}
	now := time.Now()
	delivery.Status = enum.DeliveryStatusDelivered
	delivery.DeliveredAt = &now
	if err := s.deliveryRepo.Update(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

// MarkFailed records a failed delivery attempt with its reason
func (s *DeliveryService) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (*entity.Delivery, error) {
	delivery, err := s.GetDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status == enum.DeliveryStatusDelivered {
		return nil, apperror.NewConflictError("A delivered shipment cannot be marked failed")
	}
	delivery.Status = enum.DeliveryStatusFailed
	delivery.FailureReason = &reason
	if err := s.deliveryRepo.Update(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}
