package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"github.com/printflow/printflow-api/pkg/pagination"
)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.InvoiceStatus
	PaymentStatus *enum.PaymentStatus
	CustomerID    *uuid.UUID
	BranchID      *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// CreateWithNumber inserts the invoice and its line items in a single
	// transaction. The branch row is locked for the duration, and allocate
	// is called with the branch code and the highest invoice number already
	// issued for the branch ("" when none) to produce the new number.
	CreateWithNumber(ctx context.Context, invoice *entity.Invoice, allocate func(branchCode, lastNumber string) (string, error)) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// UpdateGuarded persists the invoice only if its version column still
	// matches invoice.Version, then bumps the version. Returns
	// apperror.ErrConcurrencyConflict when another writer got there first.
	UpdateGuarded(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)

	CreateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error
	GetLineItem(ctx context.Context, id uuid.UUID) (*entity.InvoiceLineItem, error)
	UpdateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error
	DeleteLineItem(ctx context.Context, id uuid.UUID) error
	ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLineItem, error)

	CreatePayment(ctx context.Context, payment *entity.Payment) error
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	CountPayments(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}
