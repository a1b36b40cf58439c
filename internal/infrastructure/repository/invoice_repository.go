package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	domainRepo "github.com/printflow/printflow-api/internal/domain/repository"
	"github.com/printflow/printflow-api/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// CreateWithNumber allocates the invoice number and inserts the invoice in
// one transaction. The branch row is locked so two concurrent creates for
// the same branch serialize on the lock and cannot see the same last number.
func (r *invoiceRepository) CreateWithNumber(ctx context.Context, invoice *entity.Invoice, allocate func(branchCode, lastNumber string) (string, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var branch entity.Branch
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&branch, "id = ?", invoice.BranchID).Error; err != nil {
			return err
		}

		// Soft-deleted invoices keep their numbers, so scan them too.
		var last entity.Invoice
		lastNumber := ""
		err := tx.Unscoped().
			Where("branch_id = ?", invoice.BranchID).
			Order("invoice_number DESC").
			First(&last).Error
		if err == nil {
			lastNumber = last.InvoiceNumber
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		number, err := allocate(branch.Code, lastNumber)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number

		return tx.Create(invoice).Error
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Preload("Items").
		Preload("Payments").
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) UpdateGuarded(ctx context.Context, invoice *entity.Invoice) error {
	current := invoice.Version
	invoice.Version = current + 1

	res := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ? AND version = ?", invoice.ID, current).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(invoice)
	if res.Error != nil {
		invoice.Version = current
		return res.Error
	}
	if res.RowsAffected == 0 {
		invoice.Version = current
		return apperror.ErrConcurrencyConflict
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.BranchID != nil {
		query = query.Where("branch_id = ?", *params.BranchID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) CreateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *invoiceRepository) GetLineItem(ctx context.Context, id uuid.UUID) (*entity.InvoiceLineItem, error) {
	var item entity.InvoiceLineItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *invoiceRepository) UpdateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *invoiceRepository) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.InvoiceLineItem{}, "id = ?", id).Error
}

func (r *invoiceRepository) ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLineItem, error) {
	var items []entity.InvoiceLineItem
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *invoiceRepository) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *invoiceRepository) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *invoiceRepository) CountPayments(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	return count, err
}
