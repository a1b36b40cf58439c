package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/billing"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"github.com/printflow/printflow-api/internal/domain/repository"
	infraRepo "github.com/printflow/printflow-api/internal/infrastructure/repository"
	"github.com/printflow/printflow-api/pkg/apperror"
	"github.com/printflow/printflow-api/pkg/utils"
	"gorm.io/datatypes"
)

// maxConflictRetries bounds the read-compute-write retries on an
// optimistic-lock conflict before the error surfaces to the client.
const maxConflictRetries = 3

func retryOnConflict(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = fn()
		if !apperror.IsConcurrencyConflict(err) {
			return err
		}
	}
	return err
}

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo    repository.InvoiceRepository
	branchRepo     repository.BranchRepository
	customerRepo   repository.CustomerRepository
	productRepo    repository.ProductRepository
	tierRepo       repository.PricingTierRepository
	companyRepo    repository.CompanyRepository
	defaultTaxRate float64
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	tierRepo repository.PricingTierRepository,
	companyRepo repository.CompanyRepository,
	defaultTaxRate float64,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		branchRepo:     branchRepo,
		customerRepo:   customerRepo,
		productRepo:    productRepo,
		tierRepo:       tierRepo,
		companyRepo:    companyRepo,
		defaultTaxRate: defaultTaxRate,
	}
}

// InvoiceLineInput represents one line on a new invoice
type InvoiceLineInput struct {
	ProductID      uuid.UUID
	Quantity       int
	UnitPrice      *float64 // decimal; nil falls back to the product base price
	Description    string
	Specifications map[string]interface{}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	BranchID       uuid.UUID
	CustomerID     *uuid.UUID
	DiscountAmount float64
	Items          []InvoiceLineInput
}

// CreateInvoice creates a draft invoice with its line items. The invoice
// number is allocated inside the repository transaction while the branch
// row is locked, so concurrent creates cannot produce duplicates.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
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

	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	items, err := s.buildLineItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	tiers, err := s.tierRepo.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	discount := utils.Cents(input.DiscountAmount)
	totals, err := billing.CalculateTotals(items, tiers, discount, company.EffectiveTaxRate(s.defaultTaxRate))
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		CompanyID:     companyID,
		BranchID:      input.BranchID,
		CustomerID:    input.CustomerID,
		Status:        enum.InvoiceStatusDraft,
		PaymentStatus: enum.PaymentStatusUnpaid,
		Items:         items,
	}
	billing.ApplyTotals(invoice, totals)

	err = s.invoiceRepo.CreateWithNumber(ctx, invoice, billing.NextInvoiceNumber)
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

func (s *InvoiceService) buildLineItems(ctx context.Context, inputs []InvoiceLineInput) ([]entity.InvoiceLineItem, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		productIDs[i] = in.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	items := make([]entity.InvoiceLineItem, 0, len(inputs))
	for _, in := range inputs {
		product, exists := productMap[in.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", in.ProductID))
		}

		unitPrice := product.BasePrice
		if in.UnitPrice != nil {
			unitPrice = utils.Cents(*in.UnitPrice)
		}

		lineInput := billing.LineInput{
			Quantity:     in.Quantity,
			UnitPrice:    unitPrice,
			UnitWeightKg: product.UnitWeightKg,
			TaxRatePct:   product.TaxRate,
		}
		if err := billing.ValidateLine(lineInput, product); err != nil {
			return nil, err
		}
		result := billing.ComputeLine(lineInput)

		description := in.Description
		if description == "" {
			description = product.Name
		}

		items = append(items, entity.InvoiceLineItem{
			ProductID:      in.ProductID,
			Description:    description,
			Quantity:       in.Quantity,
			UnitPrice:      unitPrice,
			UnitWeightKg:   product.UnitWeightKg,
			LineTotal:      result.LineTotal,
			LineWeightKg:   result.LineWeightKg,
			TaxAmount:      result.TaxAmount,
			Specifications: datatypes.JSONMap(in.Specifications),
		})
	}
	return items, nil
}

// GetInvoice retrieves an invoice with its line items and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices retrieves invoices with filtering and pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, params)
}

// AddLineItem appends a line to a modifiable invoice and recomputes totals
func (s *InvoiceService) AddLineItem(ctx context.Context, invoiceID uuid.UUID, input *InvoiceLineInput) (*entity.Invoice, error) {
	invoice, err := s.requireModifiable(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	items, err := s.buildLineItems(ctx, []InvoiceLineInput{*input})
	if err != nil {
		return nil, err
	}
	items[0].InvoiceID = invoice.ID
	if err := s.invoiceRepo.CreateLineItem(ctx, &items[0]); err != nil {
		return nil, err
	}

	if err := s.recalculateAndSave(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithItems(ctx, invoiceID)
}

// UpdateLineItemInput represents the editable fields of a line item
type UpdateLineItemInput struct {
	Quantity       *int
	UnitPrice      *float64
	Description    *string
	Specifications map[string]interface{}
}

// UpdateLineItem edits a line on a modifiable invoice and recomputes totals
func (s *InvoiceService) UpdateLineItem(ctx context.Context, invoiceID, itemID uuid.UUID, input *UpdateLineItemInput) (*entity.Invoice, error) {
	if _, err := s.requireModifiable(ctx, invoiceID); err != nil {
		return nil, err
	}

	item, err := s.invoiceRepo.GetLineItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.InvoiceID != invoiceID {
		return nil, apperror.NewNotFoundError("Line item")
	}

	product, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.UnitPrice != nil {
		item.UnitPrice = utils.Cents(*input.UnitPrice)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Specifications != nil {
		item.Specifications = datatypes.JSONMap(input.Specifications)
	}

	taxRate := 0.0
	if product != nil {
		taxRate = product.TaxRate
	}
	lineInput := billing.LineInput{
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		UnitWeightKg: item.UnitWeightKg,
		TaxRatePct:   taxRate,
	}
	if err := billing.ValidateLine(lineInput, product); err != nil {
		return nil, err
	}
	result := billing.ComputeLine(lineInput)
	item.LineTotal = result.LineTotal
	item.LineWeightKg = result.LineWeightKg
	item.TaxAmount = result.TaxAmount

	if err := s.invoiceRepo.UpdateLineItem(ctx, item); err != nil {
		return nil, err
	}

	if err := s.recalculateAndSave(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithItems(ctx, invoiceID)
}

// RemoveLineItem deletes a line from a modifiable invoice and recomputes totals
func (s *InvoiceService) RemoveLineItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*entity.Invoice, error) {
	if _, err := s.requireModifiable(ctx, invoiceID); err != nil {
		return nil, err
	}

	item, err := s.invoiceRepo.GetLineItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.InvoiceID != invoiceID {
		return nil, apperror.NewNotFoundError("Line item")
	}

	if err := s.invoiceRepo.DeleteLineItem(ctx, itemID); err != nil {
		return nil, err
	}

	if err := s.recalculateAndSave(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithItems(ctx, invoiceID)
}

// SetDiscount sets the invoice discount and recomputes totals
func (s *InvoiceService) SetDiscount(ctx context.Context, invoiceID uuid.UUID, discount float64) (*entity.Invoice, error) {
	if _, err := s.requireModifiable(ctx, invoiceID); err != nil {
		return nil, err
	}
	if discount < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "discount_amount",
			Message: "discount cannot be negative",
		}})
	}

	discountCents := utils.Cents(discount)
	err := retryOnConflict(func() error {
		invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		totals, err := s.computeTotals(ctx, invoice, discountCents)
		if err != nil {
			return err
		}
		billing.ApplyTotals(invoice, totals)
		applyPaymentStatus(invoice)
		return s.invoiceRepo.UpdateGuarded(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithItems(ctx, invoiceID)
}

// Recalculate recomputes an invoice's totals from its current line items
// and persists the result
func (s *InvoiceService) Recalculate(ctx context.Context, invoiceID uuid.UUID) (*entity.Invoice, error) {
	if err := s.recalculateAndSave(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithItems(ctx, invoiceID)
}

// invoiceStatusTransitions lists the allowed status moves.
var invoiceStatusTransitions = map[enum.InvoiceStatus][]enum.InvoiceStatus{
	enum.InvoiceStatusDraft:   {enum.InvoiceStatusPending, enum.InvoiceStatusCancelled},
	enum.InvoiceStatusPending: {enum.InvoiceStatusConfirmed, enum.InvoiceStatusCancelled},
}

// UpdateStatus moves an invoice along draft -> pending -> confirmed, or
// cancels it before confirmation
func (s *InvoiceService) UpdateStatus(ctx context.Context, invoiceID uuid.UUID, target enum.InvoiceStatus) (*entity.Invoice, error) {
	err := retryOnConflict(func() error {
		invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}

		allowed := false
		for _, next := range invoiceStatusTransitions[invoice.Status] {
			if next == target {
				allowed = true
				break
			}
		}
		if !allowed {
			return apperror.NewConflictError(fmt.Sprintf(
				"Cannot move invoice from %s to %s", invoice.Status, target))
		}

		invoice.Status = target
		return s.invoiceRepo.UpdateGuarded(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithItems(ctx, invoiceID)
}

// RecordPaymentInput represents the record payment input
type RecordPaymentInput struct {
	Amount     float64
	Method     string
	Reference  *string
	Note       *string
	PaidAt     *time.Time
	RecordedBy uuid.UUID
}

// RecordPayment registers money received against an invoice and updates the
// paid total and payment status
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, input *RecordPaymentInput) (*entity.Invoice, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "amount",
			Message: "payment amount must be greater than zero",
		}})
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusCancelled {
		return nil, apperror.NewConflictError("Cannot record a payment on a cancelled invoice")
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	payment := &entity.Payment{
		InvoiceID:  invoiceID,
		Amount:     utils.Cents(input.Amount),
		Method:     input.Method,
		Reference:  input.Reference,
		Note:       input.Note,
		RecordedBy: input.RecordedBy,
		PaidAt:     paidAt,
	}
	if err := s.invoiceRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	err = retryOnConflict(func() error {
		inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		payments, err := s.invoiceRepo.ListPayments(ctx, invoiceID)
		if err != nil {
			return err
		}
		var paid int64
		for i := range payments {
			paid += payments[i].Amount
		}
		inv.PaidTotal = paid
		applyPaymentStatus(inv)
		return s.invoiceRepo.UpdateGuarded(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithItems(ctx, invoiceID)
}

// DeleteInvoice deletes an unpaid draft invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	paymentCount, err := s.invoiceRepo.CountPayments(ctx, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.CanBeDeleted(paymentCount) {
		return apperror.NewConflictError("Only unpaid draft invoices can be deleted")
	}
	return s.invoiceRepo.Delete(ctx, invoiceID)
}

// requireModifiable loads the invoice and rejects edits once it is
// confirmed, cancelled or has payments recorded.
func (s *InvoiceService) requireModifiable(ctx context.Context, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	paymentCount, err := s.invoiceRepo.CountPayments(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.CanBeModified(paymentCount) {
		return nil, apperror.NewConflictError("Invoice can no longer be modified")
	}
	return invoice, nil
}

func (s *InvoiceService) computeTotals(ctx context.Context, invoice *entity.Invoice, discount int64) (billing.Totals, error) {
	items, err := s.invoiceRepo.ListLineItems(ctx, invoice.ID)
	if err != nil {
		return billing.Totals{}, err
	}
	tiers, err := s.tierRepo.ListActive(ctx, invoice.CompanyID)
	if err != nil {
		return billing.Totals{}, err
	}
	company, err := s.companyRepo.GetByID(ctx, invoice.CompanyID)
	if err != nil {
		return billing.Totals{}, err
	}
	taxRate := s.defaultTaxRate
	if company != nil {
		taxRate = company.EffectiveTaxRate(s.defaultTaxRate)
	}
	return billing.CalculateTotals(items, tiers, discount, taxRate)
}

func (s *InvoiceService) recalculateAndSave(ctx context.Context, invoiceID uuid.UUID) error {
	return retryOnConflict(func() error {
		invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		totals, err := s.computeTotals(ctx, invoice, invoice.DiscountAmount)
		if err != nil {
			return err
		}
		billing.ApplyTotals(invoice, totals)
		applyPaymentStatus(invoice)
		return s.invoiceRepo.UpdateGuarded(ctx, invoice)
	})
}

// applyPaymentStatus derives the payment status from the paid total.
func applyPaymentStatus(inv *entity.Invoice) {
	switch {
	case inv.PaidTotal <= 0:
		inv.PaymentStatus = enum.PaymentStatusUnpaid
	case inv.PaidTotal < inv.TotalAmount:
		inv.PaymentStatus = enum.PaymentStatusPartial
	default:
		inv.PaymentStatus = enum.PaymentStatusPaid
	}
}
