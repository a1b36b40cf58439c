package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice represents a sales invoice. All monetary totals are derived from
// the line items by the billing calculator; they are never entered directly.
type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	BranchID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_invoices_branch_number,unique" json:"branch_id"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceNumber string     `gorm:"size:100;not null;index:idx_invoices_branch_number,unique" json:"invoice_number"`

	Subtotal       int64   `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	WeightCharge   int64   `gorm:"default:0" json:"-"`
	TaxAmount      int64   `gorm:"default:0" json:"-"`
	DiscountAmount int64   `gorm:"default:0" json:"-"`
	TotalAmount    int64   `gorm:"default:0" json:"-"`
	PaidTotal      int64   `gorm:"default:0" json:"-"`
	TotalWeightKg  float64 `gorm:"type:decimal(10,4);default:0" json:"total_weight_kg"`

	Status        enum.InvoiceStatus `gorm:"default:0" json:"status"`
	PaymentStatus enum.PaymentStatus `gorm:"default:0" json:"payment_status"`

	// Version guards concurrent invoice mutations (optimistic locking).
	Version int `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company  Company           `gorm:"foreignKey:CompanyID" json:"-"`
	Branch   Branch            `gorm:"foreignKey:BranchID" json:"-"`
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []Payment         `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// CanBeModified reports whether line items or the discount may change.
// Editing is allowed only while the invoice is draft or pending and no
// payment has been recorded against it.
func (i *Invoice) CanBeModified(paymentCount int64) bool {
	if paymentCount > 0 {
		return false
	}
	return i.Status == enum.InvoiceStatusDraft || i.Status == enum.InvoiceStatusPending
}

// CanBeDeleted reports whether the invoice may be deleted. Only unpaid
// drafts qualify.
func (i *Invoice) CanBeDeleted(paymentCount int64) bool {
	return i.Status == enum.InvoiceStatusDraft && paymentCount == 0
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Subtotal       float64 `json:"subtotal"`
		WeightCharge   float64 `json:"weight_charge"`
		TaxAmount      float64 `json:"tax_amount"`
		DiscountAmount float64 `json:"discount_amount"`
		TotalAmount    float64 `json:"total_amount"`
		PaidTotal      float64 `json:"paid_total"`
	}{
		Alias:          Alias(i),
		Subtotal:       float64(i.Subtotal) / 100,
		WeightCharge:   float64(i.WeightCharge) / 100,
		TaxAmount:      float64(i.TaxAmount) / 100,
		DiscountAmount: float64(i.DiscountAmount) / 100,
		TotalAmount:    float64(i.TotalAmount) / 100,
		PaidTotal:      float64(i.PaidTotal) / 100,
	})
}

// InvoiceLineItem represents one product entry on an invoice. LineTotal,
// LineWeightKg and TaxAmount are computed by the billing calculator.
type InvoiceLineItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Description string    `gorm:"size:500" json:"description"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"-"` // Stored in cents
	// UnitWeightKg is normalized to kg once, at line creation.
	UnitWeightKg float64 `gorm:"type:decimal(10,4);default:0" json:"unit_weight_kg"`
	LineTotal    int64   `gorm:"not null;default:0" json:"-"`
	LineWeightKg float64 `gorm:"type:decimal(10,4);default:0" json:"line_weight_kg"`
	TaxAmount    int64   `gorm:"not null;default:0" json:"-"`
	// Specifications holds free-form print options (paper, finish, colors).
	Specifications datatypes.JSONMap `gorm:"type:jsonb" json:"specifications,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new line item
func (li *InvoiceLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLineItem model
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (li InvoiceLineItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceLineItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
		TaxAmount float64 `json:"tax_amount"`
	}{
		Alias:     Alias(li),
		UnitPrice: float64(li.UnitPrice) / 100,
		LineTotal: float64(li.LineTotal) / 100,
		TaxAmount: float64(li.TaxAmount) / 100,
	})
}

// Payment represents money received against an invoice
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount     int64     `gorm:"not null" json:"-"` // Stored in cents
	Method     string    `gorm:"size:50" json:"method"`
	Reference  *string   `gorm:"size:100" json:"reference,omitempty"`
	Note       *string   `gorm:"type:text" json:"note,omitempty"`
	RecordedBy uuid.UUID `gorm:"type:uuid" json:"recorded_by"`
	PaidAt     time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}
