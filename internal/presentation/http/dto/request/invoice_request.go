package request

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceLineRequest represents one line on a create/add line request
type InvoiceLineRequest struct {
	ProductID      uuid.UUID              `json:"product_id" binding:"required"`
	Quantity       int                    `json:"quantity" binding:"required,gt=0"`
	UnitPrice      *float64               `json:"unit_price" binding:"omitempty,gte=0"`
	Description    string                 `json:"description" binding:"omitempty,max=500"`
	Specifications map[string]interface{} `json:"specifications"`
}

// CreateInvoiceRequest represents the create invoice request body
type CreateInvoiceRequest struct {
	BranchID       uuid.UUID            `json:"branch_id" binding:"required"`
	CustomerID     *uuid.UUID           `json:"customer_id"`
	DiscountAmount float64              `json:"discount_amount" binding:"omitempty,gte=0"`
	Items          []InvoiceLineRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateLineItemRequest represents the update line item request body
type UpdateLineItemRequest struct {
	Quantity       *int                   `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice      *float64               `json:"unit_price" binding:"omitempty,gte=0"`
	Description    *string                `json:"description" binding:"omitempty,max=500"`
	Specifications map[string]interface{} `json:"specifications"`
}

// SetDiscountRequest represents the set discount request body
type SetDiscountRequest struct {
	DiscountAmount float64 `json:"discount_amount" binding:"gte=0"`
}

// UpdateInvoiceStatusRequest represents the status change request body
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

// RecordPaymentRequest represents the record payment request body
type RecordPaymentRequest struct {
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Method    string     `json:"method" binding:"required,max=50"`
	Reference *string    `json:"reference" binding:"omitempty,max=100"`
	Note      *string    `json:"note"`
	PaidAt    *time.Time `json:"paid_at"`
}
