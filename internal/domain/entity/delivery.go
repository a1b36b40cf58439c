package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Delivery represents the shipment of a finished invoice to the customer
type Delivery struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	Contact   *string   `gorm:"size:100" json:"contact,omitempty"`

	Status        enum.DeliveryStatus `gorm:"default:0" json:"status"`
	DispatchedAt  *time.Time          `json:"dispatched_at,omitempty"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
	FailureReason *string             `gorm:"type:text" json:"failure_reason,omitempty"`

	// Metadata holds courier details, tracking codes and similar extras.
	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new delivery
func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Delivery model
func (Delivery) TableName() string {
	return "deliveries"
}
