package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a printable product in the catalog
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"size:255;unique;not null" json:"slug"`
	Code      string    `gorm:"size:100;unique;not null" json:"code"`
	BasePrice int64     `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	// TaxRate is the product-level tax percentage applied per line item,
	// e.g. 16 for 16%. Zero means the line carries no product tax.
	TaxRate float64 `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	// UnitWeightKg is the catalog weight of one unit, always stored in kg.
	UnitWeightKg float64 `gorm:"type:decimal(10,4);default:0" json:"unit_weight_kg"`
	// WeightUnit is the unit the weight was originally captured in
	// (kg, g, grams, lb, oz). Normalization to kg happens once at capture.
	WeightUnit      string         `gorm:"size:10;default:'kg'" json:"weight_unit"`
	MinimumQuantity int            `gorm:"default:0" json:"minimum_quantity"`
	MaximumQuantity int            `gorm:"default:0" json:"maximum_quantity"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetBasePriceDecimal returns the base price as a decimal (for display)
func (p *Product) GetBasePriceDecimal() float64 {
	return float64(p.BasePrice) / 100
}

// SetBasePriceFromDecimal sets the base price from a decimal value
func (p *Product) SetBasePriceFromDecimal(price float64) {
	p.BasePrice = int64(price * 100)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		BasePrice float64 `json:"base_price"`
	}{
		Alias:     Alias(p),
		BasePrice: p.GetBasePriceDecimal(),
	})
}
