package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a print-shop organization. It is the tenant root: all
// customer, product, invoice and production data is scoped to a company.
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Currency  string         `gorm:"size:10;default:'KES'" json:"currency"`
	// TaxRate is the company-wide fraction applied to invoice totals,
	// e.g. 0.12. Zero means "not configured" and the billing default applies.
	TaxRate   float64        `gorm:"type:decimal(6,4);default:0" json:"tax_rate"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branches     []Branch            `gorm:"foreignKey:CompanyID" json:"branches,omitempty"`
	PricingTiers []WeightPricingTier `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// EffectiveTaxRate returns the configured tax rate, or fallback when the
// company has none configured.
func (c *Company) EffectiveTaxRate(fallback float64) float64 {
	if c.TaxRate > 0 {
		return c.TaxRate
	}
	return fallback
}

// Branch represents a company's physical location. Invoice numbers are
// sequenced per branch using the branch code as prefix.
type Branch struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index:idx_branches_company_code,unique" json:"company_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:20;not null;index:idx_branches_company_code,unique" json:"code"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company  Company   `gorm:"foreignKey:CompanyID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:BranchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new branch
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
