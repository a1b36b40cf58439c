package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeightPricingTier is one weight bracket in a company's shipping price
// table. Tiers are admin configuration; the pricing engine only reads them.
type WeightPricingTier struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	TierName  string    `gorm:"size:100;not null" json:"tier_name"`
	// MinWeightKg and MaxWeightKg bound the bracket. A nil MaxWeightKg means
	// the bracket is open-ended. MinWeightKg <= MaxWeightKg when both set.
	MinWeightKg float64  `gorm:"type:decimal(10,4);not null;default:0" json:"min_weight_kg"`
	MaxWeightKg *float64 `gorm:"type:decimal(10,4)" json:"max_weight_kg,omitempty"`
	BasePrice   int64    `gorm:"not null;default:0" json:"-"` // Stored in cents
	PricePerKg  int64    `gorm:"not null;default:0" json:"-"` // Stored in cents
	SortOrder   int      `gorm:"default:0" json:"sort_order"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tier
func (t *WeightPricingTier) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WeightPricingTier model
func (WeightPricingTier) TableName() string {
	return "weight_pricing_tiers"
}

// Contains reports whether weightKg falls inside this tier's bracket.
func (t *WeightPricingTier) Contains(weightKg float64) bool {
	if weightKg < t.MinWeightKg {
		return false
	}
	if t.MaxWeightKg != nil && weightKg > *t.MaxWeightKg {
		return false
	}
	return true
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t WeightPricingTier) MarshalJSON() ([]byte, error) {
	type Alias WeightPricingTier
	return json.Marshal(&struct {
		Alias
		BasePrice  float64 `json:"base_price"`
		PricePerKg float64 `json:"price_per_kg"`
	}{
		Alias:      Alias(t),
		BasePrice:  float64(t.BasePrice) / 100,
		PricePerKg: float64(t.PricePerKg) / 100,
	})
}
