package billing

import (
	"math"

	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/pricing"
	"github.com/printflow/printflow-api/pkg/apperror"
)

// DefaultTaxRate applies when a company has no tax rate configured.
const DefaultTaxRate = 0.12

// Totals is the computed state of an invoice. The caller decides when to
// persist it; computing never writes, so recomputation cannot feed back
// into itself.
type Totals struct {
	Subtotal       int64   `json:"subtotal"`
	TotalWeightKg  float64 `json:"total_weight_kg"`
	WeightCharge   int64   `json:"weight_charge"`
	WeightTier     string  `json:"weight_tier"`
	DiscountAmount int64   `json:"discount_amount"`
	TaxAmount      int64   `json:"tax_amount"`
	TotalAmount    int64   `json:"total_amount"`
}

// CalculateTotals aggregates line items, prices the cumulative weight
// through the tier table and applies discount and company tax:
//
//	taxable = subtotal + weightCharge - discount
//	tax     = taxable * taxRate
//	total   = subtotal + weightCharge + tax - discount
//
// A discount exceeding subtotal + weightCharge is rejected as a
// ValidationError rather than producing a negative total.
func CalculateTotals(lines []entity.InvoiceLineItem, tiers []entity.WeightPricingTier, discount int64, taxRate float64) (Totals, error) {
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}

	var subtotal int64
	var totalWeight float64
	for i := range lines {
		subtotal += lines[i].LineTotal
		totalWeight += lines[i].LineWeightKg
	}

	quote := pricing.PriceForWeight(tiers, totalWeight)

	taxable := subtotal + quote.TotalPrice - discount
	if taxable < 0 {
		return Totals{}, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "discount_amount",
			Message: "discount exceeds the invoice value",
		}})
	}

	tax := int64(math.Round(float64(taxable) * taxRate))

	return Totals{
		Subtotal:       subtotal,
		TotalWeightKg:  totalWeight,
		WeightCharge:   quote.TotalPrice,
		WeightTier:     quote.TierName,
		DiscountAmount: discount,
		TaxAmount:      tax,
		TotalAmount:    subtotal + quote.TotalPrice + tax - discount,
	}, nil
}

// ApplyTotals copies computed totals onto an invoice.
func ApplyTotals(inv *entity.Invoice, t Totals) {
	inv.Subtotal = t.Subtotal
	inv.TotalWeightKg = t.TotalWeightKg
	inv.WeightCharge = t.WeightCharge
	inv.DiscountAmount = t.DiscountAmount
	inv.TaxAmount = t.TaxAmount
	inv.TotalAmount = t.TotalAmount
}
