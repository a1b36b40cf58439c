// Package billing holds the pure invoice computations: line item pricing,
// invoice totals and invoice number sequencing. Persistence and triggers
// live in the invoice service; nothing here touches the database.
package billing

import (
	"fmt"
	"math"

	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/pkg/apperror"
)

// LineInput carries the values a single line is computed from.
type LineInput struct {
	Quantity      int
	UnitPrice     int64 // cents
	UnitWeightKg  float64
	TaxRatePct    float64 // product tax percentage, e.g. 16
}

// LineResult is the computed state of one invoice line.
type LineResult struct {
	LineTotal    int64 // cents
	LineWeightKg float64
	TaxAmount    int64 // cents
}

// ComputeLine derives a line's total, weight and tax. Inputs are assumed
// validated; see ValidateLine.
func ComputeLine(in LineInput) LineResult {
	lineTotal := int64(in.Quantity) * in.UnitPrice
	lineWeight := float64(in.Quantity) * in.UnitWeightKg

	var tax int64
	if in.TaxRatePct > 0 {
		tax = int64(math.Round(float64(lineTotal) * in.TaxRatePct / 100))
	}

	return LineResult{
		LineTotal:    lineTotal,
		LineWeightKg: lineWeight,
		TaxAmount:    tax,
	}
}

// NormalizeWeight converts a captured weight to kilograms. Unknown units
// pass through unchanged (treated as kg). Applied once, at line creation.
func NormalizeWeight(value float64, unit string) float64 {
	switch unit {
	case "grams", "g":
		return value / 1000
	case "lb":
		return value * 0.453592
	case "oz":
		return value * 0.0283495
	default: // kg or unknown
		return value
	}
}

// ValidateLine checks a line against its product's constraints. Returns a
// ValidationError naming every violated field, or nil.
func ValidateLine(in LineInput, product *entity.Product) error {
	var fields []apperror.FieldError

	if in.Quantity <= 0 {
		fields = append(fields, apperror.FieldError{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	}
	if product != nil && in.Quantity > 0 {
		if product.MinimumQuantity > 0 && in.Quantity < product.MinimumQuantity {
			fields = append(fields, apperror.FieldError{
				Field:   "quantity",
				Message: fmt.Sprintf("quantity is below the product minimum of %d", product.MinimumQuantity),
			})
		}
		if product.MaximumQuantity > 0 && in.Quantity > product.MaximumQuantity {
			fields = append(fields, apperror.FieldError{
				Field:   "quantity",
				Message: fmt.Sprintf("quantity exceeds the product maximum of %d", product.MaximumQuantity),
			})
		}
	}
	if in.UnitPrice < 0 {
		fields = append(fields, apperror.FieldError{
			Field:   "unit_price",
			Message: "unit price cannot be negative",
		})
	}
	if in.UnitWeightKg < 0 {
		fields = append(fields, apperror.FieldError{
			Field:   "unit_weight",
			Message: "unit weight cannot be negative",
		})
	}

	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}
