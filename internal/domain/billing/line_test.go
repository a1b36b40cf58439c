package billing

import (
	"math"
	"testing"

	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/pkg/apperror"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestComputeLine(t *testing.T) {
	// 3 units at 100.00, 200g each (normalized to 0.2kg before the call)
	res := ComputeLine(LineInput{
		Quantity:     3,
		UnitPrice:    10000,
		UnitWeightKg: NormalizeWeight(200, "grams"),
	})

	if res.LineTotal != 30000 {
		t.Errorf("LineTotal = %d, want 30000", res.LineTotal)
	}
	nearlyEqual(t, "LineWeightKg", res.LineWeightKg, 0.6)
	if res.TaxAmount != 0 {
		t.Errorf("TaxAmount = %d, want 0 without a product tax rate", res.TaxAmount)
	}
}

func TestComputeLine_ProductTax(t *testing.T) {
	res := ComputeLine(LineInput{
		Quantity:   2,
		UnitPrice:  50000,
		TaxRatePct: 16,
	})

	if res.LineTotal != 100000 {
		t.Errorf("LineTotal = %d, want 100000", res.LineTotal)
	}
	if res.TaxAmount != 16000 {
		t.Errorf("TaxAmount = %d, want 16000", res.TaxAmount)
	}
}

func TestNormalizeWeight(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  float64
	}{
		{200, "grams", 0.2},
		{500, "g", 0.5},
		{1, "lb", 0.453592},
		{16, "oz", 0.453592},
		{2.5, "kg", 2.5},
		{3, "stone", 3}, // unknown units pass through as kg
	}

	for _, tc := range cases {
		nearlyEqual(t, tc.unit, NormalizeWeight(tc.value, tc.unit), tc.want)
	}
}

func TestValidateLine(t *testing.T) {
	product := &entity.Product{MinimumQuantity: 5, MaximumQuantity: 100}

	cases := []struct {
		name      string
		in        LineInput
		wantField string
	}{
		{"zero quantity", LineInput{Quantity: 0, UnitPrice: 100}, "quantity"},
		{"below minimum", LineInput{Quantity: 2, UnitPrice: 100}, "quantity"},
		{"above maximum", LineInput{Quantity: 500, UnitPrice: 100}, "quantity"},
		{"negative price", LineInput{Quantity: 10, UnitPrice: -1}, "unit_price"},
		{"negative weight", LineInput{Quantity: 10, UnitPrice: 100, UnitWeightKg: -0.5}, "unit_weight"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLine(tc.in, product)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			appErr := apperror.GetAppError(err)
			found := false
			for _, fe := range appErr.Errors {
				if fe.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no field error for %q in %+v", tc.wantField, appErr.Errors)
			}
		})
	}

	if err := ValidateLine(LineInput{Quantity: 10, UnitPrice: 100, UnitWeightKg: 0.2}, product); err != nil {
		t.Errorf("valid line rejected: %v", err)
	}
}

func TestValidateLine_NoProductBounds(t *testing.T) {
	// products without configured bounds only enforce quantity > 0
	if err := ValidateLine(LineInput{Quantity: 1, UnitPrice: 0}, &entity.Product{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
