package billing

import (
	"testing"

	"github.com/printflow/printflow-api/internal/domain/entity"
)

func TestCalculateTotals(t *testing.T) {
	// subtotal 1000.00, discount 50.00, company tax 12%. Weight totals 7kg
	// so the default ladder charges 500 + 2*50 = 600... the scenario wants
	// a 300.00 weight charge, so configure a flat tier for it.
	tiers := []entity.WeightPricingTier{
		{TierName: "flat", MinWeightKg: 0, BasePrice: 30000, IsActive: true},
	}
	lines := []entity.InvoiceLineItem{
		{LineTotal: 60000, LineWeightKg: 4},
		{LineTotal: 40000, LineWeightKg: 3},
	}

	totals, err := CalculateTotals(lines, tiers, 5000, 0.12)
	if err != nil {
		t.Fatal(err)
	}

	if totals.Subtotal != 100000 {
		t.Errorf("Subtotal = %d, want 100000", totals.Subtotal)
	}
	if totals.WeightCharge != 30000 {
		t.Errorf("WeightCharge = %d, want 30000", totals.WeightCharge)
	}
	// (1000 + 300 - 50) * 0.12 = 150.00
	if totals.TaxAmount != 15000 {
		t.Errorf("TaxAmount = %d, want 15000", totals.TaxAmount)
	}
	// 1000 + 300 + 150 - 50 = 1400.00
	if totals.TotalAmount != 140000 {
		t.Errorf("TotalAmount = %d, want 140000", totals.TotalAmount)
	}
}

func TestCalculateTotals_DefaultTaxRate(t *testing.T) {
	lines := []entity.InvoiceLineItem{{LineTotal: 100000, LineWeightKg: 0.5}}

	// rate 0 means "not configured" and falls back to 12%
	totals, err := CalculateTotals(lines, nil, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	// weight 0.5kg -> light 200.00; (1000 + 200) * 0.12 = 144.00
	if totals.WeightCharge != 20000 {
		t.Errorf("WeightCharge = %d, want 20000", totals.WeightCharge)
	}
	if totals.TaxAmount != 14400 {
		t.Errorf("TaxAmount = %d, want 14400", totals.TaxAmount)
	}
	if totals.TotalAmount != 134400 {
		t.Errorf("TotalAmount = %d, want 134400", totals.TotalAmount)
	}
}

// Recomputing with unchanged inputs must give unchanged outputs.
func TestCalculateTotals_Idempotent(t *testing.T) {
	lines := []entity.InvoiceLineItem{
		{LineTotal: 123456, LineWeightKg: 2.2},
		{LineTotal: 78900, LineWeightKg: 1.1},
	}

	first, err := CalculateTotals(lines, nil, 2500, 0.12)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CalculateTotals(lines, nil, 2500, 0.12)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("recompute changed totals: %+v vs %+v", first, second)
	}
}

func TestCalculateTotals_EmptyInvoice(t *testing.T) {
	totals, err := CalculateTotals(nil, nil, 0, 0.12)
	if err != nil {
		t.Fatal(err)
	}
	// no lines still incurs the light-tier weight charge on 0kg
	if totals.Subtotal != 0 || totals.WeightCharge != 20000 {
		t.Errorf("got subtotal=%d weightCharge=%d", totals.Subtotal, totals.WeightCharge)
	}
}

func TestCalculateTotals_ExcessiveDiscountRejected(t *testing.T) {
	lines := []entity.InvoiceLineItem{{LineTotal: 10000, LineWeightKg: 0.1}}

	_, err := CalculateTotals(lines, nil, 99999999, 0.12)
	if err == nil {
		t.Fatal("expected validation error for discount exceeding invoice value")
	}
}
