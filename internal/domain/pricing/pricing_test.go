package pricing

import (
	"testing"

	"github.com/printflow/printflow-api/internal/domain/entity"
)

func fptr(f float64) *float64 { return &f }

func TestPriceForWeight_DefaultLadder(t *testing.T) {
	cases := []struct {
		name     string
		weightKg float64
		tier     string
		total    int64
	}{
		{"zero weight is light", 0, "light", 20000},
		{"half kilo", 0.5, "light", 20000},
		{"exactly one kilo", 1, "light", 20000},
		{"two kilos", 2, "small", 30000},
		{"exactly three kilos", 3, "small", 30000},
		{"four kilos", 4, "medium", 40000},
		{"seven kilos", 7, "large", 60000},  // 500 + 2*50
		{"ten kilos", 10, "large", 75000},   // 500 + 5*50
		{"twelve kilos", 12, "bulk", 90000}, // 750 + 2*75
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := PriceForWeight(nil, tc.weightKg)
			if q.TierName != tc.tier {
				t.Errorf("tier = %q, want %q", q.TierName, tc.tier)
			}
			if q.TotalPrice != tc.total {
				t.Errorf("total = %d, want %d", q.TotalPrice, tc.total)
			}
		})
	}
}

func TestPriceForWeight_CompanyTiers(t *testing.T) {
	tiers := []entity.WeightPricingTier{
		{TierName: "flyers", MinWeightKg: 0, MaxWeightKg: fptr(2), BasePrice: 15000, PricePerKg: 0, IsActive: true},
		{TierName: "posters", MinWeightKg: 2, MaxWeightKg: fptr(8), BasePrice: 25000, PricePerKg: 2000, IsActive: true},
		{TierName: "banners", MinWeightKg: 8, BasePrice: 40000, PricePerKg: 3000, IsActive: true},
	}

	q := PriceForWeight(tiers, 1)
	if q.TierName != "flyers" || q.TotalPrice != 15000 {
		t.Errorf("1kg: got %q/%d, want flyers/15000", q.TierName, q.TotalPrice)
	}

	// 5kg lands in posters: 250 + 3*20 = 310
	q = PriceForWeight(tiers, 5)
	if q.TierName != "posters" || q.TotalPrice != 31000 {
		t.Errorf("5kg: got %q/%d, want posters/31000", q.TierName, q.TotalPrice)
	}

	// open-ended top tier: 400 + 4*30 = 520
	q = PriceForWeight(tiers, 12)
	if q.TierName != "banners" || q.TotalPrice != 52000 {
		t.Errorf("12kg: got %q/%d, want banners/52000", q.TierName, q.TotalPrice)
	}
}

func TestResolveTier_OverlapPicksHighestLowerBound(t *testing.T) {
	tiers := []entity.WeightPricingTier{
		{TierName: "wide", MinWeightKg: 0, MaxWeightKg: fptr(10), BasePrice: 10000, IsActive: true},
		{TierName: "narrow", MinWeightKg: 4, MaxWeightKg: fptr(6), BasePrice: 20000, IsActive: true},
	}

	got := ResolveTier(tiers, 5)
	if got == nil || got.TierName != "narrow" {
		t.Fatalf("ResolveTier(5) = %v, want narrow", got)
	}

	got = ResolveTier(tiers, 2)
	if got == nil || got.TierName != "wide" {
		t.Fatalf("ResolveTier(2) = %v, want wide", got)
	}
}

func TestResolveTier_IgnoresInactive(t *testing.T) {
	tiers := []entity.WeightPricingTier{
		{TierName: "retired", MinWeightKg: 0, BasePrice: 5000, IsActive: false},
	}
	if got := ResolveTier(tiers, 1); got != nil {
		t.Fatalf("ResolveTier = %v, want nil", got)
	}
}

// Within a single tier's range the charge never decreases as weight grows.
func TestPriceForWeight_MonotonicWithinTier(t *testing.T) {
	tiers := []entity.WeightPricingTier{
		{TierName: "all", MinWeightKg: 0, BasePrice: 10000, PricePerKg: 1500, IsActive: true},
	}

	prev := int64(-1)
	for w := 0.0; w <= 20; w += 0.25 {
		q := PriceForWeight(tiers, w)
		if q.TotalPrice < prev {
			t.Fatalf("price decreased at %.2fkg: %d < %d", w, q.TotalPrice, prev)
		}
		prev = q.TotalPrice
	}
}

func TestPriceForWeight_NegativeWeightClampedToZero(t *testing.T) {
	q := PriceForWeight(nil, -2)
	if q.TierName != "light" || q.TotalPrice != 20000 {
		t.Errorf("got %q/%d, want light/20000", q.TierName, q.TotalPrice)
	}
}
