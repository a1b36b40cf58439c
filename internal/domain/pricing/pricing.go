// Package pricing resolves a shipment weight to a monetary charge using a
// company's configured tier table, falling back to a built-in ladder when
// the company has no tiers. It is pure computation; callers fetch tiers.
package pricing

import (
	"math"

	"github.com/printflow/printflow-api/internal/domain/entity"
)

// Quote is the priced result for a weight.
type Quote struct {
	TierName        string  `json:"tier_name"`
	WeightKg        float64 `json:"weight_kg"`
	BasePrice       int64   `json:"base_price"`       // cents
	AdditionalPrice int64   `json:"additional_price"` // cents
	TotalPrice      int64   `json:"total_price"`      // cents
}

// Built-in ladder, used when a company has no tiers configured. Prices in
// cents.
const (
	defaultLightPrice  = 20000 // <= 1 kg
	defaultSmallPrice  = 30000 // <= 3 kg
	defaultMediumPrice = 40000 // <= 5 kg
	defaultLargeBase   = 50000 // <= 10 kg, plus 50/kg above 5
	defaultLargeRate   = 5000
	defaultBulkBase    = 75000 // > 10 kg, plus 75/kg above 10
	defaultBulkRate    = 7500
)

// ResolveTier picks the applicable tier for weightKg: among tiers whose
// bracket contains the weight, the one with the largest MinWeightKg wins.
// Overlapping brackets are an admin misconfiguration; the highest lower
// bound is the defined tie-break. Returns nil when nothing matches.
func ResolveTier(tiers []entity.WeightPricingTier, weightKg float64) *entity.WeightPricingTier {
	var best *entity.WeightPricingTier
	for i := range tiers {
		t := &tiers[i]
		if !t.IsActive || !t.Contains(weightKg) {
			continue
		}
		if best == nil || t.MinWeightKg > best.MinWeightKg {
			best = t
		}
	}
	return best
}

// PriceForWeight prices weightKg against the given tier table. A matched
// tier charges base plus the per-kg rate on the weight above the tier's
// lower bound. With no matching tier the built-in ladder applies. Never
// fails; every weight gets a price.
func PriceForWeight(tiers []entity.WeightPricingTier, weightKg float64) Quote {
	if weightKg < 0 {
		weightKg = 0
	}

	if tier := ResolveTier(tiers, weightKg); tier != nil {
		additional := int64(math.Round((weightKg - tier.MinWeightKg) * float64(tier.PricePerKg)))
		if additional < 0 {
			additional = 0
		}
		return Quote{
			TierName:        tier.TierName,
			WeightKg:        weightKg,
			BasePrice:       tier.BasePrice,
			AdditionalPrice: additional,
			TotalPrice:      tier.BasePrice + additional,
		}
	}

	return defaultQuote(weightKg)
}

func defaultQuote(weightKg float64) Quote {
	q := Quote{WeightKg: weightKg}
	switch {
	case weightKg <= 1:
		q.TierName = "light"
		q.BasePrice = defaultLightPrice
	case weightKg <= 3:
		q.TierName = "small"
		q.BasePrice = defaultSmallPrice
	case weightKg <= 5:
		q.TierName = "medium"
		q.BasePrice = defaultMediumPrice
	case weightKg <= 10:
		q.TierName = "large"
		q.BasePrice = defaultLargeBase
		q.AdditionalPrice = int64(math.Round((weightKg - 5) * defaultLargeRate))
	default:
		q.TierName = "bulk"
		q.BasePrice = defaultBulkBase
		q.AdditionalPrice = int64(math.Round((weightKg - 10) * defaultBulkRate))
	}
	q.TotalPrice = q.BasePrice + q.AdditionalPrice
	return q
}
