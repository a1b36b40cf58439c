package request

// TierRequest represents the create/update weight tier request body
type TierRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	MinWeightKg float64  `json:"min_weight_kg" binding:"gte=0"`
	MaxWeightKg *float64 `json:"max_weight_kg" binding:"omitempty,gt=0"`
	BasePrice   float64  `json:"base_price" binding:"gte=0"`
	PricePerKg  float64  `json:"price_per_kg" binding:"gte=0"`
	SortOrder   int      `json:"sort_order"`
	IsActive    *bool    `json:"is_active"`
}
