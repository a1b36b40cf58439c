package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/printflow/printflow-api/internal/application/service"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/request"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/response"
)

// PricingHandler handles weight tier configuration and quoting requests
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

func tierInputFromRequest(req *request.TierRequest) *service.TierInput {
	return &service.TierInput{
		Name:        req.Name,
		MinWeightKg: req.MinWeightKg,
		MaxWeightKg: req.MaxWeightKg,
		BasePrice:   req.BasePrice,
		PricePerKg:  req.PricePerKg,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
}

// ListTiers handles listing the company's weight tiers
func (h *PricingHandler) ListTiers(c *gin.Context) {
	tiers, err := h.pricingService.ListTiers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Pricing tiers retrieved successfully", tiers)
}

// CreateTier handles creating a weight tier
func (h *PricingHandler) CreateTier(c *gin.Context) {
	var req request.TierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tier, err := h.pricingService.CreateTier(c.Request.Context(), tierInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Pricing tier created successfully", tier)
}

// UpdateTier handles updating a weight tier
func (h *PricingHandler) UpdateTier(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid tier ID")
		return
	}

	var req request.TierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tier, err := h.pricingService.UpdateTier(c.Request.Context(), *id, tierInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Pricing tier updated successfully", tier)
}

// DeleteTier handles deleting a weight tier
func (h *PricingHandler) DeleteTier(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid tier ID")
		return
	}

	if err := h.pricingService.DeleteTier(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Quote handles pricing a weight through the tier table
func (h *PricingHandler) Quote(c *gin.Context) {
	weight, err := strconv.ParseFloat(c.Query("weight_kg"), 64)
	if err != nil {
		response.BadRequest(c, "weight_kg query parameter is required")
		return
	}

	quote, err := h.pricingService.QuoteWeight(c.Request.Context(), weight)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Weight quoted successfully", quote)
}
