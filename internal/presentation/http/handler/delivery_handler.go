package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/application/service"
	"github.com/printflow/printflow-api/internal/domain/repository"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/response"
	"github.com/printflow/printflow-api/pkg/pagination"
)

// DeliveryHandler handles delivery tracking HTTP requests
type DeliveryHandler struct {
	deliveryService *service.DeliveryService
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// List handles listing deliveries
func (h *DeliveryHandler) List(c *gin.Context) {
	params := &repository.DeliveryFilterParams{
		Pagination: paginationFromQuery(c),
	}
	if v := c.Query("invoice_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			params.InvoiceID = &id
		}
	}

	deliveries, total, err := h.deliveryService.ListDeliveries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(deliveries,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Deliveries retrieved successfully", result)
}

// Create handles creating a delivery for a confirmed invoice
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req struct {
		InvoiceID uuid.UUID              `json:"invoice_id" binding:"required"`
		Address   string                 `json:"address" binding:"required"`
		Contact   *string                `json:"contact"`
		Metadata  map[string]interface{} `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	delivery, err := h.deliveryService.CreateDelivery(c.Request.Context(), &service.CreateDeliveryInput{
		InvoiceID: req.InvoiceID,
		Address:   req.Address,
		Contact:   req.Contact,
		Metadata:  req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Delivery created successfully", delivery)
}

// Get handles retrieving a delivery
func (h *DeliveryHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid delivery ID")
		return
	}

	delivery, err := h.deliveryService.GetDelivery(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery retrieved successfully", delivery)
}

// Dispatch handles marking a delivery as dispatched
func (h *DeliveryHandler) Dispatch(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid delivery ID")
		return
	}

	delivery, err := h.deliveryService.Dispatch(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery dispatched successfully", delivery)
}

// MarkDelivered handles marking a delivery as received
func (h *DeliveryHandler) MarkDelivered(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid delivery ID")
		return
	}

	delivery, err := h.deliveryService.MarkDelivered(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery marked as delivered", delivery)
}

// MarkFailed handles recording a failed delivery attempt
func (h *DeliveryHandler) MarkFailed(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	delivery, err := h.deliveryService.MarkFailed(c.Request.Context(), *id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery marked as failed", delivery)
}
