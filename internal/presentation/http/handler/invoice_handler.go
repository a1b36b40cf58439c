package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/application/service"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"github.com/printflow/printflow-api/internal/domain/repository"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/request"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/response"
	"github.com/printflow/printflow-api/pkg/pagination"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func lineInputFromRequest(req *request.InvoiceLineRequest) service.InvoiceLineInput {
	return service.InvoiceLineInput{
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		Description:    req.Description,
		Specifications: req.Specifications,
	}
}

// List handles listing invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}
	if v := c.Query("status"); v != "" {
		if status, ok := parseInvoiceStatus(v); ok {
			params.Status = &status
		}
	}
	if v := c.Query("payment_status"); v != "" {
		if status, ok := parsePaymentStatus(v); ok {
			params.PaymentStatus = &status
		}
	}
	if v := c.Query("customer_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			params.CustomerID = &id
		}
	}
	if v := c.Query("branch_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			params.BranchID = &id
		}
	}
	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.StartDate = &t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.EndDate = &t
		}
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(invoices,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateInvoiceInput{
		BranchID:       req.BranchID,
		CustomerID:     req.CustomerID,
		DiscountAmount: req.DiscountAmount,
	}
	for i := range req.Items {
		input.Items = append(input.Items, lineInputFromRequest(&req.Items[i]))
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving an invoice with items and payments
func (h *InvoiceHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// AddLineItem handles appending a line item
func (h *InvoiceHandler) AddLineItem(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.InvoiceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := lineInputFromRequest(&req)
	invoice, err := h.invoiceService.AddLineItem(c.Request.Context(), *id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line item added successfully", invoice)
}

// UpdateLineItem handles editing a line item
func (h *InvoiceHandler) UpdateLineItem(c *gin.Context) {
	id := parseIDParam(c, "id")
	itemID := parseIDParam(c, "itemId")
	if id == nil || itemID == nil {
		response.BadRequest(c, "Invalid invoice or line item ID")
		return
	}

	var req request.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateLineItem(c.Request.Context(), *id, *itemID, &service.UpdateLineItemInput{
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		Description:    req.Description,
		Specifications: req.Specifications,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line item updated successfully", invoice)
}

// RemoveLineItem handles deleting a line item
func (h *InvoiceHandler) RemoveLineItem(c *gin.Context) {
	id := parseIDParam(c, "id")
	itemID := parseIDParam(c, "itemId")
	if id == nil || itemID == nil {
		response.BadRequest(c, "Invalid invoice or line item ID")
		return
	}

	invoice, err := h.invoiceService.RemoveLineItem(c.Request.Context(), *id, *itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line item removed successfully", invoice)
}

// SetDiscount handles updating the invoice discount
func (h *InvoiceHandler) SetDiscount(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.SetDiscount(c.Request.Context(), *id, req.DiscountAmount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount updated successfully", invoice)
}

// Recalculate handles recomputing invoice totals from current line items
func (h *InvoiceHandler) Recalculate(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Recalculate(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice recalculated successfully", invoice)
}

func parseInvoiceStatus(s string) (enum.InvoiceStatus, bool) {
	switch s {
	case "draft", "Draft":
		return enum.InvoiceStatusDraft, true
	case "pending", "Pending":
		return enum.InvoiceStatusPending, true
	case "confirmed", "Confirmed":
		return enum.InvoiceStatusConfirmed, true
	case "cancelled", "Cancelled":
		return enum.InvoiceStatusCancelled, true
	}
	return enum.InvoiceStatusDraft, false
}

func parsePaymentStatus(s string) (enum.PaymentStatus, bool) {
	switch s {
	case "unpaid", "Unpaid":
		return enum.PaymentStatusUnpaid, true
	case "partial", "Partial":
		return enum.PaymentStatusPartial, true
	case "paid", "Paid":
		return enum.PaymentStatusPaid, true
	}
	return enum.PaymentStatusUnpaid, false
}

// UpdateStatus handles invoice status transitions
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	status, ok := parseInvoiceStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Unknown invoice status")
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), *id, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice status updated successfully", invoice)
}

// RecordPayment handles registering a payment against an invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), *id, &service.RecordPaymentInput{
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		Note:       req.Note,
		PaidAt:     req.PaidAt,
		RecordedBy: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment recorded successfully", invoice)
}

// Delete handles deleting an unpaid draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
