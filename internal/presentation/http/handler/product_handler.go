package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printflow/printflow-api/internal/application/service"
	"github.com/printflow/printflow-api/internal/domain/repository"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/response"
	"github.com/printflow/printflow-api/pkg/pagination"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type productRequest struct {
	Name            string   `json:"name" binding:"required,max=255"`
	Slug            string   `json:"slug" binding:"omitempty,max=255"`
	Code            string   `json:"code" binding:"required,max=100"`
	BasePrice       float64  `json:"base_price" binding:"gte=0"`
	TaxRate         float64  `json:"tax_rate" binding:"gte=0,lte=100"`
	UnitWeight      float64  `json:"unit_weight" binding:"gte=0"`
	WeightUnit      string   `json:"weight_unit" binding:"omitempty,oneof=kg g grams lb oz"`
	MinimumQuantity int      `json:"minimum_quantity" binding:"gte=0"`
	MaximumQuantity int      `json:"maximum_quantity" binding:"gte=0"`
	Description     *string  `json:"description"`
	IsActive        *bool    `json:"is_active"`
}

func (r *productRequest) toInput() *service.ProductInput {
	return &service.ProductInput{
		Name:            r.Name,
		Slug:            r.Slug,
		Code:            r.Code,
		BasePrice:       r.BasePrice,
		TaxRate:         r.TaxRate,
		UnitWeight:      r.UnitWeight,
		WeightUnit:      r.WeightUnit,
		MinimumQuantity: r.MinimumQuantity,
		MaximumQuantity: r.MaximumQuantity,
		Description:     r.Description,
		IsActive:        r.IsActive,
	}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active") == "true",
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// Get handles retrieving a product
func (h *ProductHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), *id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
