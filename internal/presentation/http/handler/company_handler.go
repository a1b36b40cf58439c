package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printflow/printflow-api/internal/application/service"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/response"
)

// CompanyHandler handles company and branch HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Get handles retrieving the caller's company
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company retrieved successfully", company)
}

// Update handles updating the caller's company settings
func (h *CompanyHandler) Update(c *gin.Context) {
	var req struct {
		Name     string   `json:"name"`
		Email    *string  `json:"email"`
		Phone    *string  `json:"phone"`
		Address  *string  `json:"address"`
		Currency string   `json:"currency"`
		TaxRate  *float64 `json:"tax_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), &service.CompanyInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Currency: req.Currency,
		TaxRate:  req.TaxRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company updated successfully", company)
}

// CreateBranch handles creating a branch
func (h *CompanyHandler) CreateBranch(c *gin.Context) {
	var req struct {
		Name    string  `json:"name" binding:"required"`
		Code    string  `json:"code" binding:"required,max=20"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.companyService.CreateBranch(c.Request.Context(), &service.BranchInput{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Branch created successfully", branch)
}

// ListBranches handles listing the caller's branches
func (h *CompanyHandler) ListBranches(c *gin.Context) {
	branches, err := h.companyService.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Branches retrieved successfully", branches)
}

// UpdateBranch handles updating a branch
func (h *CompanyHandler) UpdateBranch(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	var req struct {
		Name    string  `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.companyService.UpdateBranch(c.Request.Context(), *id, &service.BranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Branch updated successfully", branch)
}

// DeleteBranch handles deleting a branch
func (h *CompanyHandler) DeleteBranch(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.companyService.DeleteBranch(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
