package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/application/service"
	"github.com/printflow/printflow-api/internal/domain/repository"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/request"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/response"
	"github.com/printflow/printflow-api/pkg/pagination"
)

// ProductionHandler handles print job and stage workflow HTTP requests
type ProductionHandler struct {
	productionService *service.ProductionService
}

// NewProductionHandler creates a new production handler
func NewProductionHandler(productionService *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// List handles listing print jobs
func (h *ProductionHandler) List(c *gin.Context) {
	params := &repository.PrintJobFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}
	if v := c.Query("customer_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			params.CustomerID = &id
		}
	}
	if v := c.Query("invoice_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			params.InvoiceID = &id
		}
	}

	jobs, total, err := h.productionService.ListJobs(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(jobs,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Print jobs retrieved successfully", result)
}

// Create handles creating a print job with its stages
func (h *ProductionHandler) Create(c *gin.Context) {
	var req request.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateJobInput{
		Title:      req.Title,
		InvoiceID:  req.InvoiceID,
		CustomerID: req.CustomerID,
		DueDate:    req.DueDate,
	}
	for _, st := range req.Stages {
		input.Stages = append(input.Stages, service.StageInput{
			Name:                     st.Name,
			RequiresCustomerApproval: st.RequiresCustomerApproval,
		})
	}

	job, err := h.productionService.CreateJob(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Print job created successfully", job)
}

// Get handles retrieving a print job with its stages
func (h *ProductionHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid print job ID")
		return
	}

	job, err := h.productionService.GetJob(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Print job retrieved successfully", job)
}

// AddStage handles appending a stage to a job
func (h *ProductionHandler) AddStage(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid print job ID")
		return
	}

	var req request.StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stage, err := h.productionService.AddStage(c.Request.Context(), *id, &service.StageInput{
		Name:                     req.Name,
		RequiresCustomerApproval: req.RequiresCustomerApproval,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Stage added successfully", stage)
}

// TransitionStage handles applying a workflow event to a stage
func (h *ProductionHandler) TransitionStage(c *gin.Context) {
	id := parseIDParam(c, "id")
	stageID := parseIDParam(c, "stageId")
	if id == nil || stageID == nil {
		response.BadRequest(c, "Invalid print job or stage ID")
		return
	}
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.TransitionStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stage, err := h.productionService.TransitionStage(c.Request.Context(), *id, *stageID, req.Event, *userID, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stage transitioned successfully", stage)
}

// RecomputeProgress handles recomputing a job's progress from its stages
func (h *ProductionHandler) RecomputeProgress(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid print job ID")
		return
	}

	job, err := h.productionService.RecomputeJobProgress(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Progress recomputed successfully", job)
}

// SetManualProgress handles pinning a manual completion percentage
func (h *ProductionHandler) SetManualProgress(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid print job ID")
		return
	}

	var req request.ManualProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.productionService.SetManualProgress(c.Request.Context(), *id, req.CompletionPercentage)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Manual progress set successfully", job)
}

// ClearManualProgress handles releasing a manual override
func (h *ProductionHandler) ClearManualProgress(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid print job ID")
		return
	}

	job, err := h.productionService.ClearManualProgress(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Manual progress cleared successfully", job)
}

// Delete handles deleting a print job
func (h *ProductionHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid print job ID")
		return
	}

	if err := h.productionService.DeleteJob(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
