package request

import (
	"time"

	"github.com/google/uuid"
)

// StageRequest represents one stage on a create job request
type StageRequest struct {
	Name                     string `json:"name" binding:"required,max=255"`
	RequiresCustomerApproval bool   `json:"requires_customer_approval"`
}

// CreateJobRequest represents the create print job request body
type CreateJobRequest struct {
	Title      string         `json:"title" binding:"required,max=255"`
	InvoiceID  *uuid.UUID     `json:"invoice_id"`
	CustomerID *uuid.UUID     `json:"customer_id"`
	DueDate    *time.Time     `json:"due_date"`
	Stages     []StageRequest `json:"stages" binding:"omitempty,dive"`
}

// TransitionStageRequest represents a stage workflow event request body
type TransitionStageRequest struct {
	Event string `json:"event" binding:"required"`
	Note  string `json:"note" binding:"omitempty,max=2000"`
}

// ManualProgressRequest represents the manual progress override body
type ManualProgressRequest struct {
	CompletionPercentage int `json:"completion_percentage" binding:"gte=0,lte=100"`
}
