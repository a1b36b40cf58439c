package workflow

import (
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
)

// Progress is the recomputed roll-up of a job's stages.
type Progress struct {
	CompletedStages int                   `json:"completed_stages"`
	TotalStages     int                   `json:"total_stages"`
	Percentage      int                   `json:"percentage"`
	Status          enum.ProductionStatus `json:"status"`
}

// RecomputeProgress derives a job's completion percentage and production
// status from its stages. Idempotent: unchanged stages yield unchanged
// output. A manually overridden percentage is kept; only the status is
// derived from it.
func RecomputeProgress(job *entity.PrintJob, stages []entity.ProductionStage) Progress {
	completed := 0
	for i := range stages {
		if stages[i].StageStatus == enum.StageStatusCompleted {
			completed++
		}
	}

	percentage := job.CompletionPercentage
	if !job.ManualProgress {
		if len(stages) > 0 {
			percentage = 100 * completed / len(stages)
		} else {
			percentage = 0
		}
	}

	status := job.ProductionStatus
	if percentage == 100 {
		status = enum.ProductionStatusCompleted
	} else if percentage > 0 && status == enum.ProductionStatusPending {
		status = enum.ProductionStatusDesignReview
	}

	return Progress{
		CompletedStages: completed,
		TotalStages:     len(stages),
		Percentage:      percentage,
		Status:          status,
	}
}

// ApplyProgress copies a recomputed roll-up onto the job.
func ApplyProgress(job *entity.PrintJob, p Progress) {
	job.CompletionPercentage = p.Percentage
	job.ProductionStatus = p.Status
}
