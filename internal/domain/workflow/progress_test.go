package workflow

import (
	"testing"

	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
)

func stagesWithCompleted(total, completed int) []entity.ProductionStage {
	stages := make([]entity.ProductionStage, total)
	for i := range stages {
		if i < completed {
			stages[i].StageStatus = enum.StageStatusCompleted
		}
	}
	return stages
}

func TestRecomputeProgress(t *testing.T) {
	job := &entity.PrintJob{ProductionStatus: enum.ProductionStatusPending}

	p := RecomputeProgress(job, stagesWithCompleted(4, 2))
	if p.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", p.Percentage)
	}
	if p.Status != enum.ProductionStatusDesignReview {
		t.Errorf("Status = %v, want design_review for a pending job with progress", p.Status)
	}
}

func TestRecomputeProgress_FloorsPercentage(t *testing.T) {
	job := &entity.PrintJob{}

	p := RecomputeProgress(job, stagesWithCompleted(3, 1))
	if p.Percentage != 33 {
		t.Errorf("Percentage = %d, want 33", p.Percentage)
	}
}

func TestRecomputeProgress_AllDoneCompletesJob(t *testing.T) {
	job := &entity.PrintJob{ProductionStatus: enum.ProductionStatusInProduction}

	p := RecomputeProgress(job, stagesWithCompleted(3, 3))
	if p.Percentage != 100 {
		t.Errorf("Percentage = %d, want 100", p.Percentage)
	}
	if p.Status != enum.ProductionStatusCompleted {
		t.Errorf("Status = %v, want completed", p.Status)
	}
}

func TestRecomputeProgress_NoStages(t *testing.T) {
	job := &entity.PrintJob{}

	p := RecomputeProgress(job, nil)
	if p.Percentage != 0 || p.TotalStages != 0 {
		t.Errorf("got %+v, want zero progress", p)
	}
}

func TestRecomputeProgress_DoesNotDowngradeAdvancedJob(t *testing.T) {
	job := &entity.PrintJob{ProductionStatus: enum.ProductionStatusInProduction}

	p := RecomputeProgress(job, stagesWithCompleted(4, 1))
	if p.Status != enum.ProductionStatusInProduction {
		t.Errorf("Status = %v, want in_production untouched", p.Status)
	}
}

func TestRecomputeProgress_ManualOverrideKept(t *testing.T) {
	job := &entity.PrintJob{
		ProductionStatus:     enum.ProductionStatusPending,
		CompletionPercentage: 75,
		ManualProgress:       true,
	}

	p := RecomputeProgress(job, stagesWithCompleted(4, 1))
	if p.Percentage != 75 {
		t.Errorf("Percentage = %d, want manual 75", p.Percentage)
	}
	if p.Status != enum.ProductionStatusDesignReview {
		t.Errorf("Status = %v, want design_review", p.Status)
	}
}

func TestRecomputeProgress_Idempotent(t *testing.T) {
	job := &entity.PrintJob{ProductionStatus: enum.ProductionStatusPending}
	stages := stagesWithCompleted(5, 2)

	first := RecomputeProgress(job, stages)
	ApplyProgress(job, first)
	second := RecomputeProgress(job, stages)

	if first != second {
		t.Errorf("recompute changed output: %+v vs %+v", first, second)
	}
}
