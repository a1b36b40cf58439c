// Package workflow owns the production-stage state machine and the job
// progress roll-up. Transitions mutate the stage in memory only; the
// production service persists the result.
package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"github.com/printflow/printflow-api/pkg/apperror"
)

// transitions maps each event to the stage states it may fire from.
// Completed, rejected and skipped are terminal: no event lists them.
var transitions = map[enum.StageEvent][]enum.StageStatus{
	enum.StageEventStart:           {enum.StageStatusPending},
	enum.StageEventComplete:        {enum.StageStatusInProgress, enum.StageStatusRequiresApproval},
	enum.StageEventPutOnHold:       {enum.StageStatusPending, enum.StageStatusInProgress},
	enum.StageEventResume:          {enum.StageStatusOnHold},
	enum.StageEventReject:          {enum.StageStatusInProgress, enum.StageStatusRequiresApproval},
	enum.StageEventRequireApproval: {enum.StageStatusInProgress},
	enum.StageEventApprove:         {enum.StageStatusRequiresApproval},
	enum.StageEventSkip:            {enum.StageStatusPending, enum.StageStatusOnHold},
}

// CanApply reports whether event is valid from the stage's current state.
func CanApply(status enum.StageStatus, event enum.StageEvent) bool {
	for _, s := range transitions[event] {
		if s == status {
			return true
		}
	}
	return false
}

// ValidEvents returns every event applicable from status.
func ValidEvents(status enum.StageStatus) []enum.StageEvent {
	var events []enum.StageEvent
	for ev := enum.StageEventStart; ev <= enum.StageEventSkip; ev++ {
		if CanApply(status, ev) {
			events = append(events, ev)
		}
	}
	return events
}

// TriggersProgressRecompute reports whether a successful event must be
// followed by a job progress roll-up.
func TriggersProgressRecompute(event enum.StageEvent) bool {
	return event == enum.StageEventComplete || event == enum.StageEventApprove
}

// Apply runs one transition on the stage. An event fired from a state not
// listed in the transition table returns an InvalidTransitionError; silent
// no-ops are never an outcome. Every successful transition is appended to
// the stage's note log with the acting user and timestamp.
func Apply(stage *entity.ProductionStage, event enum.StageEvent, actorID uuid.UUID, note string, now time.Time) error {
	if !CanApply(stage.StageStatus, event) {
		return apperror.NewInvalidTransitionError(stage.StageStatus.String(), event.String())
	}

	switch event {
	case enum.StageEventStart:
		stage.StageStatus = enum.StageStatusInProgress
		started := now
		stage.StartedAt = &started

	case enum.StageEventComplete:
		complete(stage, now)

	case enum.StageEventPutOnHold:
		stage.StageStatus = enum.StageStatusOnHold

	case enum.StageEventResume:
		// A stage that never started resumes back to pending.
		if stage.StartedAt != nil {
			stage.StageStatus = enum.StageStatusInProgress
		} else {
			stage.StageStatus = enum.StageStatusPending
		}

	case enum.StageEventReject:
		stage.StageStatus = enum.StageStatusRejected
		if note != "" {
			reason := note
			stage.RejectionReason = &reason
		}

	case enum.StageEventRequireApproval:
		stage.StageStatus = enum.StageStatusRequiresApproval

	case enum.StageEventApprove:
		approver := actorID
		stage.ApprovedBy = &approver
		if stage.RequiresCustomerApproval {
			approvedAt := now
			stage.CustomerApprovedAt = &approvedAt
		}
		complete(stage, now)

	case enum.StageEventSkip:
		stage.StageStatus = enum.StageStatusSkipped
	}

	return stage.AppendNote(entity.StageNote{
		At:      now,
		ActorID: actorID,
		Event:   event.String(),
		Note:    note,
	})
}

func complete(stage *entity.ProductionStage, now time.Time) {
	stage.StageStatus = enum.StageStatusCompleted
	completedAt := now
	stage.CompletedAt = &completedAt
	if stage.StartedAt != nil {
		secs := int64(now.Sub(*stage.StartedAt).Seconds())
		stage.ActualDurationSecs = &secs
	}
}
