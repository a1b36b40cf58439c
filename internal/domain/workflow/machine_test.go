package workflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/entity"
	"github.com/printflow/printflow-api/internal/domain/enum"
)

var (
	testActor = uuid.New()
	testNow   = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
)

func newStage(status enum.StageStatus) *entity.ProductionStage {
	return &entity.ProductionStage{
		ID:          uuid.New(),
		StageName:   "printing",
		StageStatus: status,
	}
}

func TestApply_StartThenComplete(t *testing.T) {
	stage := newStage(enum.StageStatusPending)

	if err := Apply(stage, enum.StageEventStart, testActor, "", testNow); err != nil {
		t.Fatal(err)
	}
	if stage.StageStatus != enum.StageStatusInProgress {
		t.Fatalf("status = %v, want in_progress", stage.StageStatus)
	}
	if stage.StartedAt == nil || !stage.StartedAt.Equal(testNow) {
		t.Fatalf("StartedAt = %v, want %v", stage.StartedAt, testNow)
	}

	later := testNow.Add(90 * time.Minute)
	if err := Apply(stage, enum.StageEventComplete, testActor, "done", later); err != nil {
		t.Fatal(err)
	}
	if stage.StageStatus != enum.StageStatusCompleted {
		t.Fatalf("status = %v, want completed", stage.StageStatus)
	}
	if stage.ActualDurationSecs == nil || *stage.ActualDurationSecs != 5400 {
		t.Fatalf("ActualDurationSecs = %v, want 5400", stage.ActualDurationSecs)
	}
}

func TestApply_CompleteFromPendingFails(t *testing.T) {
	stage := newStage(enum.StageStatusPending)

	err := Apply(stage, enum.StageEventComplete, testActor, "", testNow)
	if err == nil {
		t.Fatal("complete from pending succeeded, want InvalidTransitionError")
	}
	if stage.StageStatus != enum.StageStatusPending {
		t.Fatalf("failed transition mutated status to %v", stage.StageStatus)
	}
}

func TestApply_ResumeReturnsToPriorPhase(t *testing.T) {
	// held before starting: resume back to pending
	held := newStage(enum.StageStatusPending)
	if err := Apply(held, enum.StageEventPutOnHold, testActor, "", testNow); err != nil {
		t.Fatal(err)
	}
	if err := Apply(held, enum.StageEventResume, testActor, "", testNow); err != nil {
		t.Fatal(err)
	}
	if held.StageStatus != enum.StageStatusPending {
		t.Fatalf("status = %v, want pending", held.StageStatus)
	}

	// held mid-run: resume back to in_progress
	running := newStage(enum.StageStatusPending)
	if err := Apply(running, enum.StageEventStart, testActor, "", testNow); err != nil {
		t.Fatal(err)
	}
	if err := Apply(running, enum.StageEventPutOnHold, testActor, "paper jam", testNow); err != nil {
		t.Fatal(err)
	}
	if err := Apply(running, enum.StageEventResume, testActor, "", testNow); err != nil {
		t.Fatal(err)
	}
	if running.StageStatus != enum.StageStatusInProgress {
		t.Fatalf("status = %v, want in_progress", running.StageStatus)
	}
}

func TestApply_RejectRecordsReason(t *testing.T) {
	stage := newStage(enum.StageStatusInProgress)

	if err := Apply(stage, enum.StageEventReject, testActor, "misaligned colors", testNow); err != nil {
		t.Fatal(err)
	}
	if stage.StageStatus != enum.StageStatusRejected {
		t.Fatalf("status = %v, want rejected", stage.StageStatus)
	}
	if stage.RejectionReason == nil || *stage.RejectionReason != "misaligned colors" {
		t.Fatalf("RejectionReason = %v", stage.RejectionReason)
	}
}

func TestApply_ApproveRecordsApprover(t *testing.T) {
	stage := newStage(enum.StageStatusInProgress)
	stage.RequiresCustomerApproval = true

	if err := Apply(stage, enum.StageEventRequireApproval, testActor, "", testNow); err != nil {
		t.Fatal(err)
	}
	if err := Apply(stage, enum.StageEventApprove, testActor, "customer signed off", testNow); err != nil {
		t.Fatal(err)
	}

	if stage.StageStatus != enum.StageStatusCompleted {
		t.Fatalf("status = %v, want completed", stage.StageStatus)
	}
	if stage.ApprovedBy == nil || *stage.ApprovedBy != testActor {
		t.Fatalf("ApprovedBy = %v, want %v", stage.ApprovedBy, testActor)
	}
	if stage.CustomerApprovedAt == nil {
		t.Fatal("CustomerApprovedAt not set for a stage requiring customer approval")
	}
}

func TestApply_AppendsNoteLog(t *testing.T) {
	stage := newStage(enum.StageStatusPending)

	if err := Apply(stage, enum.StageEventStart, testActor, "kicked off", testNow); err != nil {
		t.Fatal(err)
	}
	if err := Apply(stage, enum.StageEventPutOnHold, testActor, "out of ink", testNow.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	notes, err := stage.NoteLog()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("note log has %d entries, want 2", len(notes))
	}
	if notes[0].Event != "start" || notes[0].ActorID != testActor {
		t.Errorf("first note = %+v", notes[0])
	}
	if notes[1].Event != "put_on_hold" || notes[1].Note != "out of ink" {
		t.Errorf("second note = %+v", notes[1])
	}
}

// The valid outgoing events of every state must match the transition table
// exactly; everything else is an InvalidTransitionError.
func TestTransitionTableClosure(t *testing.T) {
	want := map[enum.StageStatus][]enum.StageEvent{
		enum.StageStatusPending:          {enum.StageEventStart, enum.StageEventPutOnHold, enum.StageEventSkip},
		enum.StageStatusInProgress:       {enum.StageEventComplete, enum.StageEventPutOnHold, enum.StageEventReject, enum.StageEventRequireApproval},
		enum.StageStatusCompleted:        nil,
		enum.StageStatusOnHold:           {enum.StageEventResume, enum.StageEventSkip},
		enum.StageStatusRequiresApproval: {enum.StageEventComplete, enum.StageEventReject, enum.StageEventApprove},
		enum.StageStatusRejected:         nil,
		enum.StageStatusSkipped:          nil,
	}

	for status, events := range want {
		allowed := make(map[enum.StageEvent]bool, len(events))
		for _, ev := range events {
			allowed[ev] = true
		}

		got := ValidEvents(status)
		if len(got) != len(events) {
			t.Errorf("%v: ValidEvents = %v, want %v", status, got, events)
		}

		for ev := enum.StageEventStart; ev <= enum.StageEventSkip; ev++ {
			stage := newStage(status)
			if status == enum.StageStatusInProgress || status == enum.StageStatusOnHold {
				started := testNow
				stage.StartedAt = &started
			}
			err := Apply(stage, ev, testActor, "", testNow)
			if allowed[ev] && err != nil {
				t.Errorf("%v + %v: unexpected error %v", status, ev, err)
			}
			if !allowed[ev] && err == nil {
				t.Errorf("%v + %v: succeeded, want InvalidTransitionError", status, ev)
			}
		}
	}
}

func TestTerminalStatesAcceptNothing(t *testing.T) {
	for _, status := range []enum.StageStatus{
		enum.StageStatusCompleted,
		enum.StageStatusRejected,
		enum.StageStatusSkipped,
	} {
		if !status.IsTerminal() {
			t.Errorf("%v not marked terminal", status)
		}
		if events := ValidEvents(status); len(events) != 0 {
			t.Errorf("%v accepts %v, want none", status, events)
		}
	}
}

func TestTriggersProgressRecompute(t *testing.T) {
	if !TriggersProgressRecompute(enum.StageEventComplete) {
		t.Error("complete must trigger a progress recompute")
	}
	if !TriggersProgressRecompute(enum.StageEventApprove) {
		t.Error("approve must trigger a progress recompute")
	}
	if TriggersProgressRecompute(enum.StageEventStart) {
		t.Error("start must not trigger a progress recompute")
	}
}
