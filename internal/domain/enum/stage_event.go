package enum

import "encoding/json"

// StageEvent represents an action requested against a production stage.
type StageEvent int

const (
	StageEventStart StageEvent = iota
	StageEventComplete
	StageEventPutOnHold
	StageEventResume
	StageEventReject
	StageEventRequireApproval
	StageEventApprove
	StageEventSkip
)

func (e StageEvent) String() string {
	names := [...]string{"start", "complete", "put_on_hold", "resume", "reject", "require_approval", "approve", "skip"}
	if int(e) < 0 || int(e) >= len(names) {
		return "unknown"
	}
	return names[e]
}

// ParseStageEvent maps a wire name to a StageEvent. The second return is
// false for unrecognized names.
func ParseStageEvent(s string) (StageEvent, bool) {
	switch s {
	case "start":
		return StageEventStart, true
	case "complete":
		return StageEventComplete, true
	case "put_on_hold":
		return StageEventPutOnHold, true
	case "resume":
		return StageEventResume, true
	case "reject":
		return StageEventReject, true
	case "require_approval":
		return StageEventRequireApproval, true
	case "approve":
		return StageEventApprove, true
	case "skip":
		return StageEventSkip, true
	}
	return 0, false
}

func (e StageEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *StageEvent) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if ev, ok := ParseStageEvent(str); ok {
		*e = ev
	}
	return nil
}
