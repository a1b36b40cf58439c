package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StageStatus represents the state of a production stage. The workflow
// machine in internal/domain/workflow owns the valid transitions.
type StageStatus int

const (
	StageStatusPending          StageStatus = 0
	StageStatusInProgress       StageStatus = 1
	StageStatusCompleted        StageStatus = 2
	StageStatusOnHold           StageStatus = 3
	StageStatusRequiresApproval StageStatus = 4
	StageStatusRejected         StageStatus = 5
	StageStatusSkipped          StageStatus = 6
)

func (s StageStatus) String() string {
	names := [...]string{"pending", "in_progress", "completed", "on_hold", "requires_approval", "rejected", "skipped"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pending"
	}
	return names[s]
}

// IsTerminal reports whether the stage can transition no further.
func (s StageStatus) IsTerminal() bool {
	return s == StageStatusCompleted || s == StageStatusRejected || s == StageStatusSkipped
}

func (s StageStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StageStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = StageStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = StageStatusPending
	case "in_progress":
		*s = StageStatusInProgress
	case "completed":
		*s = StageStatusCompleted
	case "on_hold":
		*s = StageStatusOnHold
	case "requires_approval":
		*s = StageStatusRequiresApproval
	case "rejected":
		*s = StageStatusRejected
	case "skipped":
		*s = StageStatusSkipped
	}
	return nil
}

func (s StageStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *StageStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StageStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = StageStatus(v)
	case int:
		*s = StageStatus(v)
	}
	return nil
}
