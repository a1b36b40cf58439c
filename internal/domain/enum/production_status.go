package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductionStatus represents the derived overall state of a print job.
// It is recomputed from the job's stages, never set directly by clients.
type ProductionStatus int

const (
	ProductionStatusPending      ProductionStatus = 0
	ProductionStatusDesignReview ProductionStatus = 1
	ProductionStatusInProduction ProductionStatus = 2
	ProductionStatusCompleted    ProductionStatus = 3
	ProductionStatusCancelled    ProductionStatus = 4
)

func (s ProductionStatus) String() string {
	names := [...]string{"pending", "design_review", "in_production", "completed", "cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pending"
	}
	return names[s]
}

func (s ProductionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ProductionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ProductionStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = ProductionStatusPending
	case "design_review":
		*s = ProductionStatusDesignReview
	case "in_production":
		*s = ProductionStatusInProduction
	case "completed":
		*s = ProductionStatusCompleted
	case "cancelled":
		*s = ProductionStatusCancelled
	}
	return nil
}

func (s ProductionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ProductionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ProductionStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ProductionStatus(v)
	case int:
		*s = ProductionStatus(v)
	}
	return nil
}
