package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus int

const (
	InvoiceStatusDraft     InvoiceStatus = 0
	InvoiceStatusPending   InvoiceStatus = 1
	InvoiceStatusConfirmed InvoiceStatus = 2
	InvoiceStatusCancelled InvoiceStatus = 3
)

func (s InvoiceStatus) String() string {
	names := [...]string{"Draft", "Pending", "Confirmed", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = InvoiceStatusDraft
	case "Pending":
		*s = InvoiceStatusPending
	case "Confirmed":
		*s = InvoiceStatusConfirmed
	case "Cancelled":
		*s = InvoiceStatusCancelled
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
