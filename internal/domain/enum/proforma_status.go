package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProformaStatus represents the status of a proforma (quote)
type ProformaStatus int

const (
	ProformaStatusDraft     ProformaStatus = 0
	ProformaStatusSent      ProformaStatus = 1
	ProformaStatusAccepted  ProformaStatus = 2
	ProformaStatusCancelled ProformaStatus = 3
)

func (s ProformaStatus) String() string {
	return [...]string{"Draft", "Sent", "Accepted", "Cancelled"}[s]
}

func (s ProformaStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ProformaStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ProformaStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = ProformaStatusDraft
	case "Sent":
		*s = ProformaStatusSent
	case "Accepted":
		*s = ProformaStatusAccepted
	case "Cancelled":
		*s = ProformaStatusCancelled
	}
	return nil
}

func (s ProformaStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ProformaStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ProformaStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ProformaStatus(v)
	case int:
		*s = ProformaStatus(v)
	}
	return nil
}
