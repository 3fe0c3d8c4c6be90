package models

import "time"

// StatusCheck is a liveness record created by clients to verify
// end-to-end connectivity through the API and the backing store.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// TableName returns the name of the collection/table
// associated with the StatusCheck model.
func (s StatusCheck) TableName() string {
	return "status_checks"
}

// ToMap converts the record to the generic form used by the storage layer.
func (s StatusCheck) ToMap() map[string]any {
	return map[string]any{
		"id":          s.ID,
		"client_name": s.ClientName,
		"timestamp":   s.Timestamp,
	}
}

// StatusCheckFromMap rebuilds a StatusCheck from a storage record.
func StatusCheckFromMap(m map[string]any) StatusCheck {
	return StatusCheck{
		ID:         stringField(m, "id"),
		ClientName: stringField(m, "client_name"),
		Timestamp:  timeField(m, "timestamp"),
	}
}
