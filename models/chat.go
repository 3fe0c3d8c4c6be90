package models

import "time"

// ChatMessage is one request/response exchange with the AI coach,
// persisted append-only per session.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// TableName returns the name of the collection/table
// associated with the ChatMessage model.
func (c ChatMessage) TableName() string {
	return "chat_messages"
}

// ToMap converts the message to the generic record form used by the storage
// layer.
func (c ChatMessage) ToMap() map[string]any {
	return map[string]any{
		"id":         c.ID,
		"session_id": c.SessionID,
		"user_id":    c.UserID,
		"message":    c.Message,
		"response":   c.Response,
		"timestamp":  c.Timestamp,
	}
}

// ChatMessageFromMap rebuilds a ChatMessage from a storage record.
func ChatMessageFromMap(m map[string]any) ChatMessage {
	return ChatMessage{
		ID:        stringField(m, "id"),
		SessionID: stringField(m, "session_id"),
		UserID:    stringField(m, "user_id"),
		Message:   stringField(m, "message"),
		Response:  stringField(m, "response"),
		Timestamp: timeField(m, "timestamp"),
	}
}
