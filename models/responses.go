package models

// Response payloads returned by the HTTP API.

// MessageResponse carries a human-readable outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
}

// ForgotPasswordResponse is intentionally identical for existing and
// unknown emails; ResetLink is populated only in demo mode, where the link
// is returned in-band instead of being e-mailed.
type ForgotPasswordResponse struct {
	Message   string `json:"message"`
	ResetLink string `json:"reset_link,omitempty"`
}

// ValidateTokenResponse reports the result of a read-only token check.
type ValidateTokenResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ChatResponse echoes the upstream reply for a session.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// WorkoutSaveResponse acknowledges a persisted workout plan.
type WorkoutSaveResponse struct {
	Message   string `json:"message"`
	WorkoutID string `json:"workout_id"`
}

// ErrorResponse is the uniform error body for 4xx/5xx replies.
type ErrorResponse struct {
	Error string `json:"error"`
}
