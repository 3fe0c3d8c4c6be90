package models

// Request payloads accepted by the HTTP API. Validation rules are expressed
// as go-playground/validator tags and checked at the handler boundary.

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest starts the password-reset flow for an email.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest redeems a reset token and sets a new password.
// The password-mismatch and minimum-length checks live in the service so
// they apply before any token lookup.
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// ChatRequest is a single message sent to the AI coach.
type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// StatusCheckCreate creates a liveness record.
type StatusCheckCreate struct {
	ClientName string `json:"client_name" validate:"required"`
}
