package service

import (
	"context"

	"fitcoach/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// AuthService handles account registration, credential verification and the
// password-reset token lifecycle.
type AuthService interface {
	// Register creates a new account with an argon2id-hashed password.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies the credentials and returns the matching user.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// RequestPasswordReset issues a reset token for the given e-mail.
	// The returned link is non-empty only when the caller should surface it
	// in the HTTP response (demo mode); unknown e-mails return an empty
	// link and no error, so existence is never revealed.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ValidateResetToken reports whether a token is still redeemable,
	// without consuming it.
	ValidateResetToken(ctx context.Context, token string) error

	// ResetPassword redeems a token and sets the new password. The token is
	// claimed atomically before the password is written, so each token
	// changes a password at most once.
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

// ChatService proxies messages to the AI coach and keeps the per-session
// conversation log.
type ChatService interface {
	// Chat forwards the message to the upstream with session context and
	// persists the exchange.
	Chat(ctx context.Context, req models.ChatRequest) (models.ChatMessage, error)

	// History returns the session's exchanges, oldest first.
	History(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
}

// WorkoutService stores and lists workout plans.
type WorkoutService interface {
	// Save persists a workout plan, assigning an identifier and creation
	// time when the caller did not provide them.
	Save(ctx context.Context, plan models.WorkoutPlan) (models.WorkoutPlan, error)

	// ListByUser returns the user's plans, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.WorkoutPlan, error)
}

// StatusService records and lists client liveness checks.
type StatusService interface {
	Create(ctx context.Context, req models.StatusCheckCreate) (models.StatusCheck, error)
	List(ctx context.Context) ([]models.StatusCheck, error)
}
