package service

import (
	"fitcoach/internal/adapter"
	"fitcoach/internal/config"
	"fitcoach/internal/logger"
	"fitcoach/internal/mailer"
	"fitcoach/internal/store"
)

// Services aggregates every business-logic service, wired once at startup
// and injected into the HTTP handlers.
type Services struct {
	AuthService    AuthService
	ChatService    ChatService
	WorkoutService WorkoutService
	StatusService  StatusService
}

// NewServices wires all services over the shared store, upstream client
// and mailer.
func NewServices(st store.Store, chatClient adapter.ChatClient, sender mailer.Sender, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(st, sender, cfg.App, log),
		ChatService:    NewChatService(st, chatClient, log),
		WorkoutService: NewWorkoutService(st, log),
		StatusService:  NewStatusService(st, log),
	}
}
