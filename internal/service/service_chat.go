package service

import (
	"context"
	"fmt"
	"time"

	"fitcoach/internal/adapter"
	"fitcoach/internal/logger"
	"fitcoach/internal/store"
	"fitcoach/internal/utils"
	"fitcoach/models"
)

// historyLimit caps how many exchanges are loaded per session, both for
// replaying context to the upstream and for the history endpoint.
const historyLimit = 100

// chatService proxies chat messages to the AI upstream and keeps the
// per-session conversation log in the store.
type chatService struct {
	store  store.Store
	client adapter.ChatClient
	now    func() time.Time
	logger *logger.Logger
}

// NewChatService constructs a [ChatService] over the given store and
// upstream client.
func NewChatService(st store.Store, client adapter.ChatClient, log *logger.Logger) ChatService {
	return &chatService{
		store:  st,
		client: client,
		now:    time.Now,
		logger: log,
	}
}

// Chat forwards the message to the upstream together with the session's
// prior exchanges and persists the new exchange. Upstream failures
// propagate unchanged so the HTTP layer can map them to categorized
// messages; nothing is persisted in that case.
func (c *chatService) Chat(ctx context.Context, req models.ChatRequest) (models.ChatMessage, error) {
	log := logger.FromContext(ctx)

	history, err := c.History(ctx, req.SessionID)
	if err != nil {
		return models.ChatMessage{}, err
	}

	response, err := c.client.Complete(ctx, history, req.Message)
	if err != nil {
		return models.ChatMessage{}, err
	}

	exchange := models.ChatMessage{
		ID:        utils.UUIDGenerator(),
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Message:   req.Message,
		Response:  response,
		Timestamp: c.now().UTC(),
	}

	if err = c.store.InsertOne(ctx, exchange.TableName(), exchange.ToMap()); err != nil {
		log.Err(err).Str("session_id", req.SessionID).Msg("chat exchange persistence failed")
		return models.ChatMessage{}, fmt.Errorf("chat exchange persistence failed: %w", err)
	}

	return exchange, nil
}

// History returns the session's exchanges oldest first, capped at
// historyLimit.
func (c *chatService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	log := logger.FromContext(ctx)

	records, err := c.store.FindAll(ctx, models.ChatMessage{}.TableName(),
		store.Filter{"session_id": sessionID},
		store.WithSort("timestamp", false), store.WithLimit(historyLimit))
	if err != nil {
		log.Err(err).Str("session_id", sessionID).Msg("chat history lookup failed")
		return nil, fmt.Errorf("chat history lookup failed: %w", err)
	}

	messages := make([]models.ChatMessage, 0, len(records))
	for _, record := range records {
		messages = append(messages, models.ChatMessageFromMap(record))
	}

	return messages, nil
}
