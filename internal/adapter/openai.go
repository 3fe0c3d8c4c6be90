package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"fitcoach/internal/config"
	"fitcoach/internal/logger"
	"fitcoach/models"
)

// systemPrompt frames every conversation: the upstream acts as a personal
// trainer specialised in home workouts.
const systemPrompt = `You are a personal trainer specialised in home workouts.
Help the user build personalised workout plans based on:
- Fitness level
- Goals (weight loss, muscle gain, endurance, etc.)
- Available equipment
- Available time
- Physical limitations

Provide specific exercises with:
- Exercise name
- Number of sets
- Number of repetitions
- Rest time
- Execution instructions
- Safety tips

Be motivating and educational.`

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// openAIChatClient talks to an OpenAI-style chat-completions endpoint.
type openAIChatClient struct {
	client *resty.Client
	model  string
	apiKey string
	logger *logger.Logger
}

// NewOpenAIChatClient constructs a [ChatClient] for the configured
// upstream. An empty API key is allowed at construction time; requests
// then fail with [ErrUpstreamAuth] instead of failing startup.
func NewOpenAIChatClient(cfg config.Chat, log *logger.Logger) ChatClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &openAIChatClient{
		client: client,
		model:  cfg.Model,
		apiKey: cfg.APIKey,
		logger: log,
	}
}

// Complete implements [ChatClient] over POST /chat/completions. The stored
// session history is replayed as alternating user/assistant messages so
// the upstream sees the whole conversation.
func (c *openAIChatClient) Complete(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	log := logger.FromContext(ctx)

	if c.apiKey == "" {
		log.Warn().Str("func", "*openAIChatClient.Complete").Msg("no API key configured")
		return "", fmt.Errorf("%w: no API key configured", ErrUpstreamAuth)
	}

	messages := make([]chatMessage, 0, 2*len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, exchange := range history {
		messages = append(messages,
			chatMessage{Role: "user", Content: exchange.Message},
			chatMessage{Role: "assistant", Content: exchange.Response},
		)
	}
	messages = append(messages, chatMessage{Role: "user", Content: message})

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{Model: c.model, Messages: messages}).
		Post("/chat/completions")
	if err != nil {
		log.Err(err).Str("func", "*openAIChatClient.Complete").Msg("error calling upstream")
		return "", categorizeUpstreamError(0, err.Error())
	}

	var completion chatCompletionResponse
	if err = json.Unmarshal(resp.Body(), &completion); err != nil && !resp.IsError() {
		log.Err(err).Str("func", "*openAIChatClient.Complete").Msg("error decoding upstream response")
		return "", fmt.Errorf("%w: malformed response", ErrUpstreamUnavailable)
	}

	if resp.IsError() {
		detail := ""
		if completion.Error != nil {
			detail = completion.Error.Message
		}
		log.Error().Str("func", "*openAIChatClient.Complete").
			Int("status", resp.StatusCode()).Str("detail", detail).Msg("upstream returned error status")
		return "", categorizeUpstreamError(resp.StatusCode(), detail)
	}

	if len(completion.Choices) == 0 {
		log.Error().Str("func", "*openAIChatClient.Complete").Msg("upstream returned no choices")
		return "", fmt.Errorf("%w: empty completion", ErrUpstreamUnavailable)
	}

	return completion.Choices[0].Message.Content, nil
}

// categorizeUpstreamError buckets an upstream failure into one of the four
// sentinel errors. Classification follows the HTTP status when one is
// available, then falls back to substring matching on the error text.
func categorizeUpstreamError(status int, detail string) error {
	lowered := strings.ToLower(detail)

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUpstreamAuth, detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrUpstreamRateLimited, detail)
	}

	switch {
	case strings.Contains(lowered, "authentication"),
		strings.Contains(lowered, "api key"),
		strings.Contains(lowered, "incorrect"):
		return fmt.Errorf("%w: %s", ErrUpstreamAuth, detail)
	case strings.Contains(lowered, "quota"),
		strings.Contains(lowered, "limit"):
		return fmt.Errorf("%w: %s", ErrUpstreamRateLimited, detail)
	case strings.Contains(lowered, "network"),
		strings.Contains(lowered, "connection"),
		strings.Contains(lowered, "timeout"),
		strings.Contains(lowered, "no such host"):
		return fmt.Errorf("%w: %s", ErrUpstreamNetwork, detail)
	default:
		return fmt.Errorf("%w: %s", ErrUpstreamUnavailable, detail)
	}
}
