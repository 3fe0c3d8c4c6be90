// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FitCoach Authors

// Package adapter provides transport-layer access to the upstream AI
// service used by the chat feature.
//
// The primary abstraction is [ChatClient], which decouples the service
// layer from the concrete provider. The package ships an OpenAI-style
// chat-completions implementation ([NewOpenAIChatClient]).
//
// Error values defined in errors.go are mapped from upstream failures by
// categorizeUpstreamError so that callers can use [errors.Is] for
// provider-agnostic error handling.
package adapter

import (
	"context"

	"fitcoach/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/chat_client_mock.go -package=mock

// ChatClient defines provider-agnostic access to the AI coach upstream.
// Implementations are responsible for serialisation, authentication and
// mapping provider failures to the sentinel values defined in this package.
type ChatClient interface {
	// Complete sends the user message to the upstream together with the
	// prior exchanges of the session and returns the assistant's reply.
	//
	// History must be ordered oldest first; it is replayed to the upstream
	// so the conversation keeps its context across requests.
	Complete(ctx context.Context, history []models.ChatMessage, message string) (string, error)
}
