package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcoach/internal/logger"
	"fitcoach/internal/utils"
	"fitcoach/models"
)

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("malformed chat payload")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Debug().Err(err).Msg("chat payload failed validation")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid request payload"}, http.StatusBadRequest)
		return
	}

	exchange, err := h.services.ChatService.Chat(ctx, req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	utils.WriteJSON(w, models.ChatResponse{
		Response:  exchange.Response,
		SessionID: exchange.SessionID,
	}, http.StatusOK)
}

// chatHistory returns the session's exchanges oldest first. An unknown
// session yields an empty list, not an error.
func (h *Handler) chatHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionID := chi.URLParam(r, "session_id")
	history, err := h.services.ChatService.History(ctx, sessionID)
	if err != nil {
		respondError(w, log, err)
		return
	}
	if history == nil {
		history = []models.ChatMessage{}
	}

	utils.WriteJSON(w, history, http.StatusOK)
}
