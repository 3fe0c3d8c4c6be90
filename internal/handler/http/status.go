package http

import (
	"encoding/json"
	"net/http"

	"fitcoach/internal/logger"
	"fitcoach/internal/utils"
	"fitcoach/models"
)

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "Hello World"}, http.StatusOK)
}

func (h *Handler) createStatusCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.StatusCheckCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("malformed status payload")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Debug().Err(err).Msg("status payload failed validation")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid request payload"}, http.StatusBadRequest)
		return
	}

	check, err := h.services.StatusService.Create(ctx, req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	utils.WriteJSON(w, check, http.StatusOK)
}

func (h *Handler) listStatusChecks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	checks, err := h.services.StatusService.List(ctx)
	if err != nil {
		respondError(w, log, err)
		return
	}
	if checks == nil {
		checks = []models.StatusCheck{}
	}

	utils.WriteJSON(w, checks, http.StatusOK)
}
