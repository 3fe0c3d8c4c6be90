// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FitCoach Authors

package http

import (
	"encoding/json"
	"net/http"

	"fitcoach/internal/logger"
	"fitcoach/internal/utils"
	"fitcoach/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("malformed register payload")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Debug().Err(err).Msg("register payload failed validation")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid request payload"}, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")
	utils.WriteJSON(w, models.AuthResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
		Name:    user.Name,
	}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("malformed login payload")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Debug().Err(err).Msg("login payload failed validation")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid request payload"}, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("user logged in")
	utils.WriteJSON(w, models.AuthResponse{
		Message: "Login successful",
		UserID:  user.ID,
		Name:    user.Name,
	}, http.StatusOK)
}
