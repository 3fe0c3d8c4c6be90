package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcoach/internal/logger"
	"fitcoach/internal/utils"
	"fitcoach/models"
)

// forgotPassword always answers with the same message whether or not the
// e-mail is registered, so account existence cannot be probed.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("malformed forgot-password payload")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Debug().Err(err).Msg("forgot-password payload failed validation")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid request payload"}, http.StatusBadRequest)
		return
	}

	resetLink, err := h.services.AuthService.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		respondError(w, log, err)
		return
	}

	utils.WriteJSON(w, models.ForgotPasswordResponse{
		Message:   "If the email exists, a reset link has been sent",
		ResetLink: resetLink,
	}, http.StatusOK)
}

func (h *Handler) validateResetToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token := chi.URLParam(r, "token")
	if err := h.services.AuthService.ValidateResetToken(ctx, token); err != nil {
		respondError(w, log, err)
		return
	}

	utils.WriteJSON(w, models.ValidateTokenResponse{
		Valid:   true,
		Message: "Token is valid",
	}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("malformed reset-password payload")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Debug().Err(err).Msg("reset-password payload failed validation")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid request payload"}, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, req); err != nil {
		respondError(w, log, err)
		return
	}

	log.Info().Msg("password reset completed")
	utils.WriteJSON(w, models.MessageResponse{Message: "Password changed successfully"}, http.StatusOK)
}
