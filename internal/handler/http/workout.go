package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcoach/internal/logger"
	"fitcoach/internal/utils"
	"fitcoach/models"
)

func (h *Handler) saveWorkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var plan models.WorkoutPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Debug().Err(err).Msg("malformed workout payload")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(plan); err != nil {
		log.Debug().Err(err).Msg("workout payload failed validation")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid request payload"}, http.StatusBadRequest)
		return
	}

	saved, err := h.services.WorkoutService.Save(ctx, plan)
	if err != nil {
		respondError(w, log, err)
		return
	}

	log.Info().Str("workout_id", saved.ID).Str("user_id", saved.UserID).Msg("workout saved")
	utils.WriteJSON(w, models.WorkoutSaveResponse{
		Message:   "Workout saved successfully",
		WorkoutID: saved.ID,
	}, http.StatusOK)
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "user_id")
	plans, err := h.services.WorkoutService.ListByUser(ctx, userID)
	if err != nil {
		respondError(w, log, err)
		return
	}
	if plans == nil {
		plans = []models.WorkoutPlan{}
	}

	utils.WriteJSON(w, plans, http.StatusOK)
}
