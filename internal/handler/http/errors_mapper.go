package http

import (
	"errors"
	"net/http"

	"fitcoach/internal/adapter"
	"fitcoach/internal/logger"
	"fitcoach/models"
	"fitcoach/internal/service"
	"fitcoach/internal/store"
	"fitcoach/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrEmailAlreadyRegistered: http.StatusBadRequest,
	service.ErrInvalidCredentials:     http.StatusUnauthorized,
	service.ErrPasswordMismatch:       http.StatusBadRequest,
	service.ErrWeakPassword:           http.StatusBadRequest,
	service.ErrInvalidOrExpiredToken:  http.StatusBadRequest,

	adapter.ErrUpstreamAuth:        http.StatusServiceUnavailable,
	adapter.ErrUpstreamRateLimited: http.StatusServiceUnavailable,
	adapter.ErrUpstreamNetwork:     http.StatusServiceUnavailable,
	adapter.ErrUpstreamUnavailable: http.StatusServiceUnavailable,

	store.ErrBuildingQuery:  http.StatusInternalServerError,
	store.ErrExecutingQuery: http.StatusInternalServerError,
	store.ErrScanningRow:    http.StatusInternalServerError,
}

// User-facing messages. Storage and other unexpected errors are reported
// with a generic message so internals never leak to clients.
var errorMessageMap = map[error]string{
	service.ErrEmailAlreadyRegistered: "Email already registered",
	service.ErrInvalidCredentials:     "Incorrect email or password",
	service.ErrPasswordMismatch:       "Passwords do not match",
	service.ErrWeakPassword:           "Password must be at least 6 characters long",
	service.ErrInvalidOrExpiredToken:  "Invalid or expired token",

	adapter.ErrUpstreamAuth:        "AI service temporarily unavailable: invalid API key",
	adapter.ErrUpstreamRateLimited: "AI service temporarily unavailable: usage limit exceeded",
	adapter.ErrUpstreamNetwork:     "AI service temporarily unavailable: connection problems",
	adapter.ErrUpstreamUnavailable: "AI service temporarily unavailable, please try again in a few moments",

	store.ErrBuildingQuery:  "database error",
	store.ErrExecutingQuery: "database error",
	store.ErrScanningRow:    "database error",
}

// respondError maps a service-layer error to an HTTP status and a safe
// user-facing message, writes the JSON error body and logs the cause.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	for target, mappedStatus := range errorStatusMap {
		if errors.Is(err, target) {
			status = mappedStatus
			message = errorMessageMap[target]
			break
		}
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, models.ErrorResponse{Error: message}, status); writeErr != nil {
		log.Error().Err(writeErr).Msg("error writing error response")
	}
}
