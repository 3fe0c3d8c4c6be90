// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FitCoach Authors

// Package http exposes the coaching API over REST. Every route decodes
// JSON into a request model, validates it, delegates to the service
// layer and serializes the result back with a status derived from the
// returned error.
package http

import (
	"github.com/go-playground/validator/v10"

	"fitcoach/internal/logger"
	"fitcoach/internal/service"
)

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	services *service.Services
	validate *validator.Validate
	logger   *logger.Logger
}

func NewHandler(services *service.Services, log *logger.Logger) *Handler {
	return &Handler{
		services: services,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log,
	}
}
