package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"fitcoach/internal/config"
)

// Init builds the router with all API routes and middleware attached.
func (h *Handler) Init(cfg config.Server) *chi.Mux {
	router := chi.NewRouter()

	corsPolicy := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	router.Use(corsPolicy.Handler)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/", h.root)

		r.Post("/status", h.createStatusCheck)
		r.Get("/status", h.listStatusChecks)

		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/forgot-password", h.forgotPassword)
		r.Post("/reset-password", h.resetPassword)
		r.Get("/validate-reset-token/{token}", h.validateResetToken)

		r.Post("/chat", h.chat)
		r.Get("/chat/{session_id}", h.chatHistory)

		r.Post("/workouts", h.saveWorkout)
		r.Get("/workouts/{user_id}", h.listWorkouts)
	})

	return router
}
