package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rillka/wordbank-api/internal/api"
	apiMiddleware "github.com/rillka/wordbank-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.db,
		app.userStore,
		app.profileStore,
		app.jwtService,
		app.passwordVerifier,
	)
	wordHandler := api.NewWordHandler(app.wordStore, app.tagStore, app.logger)
	practiceHandler := api.NewPracticeHandler(app.practiceService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.wordStore, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.logger)
	profileHandler := api.NewProfileHandler(app.profileStore, app.statsService, app.logger)
	writingHandler := api.NewWritingHandler(app.grader, app.reviewService, app.wordStore, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Word catalog
			r.Post("/words", wordHandler.CreateWord)
			r.Get("/words", wordHandler.ListWords)
			r.Get("/words/{id}", wordHandler.GetWord)
			r.Put("/words/{id}", wordHandler.UpdateWord)
			r.Delete("/words/{id}", wordHandler.DeleteWord)
			r.Get("/tags", wordHandler.ListTags)

			// Review scheduling
			r.Get("/reviews/due", reviewHandler.DueWords)
			r.Post("/words/{id}/review", reviewHandler.SubmitReview)
			r.Post("/words/{id}/attempt", reviewHandler.RecordAttempt)

			// Practice candidates and sessions
			r.Get("/practice/candidates", practiceHandler.Candidates)
			r.Post("/sessions", sessionHandler.StartSession)
			r.Post("/sessions/answers/{id}", sessionHandler.SubmitAnswer)

			// Learner profile and statistics
			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Get("/stats/daily", statsHandler.DailyStatus)

			// Writing feedback
			r.Post("/writing/feedback", writingHandler.Feedback)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
