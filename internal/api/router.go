package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/handlers"
	custommiddleware "github.com/seunghoon34/Pandora-Workflow-Backend/internal/api/middleware"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/config"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/repository"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/service"
)

// Services bundles everything the router serves.
type Services struct {
	Auth      *service.AuthService
	Workflow  *service.WorkflowService
	Dashboard *service.DashboardService
	System    *service.SystemService
	Journal   *repository.JournalRepository
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svc.Auth)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/pandora", func(r chi.Router) {
			pandoraHandler := handlers.NewPandoraHandler(svc.Workflow)
			r.Get("/questionnaire", pandoraHandler.Questionnaire)

			r.Route("/sessions", func(r chi.Router) {
				r.With(custommiddleware.RequireCredentials).Post("/", pandoraHandler.Open)

				r.Route("/{sessionID}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateSessionIDMiddleware)
					r.Get("/", pandoraHandler.Get)
					r.Put("/answers", pandoraHandler.UpdateAnswers)
					r.Post("/submit", pandoraHandler.Submit)
					r.Post("/regenerate", pandoraHandler.Regenerate)
					r.Post("/purchase", pandoraHandler.Purchase)
					r.Get("/allocation", pandoraHandler.Allocation)
					r.Delete("/", pandoraHandler.Close)
				})
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(custommiddleware.RequireCredentials)
			dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
			r.Get("/", dashboardHandler.Dashboard)
		})

		r.Route("/journal", func(r chi.Router) {
			r.Use(custommiddleware.RequireCredentials)
			journalHandler := handlers.NewJournalHandler(svc.Journal)
			r.Get("/events", journalHandler.Events)
			r.Get("/purchases", journalHandler.Purchases)
		})
	})

	return r
}
