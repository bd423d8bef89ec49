package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/api"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/config"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/database"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/logger"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/repository"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	// Create repositories
	sessionRepo := repository.NewSessionRepository(db, sessionKey(cfg, log))
	journalRepo := repository.NewJournalRepository(db)

	// Platform gateway client
	platformClient := platform.NewClient(cfg.Platform.BaseURL, cfg.Platform.Timeout)

	// Create services
	systemService := service.NewSystemService(db)
	authService := service.NewAuthService(platformClient, cfg.Platform.Timeout)
	dashboardService := service.NewDashboardService(platformClient, cfg.Platform.Timeout)
	workflowService := service.NewWorkflowService(
		platformClient,
		sessionRepo,
		journalRepo,
		service.LogNotifier{Log: log},
		cfg.Platform.Timeout,
		log,
	)

	// Reap idle sessions on a schedule
	reaper := cron.New()
	_, err = reaper.AddFunc(cfg.Session.ReapSpec, func() {
		if n := workflowService.ExpireIdle(cfg.Session.SoftTTL, cfg.Session.HardTTL); n > 0 {
			log.Info().Int("expired", n).Msg("Reaped idle sessions")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule session reaper")
	}
	reaper.Start()
	defer reaper.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		Auth:      authService,
		Workflow:  workflowService,
		Dashboard: dashboardService,
		System:    systemService,
		Journal:   journalRepo,
	}, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.Platform.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// sessionKey decodes the configured fernet key, or generates an ephemeral one
// when none is set. Ephemeral keys cannot decrypt tokens across restarts, so
// production deployments must configure SESSION_FERNET_KEY.
func sessionKey(cfg *config.Config, log zerolog.Logger) *fernet.Key {
	if cfg.Security.FernetKey != "" {
		key, err := fernet.DecodeKey(cfg.Security.FernetKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid SESSION_FERNET_KEY")
		}
		return key
	}

	var key fernet.Key
	if err := key.Generate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate session key")
	}
	log.Warn().Msg("SESSION_FERNET_KEY not set; using an ephemeral key")
	return &key
}
