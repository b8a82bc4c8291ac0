package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpattn/portfolio/internal/api"
	"github.com/rpattn/portfolio/internal/auth"
	"github.com/rpattn/portfolio/internal/config"
	"github.com/rpattn/portfolio/internal/db"
	"github.com/rpattn/portfolio/internal/export"
	"github.com/rpattn/portfolio/internal/repository"
	"github.com/rpattn/portfolio/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load(".")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.Secret == "" {
		logger.Error("auth.secret is required (PORTFOLIO_AUTH_SECRET)")
		os.Exit(1)
	}

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database, "./migrations"); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Create repositories
	projectRepo := repository.NewProjectRepository(conn.Pool)
	projectHistoryRepo := repository.NewProjectHistoryRepository(conn.Pool)
	standardRepo := repository.NewStandardRepository(conn.Pool)
	professionRepo := repository.NewProfessionRepository(conn.Pool)
	assessmentRepo := repository.NewAssessmentRepository(conn.Pool)
	assessmentHistoryRepo := repository.NewAssessmentHistoryRepository(conn.Pool)
	groupRepo := repository.NewDeliveryGroupRepository(conn.Pool)
	partnerRepo := repository.NewDeliveryPartnerRepository(conn.Pool)
	themeRepo := repository.NewThemeRepository(conn.Pool)

	// Create services
	projectService := service.NewProjectService(projectRepo, projectHistoryRepo, assessmentRepo, assessmentHistoryRepo, logger)
	assessmentService := service.NewAssessmentService(projectRepo, standardRepo, professionRepo, assessmentRepo, assessmentHistoryRepo, logger)
	exportService := export.NewService(projectRepo, standardRepo, logger)

	// Create handlers
	validate := api.NewValidator()
	router := api.NewRouter(api.RouterConfig{
		Projects:       api.NewProjectHandler(projectService, validate, logger),
		Assessments:    api.NewAssessmentHandler(assessmentService, validate, logger),
		Standards:      api.NewStandardHandler(standardRepo, validate, logger),
		Professions:    api.NewProfessionHandler(professionRepo, validate, logger),
		Metadata:       api.NewMetadataHandler(groupRepo, partnerRepo, themeRepo, validate, logger),
		Export:         export.NewHTTPHandler(exportService, logger),
		Verifier:       auth.NewVerifier(cfg.Auth.Secret),
		Log:            logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting portfolio API", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
