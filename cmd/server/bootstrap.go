package main

import (
	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/handlers"
	"github.com/peopledesk/peopledesk/internal/models"
	"github.com/peopledesk/peopledesk/internal/services"
	"github.com/peopledesk/peopledesk/internal/utils"
	"github.com/peopledesk/peopledesk/pkg/logger"
)

// appServices holds the initialized handlers the router needs.
type appServices struct {
	cfg            *config.Config
	authHandler    *handlers.AuthHandler
	reviewHandler  *handlers.ReviewHandler
	companyHandler *handlers.CompanyHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	services.StartLogCleanupScheduler(models.GetDB(), cfg.Audit.RetentionDays)

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		cfg:            cfg,
		authHandler:    authHandler,
		reviewHandler:  handlers.NewReviewHandler(models.GetDB(), cfg),
		companyHandler: handlers.NewCompanyHandler(models.GetDB()),
	}
}

// shutdown gracefully stops background schedulers.
func (s *appServices) shutdown() {
	services.StopLogCleanupScheduler()
	logger.Info().Msg("All schedulers stopped")
}
