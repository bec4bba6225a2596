package main

import (
	"fmt"
	"log"

	"cablecheck/internal/config"
	"cablecheck/internal/domain"
	"cablecheck/internal/extractor"
	"cablecheck/internal/handler"
	"cablecheck/internal/oracle"
	"cablecheck/internal/oracle/azureopenai"
	"cablecheck/internal/repository/postgres"
	"cablecheck/internal/router"
	"cablecheck/internal/service"
)

// @title Cablecheck API
// @version 1.0
// @description Cable design validation service
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	designRepo := postgres.NewDesignRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	// Oracle client is a single long-lived handle shared by all requests.
	mode := oracle.Mode(cfg.Validation.Mode)
	oracleClient := azureopenai.NewClient(&cfg.Oracle, mode)

	// Initialize pipeline components
	ext := extractor.New(extractor.Mode(cfg.Validation.Mode))
	normalizer := oracle.NewNormalizer(domain.ValidationStatus(cfg.Validation.DefaultStatus))

	// Initialize services and handlers
	designSvc := service.NewDesignService(designRepo, oracleClient, ext, normalizer, auditRepo)
	designH := handler.NewDesignHandler(designSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, designH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
