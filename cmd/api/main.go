package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/docs"
	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/config"
	"github.com/austral-erp/procurement-api/internal/database"
	"github.com/austral-erp/procurement-api/internal/erp"
	"github.com/austral-erp/procurement-api/internal/http/handler"
	"github.com/austral-erp/procurement-api/internal/http/router"
	"github.com/austral-erp/procurement-api/internal/jobs"
	"github.com/austral-erp/procurement-api/internal/logger"
	"github.com/austral-erp/procurement-api/internal/repository"
	"github.com/austral-erp/procurement-api/internal/service"
	"github.com/austral-erp/procurement-api/internal/storage"
)

// @title Austral Procurement API
// @version 1.0
// @description Procurement front end for purchase requests, RFQs, split adjudication and purchase order approval

// @contact.name API Support
// @contact.email soporte@austral-erp.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "procurement-staging.austral-erp.com"
	case "production":
		docs.SwaggerInfo.Host = "api.austral-erp.com"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize ERP connection (optional, read-only master data source).
	// The app runs without it when disabled or unreachable.
	var erpClient *erp.Client
	if cfg.ERP.Enabled {
		erpClient, err = erp.NewClient(&cfg.ERP, log)
		if err != nil {
			log.Warn("ERP connection failed, continuing without master data sync",
				zap.Error(err),
			)
		} else if erpClient != nil {
			log.Info("ERP connected",
				zap.Int("max_open_conns", cfg.ERP.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.ERP.QueryTimeout),
			)
		}
	} else {
		log.Info("ERP connection disabled")
	}

	// Initialize repositories
	numeratorRepo := repository.NewNumeratorRepository(db)
	requestRepo := repository.NewPurchaseRequestRepository(db)
	rfqRepo := repository.NewRFQRepository(db)
	ruleRepo := repository.NewApprovalRuleRepository(db)
	contractRepo := repository.NewContractRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	userRepo := repository.NewUserRepository(db)
	stockRepo := repository.NewStockLevelRepository(db)
	fileRepo := repository.NewFileRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	sequenceService := service.NewSequenceService(numeratorRepo, log)
	rfqService := service.NewRFQService(rfqRepo, supplierRepo, activityRepo, log)
	adjudicationService := service.NewAdjudicationService(rfqRepo, activityRepo, log)
	requestService := service.NewRequestService(requestRepo, rfqRepo, contractRepo, supplierRepo, activityRepo, sequenceService, log)
	approvalService := service.NewApprovalService(rfqRepo, ruleRepo, activityRepo, sequenceService, log)
	masterDataService := service.NewMasterDataService(materialRepo, supplierRepo, contractRepo, userRepo, stockRepo, log)
	attachmentService := service.NewAttachmentService(fileRepo, rfqRepo, fileStorage, log)
	syncService := service.NewSyncService(erpClient, materialRepo, supplierRepo, log)
	replenishmentService := service.NewReplenishmentService(stockRepo, requestRepo, sequenceService, log)

	// Ensure document numerators exist before the first draw
	if err := sequenceService.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed numerators: %w", err)
	}

	// Initialize middleware
	jwtValidator := auth.NewJWTValidator(&cfg.JWT)
	authMiddleware := auth.NewMiddleware(jwtValidator, log)

	// Initialize handlers
	purchaseRequestHandler := handler.NewPurchaseRequestHandler(requestService, log)
	rfqHandler := handler.NewRFQHandler(rfqService, adjudicationService, log)
	approvalHandler := handler.NewApprovalHandler(approvalService, log)
	masterDataHandler := handler.NewMasterDataHandler(masterDataService, log)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, log)
	sequenceHandler := handler.NewSequenceHandler(sequenceService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		purchaseRequestHandler,
		rfqHandler,
		approvalHandler,
		masterDataHandler,
		attachmentHandler,
		sequenceHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.MasterDataSyncEnabled || cfg.Jobs.ReplenishmentEnabled {
		scheduler = jobs.NewScheduler(log)

		if cfg.Jobs.MasterDataSyncEnabled {
			if erpClient != nil && erpClient.IsEnabled() {
				syncJob := jobs.NewMasterDataSyncJob(syncService, log, cfg.ERP.QueryTimeoutDuration())
				if err := scheduler.AddJob(jobs.MasterDataSyncJobName, cfg.Jobs.MasterDataSyncSchedule, syncJob.Run); err != nil {
					log.Error("Failed to register master data sync job", zap.Error(err))
				}
			} else {
				log.Warn("master data sync enabled but ERP connection unavailable")
			}
		}

		if cfg.Jobs.ReplenishmentEnabled {
			replenishmentJob := jobs.NewReplenishmentJob(replenishmentService, cfg.Jobs.ReplenishmentWarehouse, log, 5*time.Minute)
			if err := scheduler.AddJob(jobs.ReplenishmentJobName, cfg.Jobs.ReplenishmentSchedule, replenishmentJob.Run); err != nil {
				log.Error("Failed to register replenishment job", zap.Error(err))
			}
		}

		scheduler.Start()
		log.Info("Scheduler started", zap.Strings("jobs", scheduler.GetJobNames()))
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close ERP connection if initialized
		if erpClient != nil {
			if err := erpClient.Close(); err != nil {
				log.Warn("Error closing ERP connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
