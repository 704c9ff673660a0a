package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/config"
	"github.com/austral-erp/procurement-api/internal/database"
	"github.com/austral-erp/procurement-api/internal/http/handler"
	"github.com/austral-erp/procurement-api/internal/http/middleware"

	_ "github.com/austral-erp/procurement-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                    *config.Config
	logger                 *zap.Logger
	db                     *gorm.DB
	authMiddleware         *auth.Middleware
	purchaseRequestHandler *handler.PurchaseRequestHandler
	rfqHandler             *handler.RFQHandler
	approvalHandler        *handler.ApprovalHandler
	masterDataHandler      *handler.MasterDataHandler
	attachmentHandler      *handler.AttachmentHandler
	sequenceHandler        *handler.SequenceHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	purchaseRequestHandler *handler.PurchaseRequestHandler,
	rfqHandler *handler.RFQHandler,
	approvalHandler *handler.ApprovalHandler,
	masterDataHandler *handler.MasterDataHandler,
	attachmentHandler *handler.AttachmentHandler,
	sequenceHandler *handler.SequenceHandler,
) *Router {
	return &Router{
		cfg:                    cfg,
		logger:                 logger,
		db:                     db,
		authMiddleware:         authMiddleware,
		purchaseRequestHandler: purchaseRequestHandler,
		rfqHandler:             rfqHandler,
		approvalHandler:        approvalHandler,
		masterDataHandler:      masterDataHandler,
		attachmentHandler:      attachmentHandler,
		sequenceHandler:        sequenceHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(rt.cfg.App.Environment))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(middleware.RateLimit(&rt.cfg.RateLimit))

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		overall := "healthy"
		if !allHealthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": overall,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.RequireAuth)

		// Purchase requests
		r.Route("/purchase-requests", func(r chi.Router) {
			r.Get("/", rt.purchaseRequestHandler.List)
			r.Post("/", rt.purchaseRequestHandler.Create)
			r.Post("/group", rt.purchaseRequestHandler.Group)
			r.Get("/{id}", rt.purchaseRequestHandler.Get)
			r.Post("/{id}/direct-award", rt.purchaseRequestHandler.DirectAward)
		})

		// RFQs and their lifecycle
		r.Route("/rfqs", func(r chi.Router) {
			r.Get("/", rt.rfqHandler.List)
			r.Get("/{id}", rt.rfqHandler.Get)
			r.Put("/{id}/items", rt.rfqHandler.UpdateItems)
			r.Post("/{id}/send", rt.rfqHandler.Send)
			r.Post("/{id}/quotations", rt.rfqHandler.SaveQuotations)
			r.Post("/{id}/adjudicate", rt.rfqHandler.Adjudicate)
			r.Get("/{id}/activities", rt.rfqHandler.Activities)
			r.Get("/{id}/attachments", rt.attachmentHandler.List)
			r.Post("/{id}/attachments", rt.attachmentHandler.Upload)
		})

		// Attachments by file id
		r.Route("/attachments", func(r chi.Router) {
			r.Get("/{fileId}", rt.attachmentHandler.Download)
			r.Delete("/{fileId}", rt.attachmentHandler.Delete)
		})

		// Approval gate
		r.Route("/approvals", func(r chi.Router) {
			r.Get("/required-approver", rt.approvalHandler.RequiredApprover)
			r.Post("/{id}/approve", rt.approvalHandler.Approve)
			r.Post("/{id}/revert", rt.approvalHandler.Revert)
			r.Route("/rules", func(r chi.Router) {
				r.Get("/", rt.approvalHandler.ListRules)
				r.Post("/", rt.approvalHandler.CreateRule)
				r.Delete("/{id}", rt.approvalHandler.DeleteRule)
			})
		})

		// Master data (read surfaces)
		r.Get("/materials", rt.masterDataHandler.SearchMaterials)
		r.Get("/suppliers", rt.masterDataHandler.SearchSuppliers)
		r.Get("/contracts", rt.masterDataHandler.ListContracts)
		r.Get("/contracts/active/{materialId}", rt.masterDataHandler.ActiveContract)
		r.Get("/approvers", rt.masterDataHandler.ListApprovers)
		r.Get("/stock-levels", rt.masterDataHandler.ListStockLevels)

		// Numerator admin
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireRole(auth.RoleAdmin))
			r.Get("/numerators", rt.sequenceHandler.List)
			r.Post("/numerators/seed", rt.sequenceHandler.Seed)
		})
	})

	return r
}
