package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	billingapp "github.com/atelier/backend/internal/application/billing"
	complianceapp "github.com/atelier/backend/internal/application/compliance"
	exportapp "github.com/atelier/backend/internal/application/export"
	identityapp "github.com/atelier/backend/internal/application/identity"
	inventoryapp "github.com/atelier/backend/internal/application/inventory"
	orderapp "github.com/atelier/backend/internal/application/order"
	reportingapp "github.com/atelier/backend/internal/application/reporting"
	schedulingapp "github.com/atelier/backend/internal/application/scheduling"
	workforceapp "github.com/atelier/backend/internal/application/workforce"
	orderdomain "github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/infrastructure/auth"
	"github.com/atelier/backend/internal/infrastructure/cache"
	"github.com/atelier/backend/internal/infrastructure/config"
	"github.com/atelier/backend/internal/infrastructure/event"
	"github.com/atelier/backend/internal/infrastructure/exporter"
	"github.com/atelier/backend/internal/infrastructure/logger"
	"github.com/atelier/backend/internal/infrastructure/persistence"
	"github.com/atelier/backend/internal/infrastructure/scheduler"
	"github.com/atelier/backend/internal/infrastructure/storage"
	"github.com/atelier/backend/internal/interfaces/http/handler"
	"github.com/atelier/backend/internal/interfaces/http/middleware"
	"github.com/atelier/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Atelier backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database with zap-backed gorm logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Shared Redis client for token blacklist, idempotency and readiness checks
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable at startup, token revocation and idempotency degrade", zap.Error(err))
		}
		cancel()
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	fabricRepo := persistence.NewGormFabricRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	performanceRepo := persistence.NewGormPerformanceRepository(db.DB)
	complianceRepo := persistence.NewGormComplianceRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	scheduleRepo := persistence.NewGormScheduleRepository(db.DB)
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	exportJobRepo := persistence.NewGormExportJobRepository(db.DB)
	analyticsRepo := persistence.NewGormAnalyticsRepository(db.DB)

	// Application services
	orderService := orderapp.NewService(orderRepo, fabricRepo)
	billingService := billingapp.NewService(invoiceRepo, paymentRepo, orderRepo)
	inventoryService := inventoryapp.NewService(fabricRepo, movementRepo)
	workforceService := workforceapp.NewService(employeeRepo, performanceRepo)
	complianceService := complianceapp.NewService(complianceRepo)
	reportingService := reportingapp.NewService(dashboardRepo, templateRepo, analyticsRepo)
	schedulingService := schedulingapp.NewService(log, scheduleRepo, equipmentRepo, ticketRepo, templateRepo)
	exportService := exportapp.NewService(exportJobRepo, templateRepo)

	// Authentication
	jwtService := auth.NewJWTService(cfg.JWT)
	tokenBlacklist := auth.NewRedisTokenBlacklistWithClient(redisClient)
	authService := identityapp.NewAuthService(
		employeeRepo,
		jwtService,
		tokenBlacklist,
		identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockDuration,
		},
		log,
	)

	// Idempotency store for event handlers and export double submits
	idempotencyStore := cache.NewRedisIdempotencyStoreWithClient(redisClient, "")
	exportService.SetIdempotencyStore(idempotencyStore)

	// In-process event bus: order confirmations book fabric out of stock
	eventBus := event.NewInMemoryEventBus(log)
	orderConfirmedHandler := inventoryapp.NewOrderConfirmedHandler(log, fabricRepo, movementRepo)
	eventBus.Subscribe(
		event.NewIdempotentHandler(orderConfirmedHandler, idempotencyStore, log),
		orderdomain.EventTypeOrderConfirmed,
	)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	orderService.SetEventPublisher(eventBus)
	billingService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	workforceService.SetEventPublisher(eventBus)
	complianceService.SetEventPublisher(eventBus)
	schedulingService.SetEventPublisher(eventBus)
	exportService.SetEventPublisher(eventBus)

	// Export artifact storage
	objectStore, err := storage.NewObjectStore(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object store", zap.Error(err))
	}

	// Export worker pool (if enabled)
	var exportPoolReporter handler.StatusReporter
	if cfg.Export.Enabled {
		extractor := exporter.NewDatasetExtractor(
			orderRepo,
			invoiceRepo,
			paymentRepo,
			fabricRepo,
			movementRepo,
			employeeRepo,
			performanceRepo,
			complianceRepo,
		)
		renderer, err := exporter.NewChromedpRenderer(&exporter.ChromedpConfig{
			DefaultTimeout: cfg.Export.JobTimeout,
			NoSandbox:      true,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer func() {
			if err := renderer.Close(); err != nil {
				log.Error("Error closing PDF renderer", zap.Error(err))
			}
		}()

		exportPool, err := exporter.NewWorkerPool(
			cfg.Export,
			exportJobRepo,
			templateRepo,
			extractor,
			renderer,
			objectStore,
			cfg.Storage.KeyPrefix,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize export worker pool", zap.Error(err))
		}
		if err := exportPool.Start(context.Background()); err != nil {
			log.Fatal("Failed to start export worker pool", zap.Error(err))
		}
		defer func() {
			if err := exportPool.Stop(context.Background()); err != nil {
				log.Error("Error stopping export worker pool", zap.Error(err))
			}
		}()
		exportPoolReporter = exportPool
		log.Info("Export worker pool started",
			zap.Int("workers", cfg.Export.Workers),
			zap.Duration("poll_interval", cfg.Export.PollInterval),
		)
	}

	// Schedule dispatcher (if enabled): due report schedules become export
	// jobs, due maintenance schedules open service tickets
	var dispatcherReporter handler.StatusReporter
	if cfg.Dispatch.Enabled {
		systemOperator, err := uuid.Parse(cfg.Dispatch.SystemOperator)
		if err != nil {
			log.Fatal("Invalid dispatch.system_operator, expected employee UUID", zap.Error(err))
		}
		schedulingService.SetExporter(exportService, systemOperator)

		dispatcher := scheduler.NewDispatcher(cfg.Dispatch, schedulingService, log)
		if err := dispatcher.Start(context.Background()); err != nil {
			log.Fatal("Failed to start schedule dispatcher", zap.Error(err))
		}
		defer func() {
			if err := dispatcher.Stop(context.Background()); err != nil {
				log.Error("Error stopping schedule dispatcher", zap.Error(err))
			}
		}()
		dispatcherReporter = dispatcher
		log.Info("Schedule dispatcher started",
			zap.Duration("sweep_interval", cfg.Dispatch.SweepInterval),
		)
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService)
	billingHandler := handler.NewBillingHandler(billingService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	workforceHandler := handler.NewWorkforceHandler(workforceService)
	complianceHandler := handler.NewComplianceHandler(complianceService)
	reportingHandler := handler.NewReportingHandler(reportingService)
	schedulingHandler := handler.NewSchedulingHandler(schedulingService)
	exportHandler := handler.NewExportHandler(exportService, objectStore)
	systemHandler := handler.NewSystemHandler(db, redisClient, dispatcherReporter, exportPoolReporter, exportService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Liveness and readiness endpoints (outside API versioning)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Stricter rate limit on credential endpoints (if enabled)
	var authGuards []gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGuards = append(authGuards, middleware.RateLimit(authLimiter))
	}

	// Authentication
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", append(authGuards, authHandler.Login)...)
	authRoutes.POST("/refresh", append(authGuards, authHandler.RefreshToken)...)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)

	// Tailoring orders
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/number/:number", orderHandler.GetByNumber)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.PUT("/:id", orderHandler.Update)
	orderRoutes.DELETE("/:id", middleware.RequireManager(), orderHandler.Delete)
	orderRoutes.POST("/:id/items", orderHandler.AddItem)
	orderRoutes.PUT("/:id/items/:item_id", orderHandler.UpdateItem)
	orderRoutes.DELETE("/:id/items/:item_id", orderHandler.RemoveItem)
	orderRoutes.POST("/:id/confirm", orderHandler.Confirm)
	orderRoutes.POST("/:id/start", orderHandler.StartWork)
	orderRoutes.POST("/:id/return-to-work", orderHandler.ReturnToWork)
	orderRoutes.POST("/:id/complete", orderHandler.Complete)
	orderRoutes.POST("/:id/fitting", orderHandler.ScheduleFitting)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.PUT("/:id/tailor", orderHandler.AssignTailor)

	// Invoices and payments
	invoiceRoutes := router.NewDomainGroup("invoices", "/invoices")
	invoiceRoutes.POST("", billingHandler.Create)
	invoiceRoutes.GET("", billingHandler.List)
	invoiceRoutes.GET("/overdue", billingHandler.ListOverdue)
	invoiceRoutes.GET("/outstanding-total", billingHandler.OutstandingTotal)
	invoiceRoutes.GET("/:id", billingHandler.Get)
	invoiceRoutes.POST("/:id/lines", billingHandler.AddLine)
	invoiceRoutes.POST("/:id/issue", billingHandler.Issue)
	invoiceRoutes.POST("/:id/payments", billingHandler.RecordPayment)
	invoiceRoutes.GET("/:id/payments", billingHandler.ListPayments)
	invoiceRoutes.POST("/:id/void", middleware.RequireManager(), billingHandler.Void)

	// Fabric inventory
	fabricRoutes := router.NewDomainGroup("fabrics", "/fabrics")
	fabricRoutes.POST("", inventoryHandler.Create)
	fabricRoutes.GET("", inventoryHandler.List)
	fabricRoutes.GET("/low-stock", inventoryHandler.ListLowStock)
	fabricRoutes.GET("/sku/:sku", inventoryHandler.GetBySKU)
	fabricRoutes.GET("/:id", inventoryHandler.Get)
	fabricRoutes.PUT("/:id", inventoryHandler.Update)
	fabricRoutes.PUT("/:id/unit-cost", inventoryHandler.SetUnitCost)
	fabricRoutes.PUT("/:id/reorder-level", inventoryHandler.SetReorderLevel)
	fabricRoutes.POST("/:id/movements", inventoryHandler.RecordMovement)
	fabricRoutes.GET("/:id/movements", inventoryHandler.ListMovements)
	fabricRoutes.POST("/:id/deactivate", middleware.RequireManager(), inventoryHandler.Deactivate)
	fabricRoutes.DELETE("/:id", middleware.RequireManager(), inventoryHandler.Delete)

	// Employees and performance
	employeeRoutes := router.NewDomainGroup("employees", "/employees")
	employeeRoutes.POST("", middleware.RequireAdmin(), workforceHandler.Create)
	employeeRoutes.GET("", middleware.RequireManager(), workforceHandler.List)
	employeeRoutes.GET("/:id", workforceHandler.Get)
	employeeRoutes.PUT("/:id", middleware.RequireAdmin(), workforceHandler.Update)
	employeeRoutes.PUT("/:id/role", middleware.RequireAdmin(), workforceHandler.ChangeRole)
	employeeRoutes.PUT("/:id/hourly-rate", middleware.RequireAdmin(), workforceHandler.SetHourlyRate)
	employeeRoutes.PUT("/:id/password", workforceHandler.ChangePassword)
	employeeRoutes.POST("/:id/reset-password", middleware.RequireAdmin(), workforceHandler.ResetPassword)
	employeeRoutes.POST("/:id/deactivate", middleware.RequireAdmin(), workforceHandler.Deactivate)
	employeeRoutes.POST("/:id/reactivate", middleware.RequireAdmin(), workforceHandler.Reactivate)
	employeeRoutes.POST("/:id/performance", middleware.RequireManager(), workforceHandler.RecordPerformance)
	employeeRoutes.GET("/:id/performance", middleware.RequireManager(), workforceHandler.ListPerformance)
	employeeRoutes.GET("/:id/performance/:year/:month", middleware.RequireManager(), workforceHandler.PeriodPerformance)

	// Compliance reports
	complianceRoutes := router.NewDomainGroup("compliance", "/compliance")
	complianceRoutes.POST("/reports", complianceHandler.File)
	complianceRoutes.GET("/reports", complianceHandler.List)
	complianceRoutes.GET("/reports/overdue", complianceHandler.ListOverdue)
	complianceRoutes.GET("/reports/:id", complianceHandler.Get)
	complianceRoutes.PUT("/reports/:id", complianceHandler.Update)
	complianceRoutes.POST("/reports/:id/review", middleware.RequireManager(), complianceHandler.StartReview)
	complianceRoutes.POST("/reports/:id/resolve", middleware.RequireManager(), complianceHandler.Resolve)
	complianceRoutes.POST("/reports/:id/escalate", middleware.RequireManager(), complianceHandler.Escalate)

	// Dashboards
	dashboardRoutes := router.NewDomainGroup("dashboards", "/dashboards")
	dashboardRoutes.POST("", reportingHandler.CreateDashboard)
	dashboardRoutes.POST("/from-template/:id", reportingHandler.CloneDashboard)
	dashboardRoutes.GET("", reportingHandler.ListDashboards)
	dashboardRoutes.GET("/default", reportingHandler.GetDefaultDashboard)
	dashboardRoutes.GET("/:id", reportingHandler.GetDashboard)
	dashboardRoutes.PUT("/:id", reportingHandler.UpdateDashboard)
	dashboardRoutes.PUT("/:id/layout", reportingHandler.ReplaceDashboardLayout)
	dashboardRoutes.POST("/:id/set-default", reportingHandler.SetDefaultDashboard)
	dashboardRoutes.DELETE("/:id", reportingHandler.DeleteDashboard)

	// Report templates
	templateRoutes := router.NewDomainGroup("templates", "/report-templates")
	templateRoutes.POST("", middleware.RequireManager(), reportingHandler.CreateTemplate)
	templateRoutes.GET("", reportingHandler.ListTemplates)
	templateRoutes.GET("/:id", reportingHandler.GetTemplate)
	templateRoutes.PUT("/:id", middleware.RequireManager(), reportingHandler.UpdateTemplate)
	templateRoutes.PUT("/:id/page-setup", middleware.RequireManager(), reportingHandler.SetTemplatePageSetup)
	templateRoutes.POST("/:id/deactivate", middleware.RequireManager(), reportingHandler.DeactivateTemplate)
	templateRoutes.POST("/:id/activate", middleware.RequireManager(), reportingHandler.ActivateTemplate)

	// Analytics
	analyticsRoutes := router.NewDomainGroup("analytics", "/analytics")
	analyticsRoutes.GET("/orders/summary", reportingHandler.OrderSummary)
	analyticsRoutes.GET("/revenue/trend", reportingHandler.RevenueTrend)
	analyticsRoutes.GET("/invoices/outstanding", reportingHandler.OutstandingInvoices)
	analyticsRoutes.GET("/fabric/consumption", reportingHandler.FabricConsumption)
	analyticsRoutes.GET("/employees/productivity", middleware.RequireManager(), reportingHandler.EmployeeProductivity)
	analyticsRoutes.GET("/compliance/open-items", reportingHandler.ComplianceOpenItems)

	// Report and maintenance schedules
	scheduleRoutes := router.NewDomainGroup("schedules", "/schedules")
	scheduleRoutes.POST("/reports", middleware.RequireManager(), schedulingHandler.CreateReportSchedule)
	scheduleRoutes.POST("/maintenance", middleware.RequireManager(), schedulingHandler.CreateMaintenanceSchedule)
	scheduleRoutes.GET("", schedulingHandler.ListSchedules)
	scheduleRoutes.GET("/:id", schedulingHandler.GetSchedule)
	scheduleRoutes.PUT("/:id/timing", middleware.RequireManager(), schedulingHandler.Reschedule)
	scheduleRoutes.PUT("/:id/recipients", middleware.RequireManager(), schedulingHandler.SetRecipients)
	scheduleRoutes.POST("/:id/pause", middleware.RequireManager(), schedulingHandler.PauseSchedule)
	scheduleRoutes.POST("/:id/resume", middleware.RequireManager(), schedulingHandler.ResumeSchedule)
	scheduleRoutes.DELETE("/:id", middleware.RequireManager(), schedulingHandler.DeleteSchedule)
	scheduleRoutes.POST("/dispatch", middleware.RequireAdmin(), schedulingHandler.Dispatch)

	// Equipment and maintenance tickets
	equipmentRoutes := router.NewDomainGroup("equipment", "/equipment")
	equipmentRoutes.POST("", middleware.RequireManager(), schedulingHandler.RegisterEquipment)
	equipmentRoutes.GET("", schedulingHandler.ListEquipment)
	equipmentRoutes.GET("/:id", schedulingHandler.GetEquipment)
	equipmentRoutes.PUT("/:id/location", middleware.RequireManager(), schedulingHandler.RelocateEquipment)
	equipmentRoutes.POST("/:id/retire", middleware.RequireManager(), schedulingHandler.RetireEquipment)
	equipmentRoutes.GET("/:id/tickets", schedulingHandler.ListTicketsByEquipment)

	ticketRoutes := router.NewDomainGroup("tickets", "/tickets")
	ticketRoutes.GET("/open", schedulingHandler.ListOpenTickets)
	ticketRoutes.POST("/:id/complete", schedulingHandler.CompleteTicket)
	ticketRoutes.POST("/:id/skip", schedulingHandler.SkipTicket)

	// Export jobs
	exportRoutes := router.NewDomainGroup("exports", "/exports")
	exportRoutes.POST("", exportHandler.Enqueue)
	exportRoutes.GET("", middleware.RequireManager(), exportHandler.List)
	exportRoutes.GET("/mine", exportHandler.ListMine)
	exportRoutes.GET("/stats", middleware.RequireManager(), exportHandler.Stats)
	exportRoutes.GET("/:id", exportHandler.Get)
	exportRoutes.POST("/:id/cancel", exportHandler.Cancel)
	exportRoutes.POST("/:id/retry", middleware.RequireAdmin(), exportHandler.Retry)
	exportRoutes.GET("/:id/download", exportHandler.Download)

	// System
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/stats", middleware.RequireAdmin(), systemHandler.GetStats)

	// Register all domain groups
	r.Register(authRoutes).
		Register(orderRoutes).
		Register(invoiceRoutes).
		Register(fabricRoutes).
		Register(employeeRoutes).
		Register(complianceRoutes).
		Register(dashboardRoutes).
		Register(templateRoutes).
		Register(analyticsRoutes).
		Register(scheduleRoutes).
		Register(equipmentRoutes).
		Register(ticketRoutes).
		Register(exportRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
