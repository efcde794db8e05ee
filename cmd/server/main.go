package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	attendanceapp "github.com/dormsync/backend/internal/application/attendance"
	billingapp "github.com/dormsync/backend/internal/application/billing"
	dashboardapp "github.com/dormsync/backend/internal/application/dashboard"
	facilityapp "github.com/dormsync/backend/internal/application/facility"
	housingapp "github.com/dormsync/backend/internal/application/housing"
	identityapp "github.com/dormsync/backend/internal/application/identity"
	notificationapp "github.com/dormsync/backend/internal/application/notification"
	"github.com/dormsync/backend/internal/infrastructure/auth"
	"github.com/dormsync/backend/internal/infrastructure/calendar"
	"github.com/dormsync/backend/internal/infrastructure/config"
	"github.com/dormsync/backend/internal/infrastructure/event"
	"github.com/dormsync/backend/internal/infrastructure/logger"
	"github.com/dormsync/backend/internal/infrastructure/mail"
	"github.com/dormsync/backend/internal/infrastructure/notification"
	"github.com/dormsync/backend/internal/infrastructure/persistence"
	"github.com/dormsync/backend/internal/infrastructure/scheduler"
	"github.com/dormsync/backend/internal/infrastructure/storage"
	"github.com/dormsync/backend/internal/interfaces/http/handler"
	"github.com/dormsync/backend/internal/interfaces/http/middleware"
	"github.com/dormsync/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			DormSync Backend API
//	@version		1.0
//	@description	Dormitory management back office: students, rooms, attendance, payments, and facility operations

//	@contact.name	API Support
//	@contact.url	https://github.com/dormsync/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting DormSync Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	profileRepo := persistence.NewGormStudentProfileRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	attendanceLogRepo := persistence.NewGormAttendanceLogRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRequestRepository(db.DB)
	cleaningRepo := persistence.NewGormCleaningScheduleRepository(db.DB)
	announcementRepo := persistence.NewGormAnnouncementRepository(db.DB)
	enrollmentScope := persistence.NewGormEnrollmentScope(db.DB)

	// Initialize JWT service and token blacklist. Redis failure falls back
	// to the in-memory blacklist so revocation never blocks startup.
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Initialize object storage for receipt and attachment uploads
	var billingStorage billingapp.ObjectStorage
	var facilityStorage facilityapp.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ensureCtx); err != nil {
			log.Warn("Could not ensure storage bucket, uploads may fail", zap.Error(err))
		}
		cancel()
		billingStorage = s3Storage
		facilityStorage = s3Storage
		log.Info("Object storage connected", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		stub := storage.NewStubObjectStorage()
		billingStorage = stub
		facilityStorage = stub
		log.Warn("Object storage not configured, uploads are held in memory")
	}

	// Optional outbound integrations: nil means disabled
	var calendarClient facilityapp.CalendarService
	if cfg.Calendar.BaseURL != "" {
		calendarClient = calendar.NewRESTClient(cfg.Calendar, log)
		log.Info("Calendar sync enabled", zap.String("calendar_id", cfg.Calendar.CalendarID))
	}
	// Initialize event bus and notification handlers
	eventBus := event.NewInMemoryEventBus(log)
	if cfg.Mail.Host != "" {
		var mailer notificationapp.Mailer = mail.NewSMTPMailer(cfg.Mail, log)
		maintenanceMailHandler := notificationapp.NewMaintenanceCreatedHandler(userRepo, mailer, log)
		eventBus.Subscribe(maintenanceMailHandler, maintenanceMailHandler.EventTypes()...)
		log.Info("Mail delivery enabled", zap.String("host", cfg.Mail.Host))
	}
	if cfg.Notification.Endpoint != "" {
		var pusher notificationapp.Pusher = notification.NewHTTPPushClient(cfg.Notification, log)
		urgentHandler := notificationapp.NewUrgentAnnouncementHandler(userRepo, pusher, log)
		eventBus.Subscribe(urgentHandler, urgentHandler.EventTypes()...)
		verifiedHandler := notificationapp.NewPaymentVerifiedHandler(userRepo, pusher, log)
		eventBus.Subscribe(verifiedHandler, verifiedHandler.EventTypes()...)
		log.Info("Push notifications enabled", zap.String("endpoint", cfg.Notification.Endpoint))
	} else {
		log.Info("Push notifications disabled")
	}

	// Initialize application services
	studentService := identityapp.NewStudentService(enrollmentScope, userRepo, profileRepo, log)
	studentService.SetEventPublisher(eventBus)
	authService := identityapp.NewAuthService(userRepo, profileRepo, studentService, jwtService, blacklist, log)
	roomService := housingapp.NewRoomService(roomRepo, profileRepo, log)
	attendanceService := attendanceapp.NewAttendanceService(attendanceLogRepo, userRepo, log)
	paymentService := billingapp.NewPaymentService(paymentRepo, userRepo, billingStorage, log)
	paymentService.SetEventPublisher(eventBus)
	maintenanceService := facilityapp.NewMaintenanceService(maintenanceRepo, userRepo, profileRepo, facilityStorage, log)
	maintenanceService.SetEventPublisher(eventBus)
	cleaningService := facilityapp.NewCleaningService(cleaningRepo, calendarClient, log)
	announcementService := facilityapp.NewAnnouncementService(announcementRepo, log)
	announcementService.SetEventPublisher(eventBus)
	dashboardService := dashboardapp.NewDashboardService(userRepo, maintenanceRepo, cleaningRepo, announcementRepo, paymentRepo, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService)
	roomHandler := handler.NewRoomHandler(roomService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	cleaningHandler := handler.NewCleaningHandler(cleaningService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler(db)

	// Start the nightly overdue payment sweep
	overdueScheduler := scheduler.NewOverdueScheduler(scheduler.DefaultOverdueSchedulerConfig(), paymentRepo, log)
	overdueScheduler.Start()

	// Configure gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	// Global middleware chain
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
	}

	// Liveness and readiness probes stay outside the authenticated surface
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// JWT authentication for everything below
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Auth routes: login is public, register is administrator-gated
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimit(authLimiter))
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/register", middleware.RequireAdmin(), authHandler.Register)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)

	// Student routes: enrollment, edits, and removal are administrator
	// operations
	studentRoutes := router.NewDomainGroup("students", "/students")
	studentRoutes.POST("", middleware.RequireAdmin(), studentHandler.Create)
	studentRoutes.GET("", studentHandler.List)
	studentRoutes.POST("/push-token", studentHandler.RegisterPushToken)
	studentRoutes.GET("/:id", studentHandler.Get)
	studentRoutes.PUT("/:id", middleware.RequireAdmin(), studentHandler.Update)
	studentRoutes.DELETE("/:id", middleware.RequireAdmin(), studentHandler.Delete)

	// Room routes: room inventory is administrator-managed
	roomRoutes := router.NewDomainGroup("rooms", "/rooms")
	roomRoutes.POST("", middleware.RequireAdmin(), roomHandler.Create)
	roomRoutes.GET("", roomHandler.List)
	roomRoutes.GET("/:id", roomHandler.Get)
	roomRoutes.PUT("/:id", middleware.RequireAdmin(), roomHandler.Update)
	roomRoutes.DELETE("/:id", middleware.RequireAdmin(), roomHandler.Delete)

	// Attendance routes: recording and overrides are administrator
	// operations, listings are open to any authenticated user
	attendanceRoutes := router.NewDomainGroup("attendance", "/attendance")
	attendanceRoutes.POST("", middleware.RequireAdmin(), attendanceHandler.RecordEvent)
	attendanceRoutes.GET("", attendanceHandler.ListByDate)
	attendanceRoutes.PATCH("/:id", middleware.RequireAdmin(), attendanceHandler.Override)
	attendanceRoutes.GET("/students/:id", attendanceHandler.ListByStudent)

	// Payment routes: students may view and upload receipts, everything
	// else is administrator-managed
	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.POST("", middleware.RequireAdmin(), paymentHandler.Create)
	paymentRoutes.POST("/bulk", middleware.RequireAdmin(), paymentHandler.CreateBulk)
	paymentRoutes.GET("", paymentHandler.List)
	paymentRoutes.GET("/:id", paymentHandler.Get)
	paymentRoutes.PUT("/:id", middleware.RequireAdmin(), paymentHandler.Update)
	paymentRoutes.POST("/:id/receipt", paymentHandler.UploadReceipt)
	paymentRoutes.DELETE("/:id", middleware.RequireAdmin(), paymentHandler.Delete)

	// Maintenance routes: any resident can file a request and attach a
	// photo, triage is administrator-only
	maintenanceRoutes := router.NewDomainGroup("maintenance", "/maintenance-requests")
	maintenanceRoutes.POST("", maintenanceHandler.Create)
	maintenanceRoutes.GET("", maintenanceHandler.List)
	maintenanceRoutes.GET("/:id", maintenanceHandler.Get)
	maintenanceRoutes.PUT("/:id", middleware.RequireAdmin(), maintenanceHandler.Update)
	maintenanceRoutes.POST("/:id/attachment", maintenanceHandler.UploadAttachment)
	maintenanceRoutes.DELETE("/:id", middleware.RequireAdmin(), maintenanceHandler.Delete)

	// Cleaning schedule routes
	cleaningRoutes := router.NewDomainGroup("cleaning", "/cleaning-schedules")
	cleaningRoutes.POST("", middleware.RequireAdmin(), cleaningHandler.Create)
	cleaningRoutes.GET("", cleaningHandler.List)
	cleaningRoutes.GET("/:id", cleaningHandler.Get)
	cleaningRoutes.PUT("/:id", middleware.RequireAdmin(), cleaningHandler.Update)
	cleaningRoutes.DELETE("/:id", middleware.RequireAdmin(), cleaningHandler.Delete)

	// Announcement routes
	announcementRoutes := router.NewDomainGroup("announcements", "/announcements")
	announcementRoutes.POST("", middleware.RequireAdmin(), announcementHandler.Create)
	announcementRoutes.GET("", announcementHandler.List)
	announcementRoutes.GET("/:id", announcementHandler.Get)
	announcementRoutes.PUT("/:id", middleware.RequireAdmin(), announcementHandler.Update)
	announcementRoutes.DELETE("/:id", middleware.RequireAdmin(), announcementHandler.Delete)

	// Dashboard routes
	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard")
	dashboardRoutes.GET("/stats", middleware.RequireAdmin(), dashboardHandler.GetStats)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "")
	systemRoutes.GET("/health", systemHandler.Health)
	systemRoutes.GET("/ready", systemHandler.Ready)
	systemRoutes.GET("/system/info", systemHandler.GetSystemInfo)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authRoutes).
		Register(studentRoutes).
		Register(roomRoutes).
		Register(attendanceRoutes).
		Register(paymentRoutes).
		Register(maintenanceRoutes).
		Register(cleaningRoutes).
		Register(announcementRoutes).
		Register(dashboardRoutes).
		Register(systemRoutes)
	r.Setup()

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

	overdueScheduler.Stop()
	eventBus.Drain()

	log.Info("Server exited gracefully")
}
