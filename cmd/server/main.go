package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/fittrack/backend/internal/application/billing"
	membershipapp "github.com/fittrack/backend/internal/application/membership"
	"github.com/fittrack/backend/internal/infrastructure/cache"
	"github.com/fittrack/backend/internal/infrastructure/config"
	"github.com/fittrack/backend/internal/infrastructure/event"
	"github.com/fittrack/backend/internal/infrastructure/logger"
	"github.com/fittrack/backend/internal/infrastructure/persistence"
	"github.com/fittrack/backend/internal/interfaces/http/handler"
	"github.com/fittrack/backend/internal/interfaces/http/middleware"
	"github.com/fittrack/backend/internal/interfaces/http/router"
)

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

	log.Info("Starting FitTrack Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Connect to database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connection established")

	// Repositories
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	// Monthly summary cache
	summaryCache, err := cache.NewSummaryCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to create summary cache", zap.Error(err))
	}

	// Event bus with audit logging of domain events
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Failed to stop event bus", zap.Error(err))
		}
	}()

	// Application services
	memberService := membershipapp.NewMemberService(memberRepo, eventBus)
	paymentService := billingapp.NewPaymentService(paymentRepo, memberRepo, summaryCache, eventBus)

	// HTTP handlers
	memberHandler := handler.NewMemberHandler(memberService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside the API version prefix)
	engine.GET("/health", healthHandler(db, log))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	memberGroup := router.NewDomainGroup("membership", "/members")
	memberGroup.POST("/", memberHandler.Create)
	memberGroup.GET("/", memberHandler.List)
	memberGroup.GET("/filter", memberHandler.Filter)
	memberGroup.GET("/search/:key", memberHandler.Search)
	memberGroup.GET("/id/:id", memberHandler.GetByID)
	memberGroup.GET("/memberid/:memberId", memberHandler.GetByMemberID)
	memberGroup.PUT("/id/:id", memberHandler.UpdateByID)
	memberGroup.PUT("/memberid/:memberId", memberHandler.UpdateByMemberID)
	memberGroup.DELETE("/id/:id", memberHandler.DeleteByID)
	memberGroup.DELETE("/memberid/:memberId", memberHandler.DeleteByMemberID)

	paymentGroup := router.NewDomainGroup("billing", "/payments")
	paymentGroup.POST("/", paymentHandler.Record)
	paymentGroup.GET("/", paymentHandler.List)
	paymentGroup.GET("/member/id/:id", paymentHandler.ListByMemberRef)
	paymentGroup.GET("/member/memberid/:memberId", paymentHandler.ListByMemberID)
	paymentGroup.GET("/summary/monthly", paymentHandler.MonthlySummary)
	paymentGroup.PUT("/:id", paymentHandler.Update)
	paymentGroup.DELETE("/id/:id", paymentHandler.Delete)

	systemGroup := router.NewDomainGroup("system", "/system")
	systemGroup.GET("/info", systemHandler.GetSystemInfo)
	systemGroup.GET("/ping", systemHandler.Ping)

	r.Register(memberGroup).Register(paymentGroup).Register(systemGroup)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// healthHandler reports liveness and database connectivity
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
