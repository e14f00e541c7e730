package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/vcscsvcscs/healthguide/internal/audit"
	"github.com/vcscsvcscs/healthguide/internal/azure"
	"github.com/vcscsvcscs/healthguide/internal/cache"
	"github.com/vcscsvcscs/healthguide/internal/chatbot"
	"github.com/vcscsvcscs/healthguide/internal/config"
	"github.com/vcscsvcscs/healthguide/internal/events"
	"github.com/vcscsvcscs/healthguide/internal/handler"
	"github.com/vcscsvcscs/healthguide/internal/logging"
	"github.com/vcscsvcscs/healthguide/internal/middleware"
	"github.com/vcscsvcscs/healthguide/internal/pdf"
	"github.com/vcscsvcscs/healthguide/internal/repository"
	"github.com/vcscsvcscs/healthguide/internal/security"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger, err := logging.New(cfg.Server.Environment, cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	if cfg.Database.AutoMigrate {
		applied, err := repository.Migrate(context.Background(), cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Migrations applied", zap.Int("count", applied))
	}

	pool, err := newPool(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Successfully connected to database")

	checks := map[string]handler.Pinger{"database": pool.Ping}

	// Analytics cache
	var analyticsCache cache.Cache = cache.NoopCache{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		analyticsCache = cache.NewRedisCache(rdb, cfg.Redis.TTL, logger)
		checks["cache"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		logger.Info("Analytics cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// Entry events
	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		logger.Info("Entry events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer publisher.Close()

	// Report archive storage
	var reportStorage azure.ReportStorage
	if cfg.Azure.Storage.Enabled() {
		reportStorage, err = azure.NewBlobStorageClient(
			cfg.Azure.Storage.AccountName,
			cfg.Azure.Storage.AccountKey,
			cfg.Azure.Storage.BlobEndpoint,
			cfg.Azure.Storage.ReportContainer,
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to initialize report blob storage client", zap.Error(err))
		}
	} else {
		logger.Warn("Azure storage not configured, archived reports are kept in memory")
		reportStorage = azure.NewMemoryReportStorage(logger)
	}

	// Symptom extraction is a fallback for messages the keyword matcher cannot place
	var extractor service.Extractor
	if cfg.Azure.OpenAI.Enabled() {
		openAIClient, err := azure.NewOpenAIClient(
			cfg.Azure.OpenAI.Endpoint,
			cfg.Azure.OpenAI.APIKey,
			cfg.Azure.OpenAI.Deployment,
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to initialize Azure OpenAI client", zap.Error(err))
		}
		extractor = service.NewSymptomExtractor(openAIClient, logger)
	}

	var notes service.NotesCipher
	key, err := cfg.Security.Key()
	if err != nil {
		logger.Fatal("Failed to read encryption key", zap.Error(err))
	}
	if key != nil {
		encryptor, err := security.NewEncryptor(key)
		if err != nil {
			logger.Fatal("Failed to initialize notes encryption", zap.Error(err))
		}
		notes = encryptor
	}

	matcher, err := chatbot.NewSymptomMatcher(logger)
	if err != nil {
		logger.Fatal("Failed to load disease knowledge base", zap.Error(err))
	}

	// Initialize repositories
	entryRepo := repository.NewHealthEntryRepository(pool, logger)
	medicationRepo := repository.NewMedicationRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)
	chatRepo := repository.NewChatRepository(pool, logger)
	recordRepo := repository.NewRecordRepository(pool, logger)
	accessRepo := repository.NewAccessTokenRepository(pool, logger)
	auditLogger := audit.NewLogger(pool, logger)

	// Initialize services
	trackerService := service.NewTrackerService(entryRepo, medicationRepo, analyticsCache, publisher, notes, logger)
	analyticsService := service.NewAnalyticsService(entryRepo, analyticsCache, logger)
	reportService := service.NewReportService(
		analyticsService,
		pdf.NewPDFGenerator(logger),
		reportStorage,
		reportRepo,
		accessRepo,
		auditLogger,
		logger,
	)
	chatService := service.NewChatService(chatRepo, matcher, extractor, auditLogger, logger)
	recordService := service.NewRecordService(recordRepo, auditLogger, logger)
	accessService := service.NewAccessService(accessRepo, recordRepo, auditLogger, logger)

	doc, err := api.GetSwagger()
	if err != nil {
		logger.Fatal("Failed to load OpenAPI document", zap.Error(err))
	}

	apiHandler := &handler.APIHandler{
		System:    handler.NewSystemHandler(checks, doc, logger),
		Tracker:   handler.NewTrackerHandler(trackerService, logger),
		Analytics: handler.NewAnalyticsHandler(analyticsService, logger),
		Report:    handler.NewReportHandler(reportService, logger),
		Chat:      handler.NewChatHandler(chatService, logger),
		Record:    handler.NewRecordHandler(recordService, logger),
		Access:    handler.NewAccessHandler(accessService, logger),
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	r := newRouter(cfg, apiHandler, limiter, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newPool(cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	return pgxpool.NewWithConfig(context.Background(), poolCfg)
}

// newRouter builds the gin engine with the middleware chain and every API route
func newRouter(cfg *config.Config, server api.ServerInterface, limiter *middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// must be first
	r.Use(middleware.RecoveryMiddleware(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID", "X-Trace-ID"},
		AllowCredentials: !allowsAnyOrigin(cfg.Server.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.TracingMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// public endpoints
	r.Use(middleware.RateLimitMiddleware(limiter, logger, "/api/v1/access/", "/api/v1/chat/"))

	api.RegisterHandlers(r, server)

	return r
}

// cors rejects credentials together with a wildcard origin
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
