package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vcscsvcscs/healthguide/internal/audit"
	"github.com/vcscsvcscs/healthguide/internal/azure"
	"github.com/vcscsvcscs/healthguide/internal/cache"
	"github.com/vcscsvcscs/healthguide/internal/chatbot"
	"github.com/vcscsvcscs/healthguide/internal/events"
	"github.com/vcscsvcscs/healthguide/internal/handler"
	"github.com/vcscsvcscs/healthguide/internal/middleware"
	"github.com/vcscsvcscs/healthguide/internal/pdf"
	"github.com/vcscsvcscs/healthguide/internal/repository"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"go.uber.org/zap"
)

// setupTestDatabase starts PostgreSQL in a container and applies the migrations
func setupTestDatabase(t *testing.T, ctx context.Context) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("healthguide_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Should be able to start PostgreSQL")

	dbURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	_, err = repository.Migrate(ctx, dbURL, zap.NewNop())
	require.NoError(t, err, "Should be able to apply migrations")

	db, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err, "Should be able to connect to database")
	require.NoError(t, db.Ping(ctx), "Should be able to ping database")

	cleanup := func() {
		db.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

// testEnv is the fully wired API over a real database
type testEnv struct {
	router   *gin.Engine
	db       *pgxpool.Pool
	reports  *azure.MemoryReportStorage
	profiles *repository.AccessTokenRepository
}

func newTestEnv(t *testing.T, db *pgxpool.Pool) *testEnv {
	logger := zap.NewNop()

	entryRepo := repository.NewHealthEntryRepository(db, logger)
	medicationRepo := repository.NewMedicationRepository(db, logger)
	recordRepo := repository.NewRecordRepository(db, logger)
	accessRepo := repository.NewAccessTokenRepository(db, logger)
	auditLogger := audit.NewLogger(db, logger)
	reportStorage := azure.NewMemoryReportStorage(logger)

	matcher, err := chatbot.NewSymptomMatcher(logger)
	require.NoError(t, err)

	trackerService := service.NewTrackerService(entryRepo, medicationRepo, cache.NoopCache{}, events.NoopPublisher{}, nil, logger)
	analyticsService := service.NewAnalyticsService(entryRepo, cache.NoopCache{}, logger)
	reportService := service.NewReportService(
		analyticsService,
		pdf.NewPDFGenerator(logger),
		reportStorage,
		repository.NewReportRepository(db, logger),
		accessRepo,
		auditLogger,
		logger,
	)
	chatService := service.NewChatService(repository.NewChatRepository(db, logger), matcher, nil, auditLogger, logger)

	doc, err := api.GetSwagger()
	require.NoError(t, err)

	server := &handler.APIHandler{
		System:    handler.NewSystemHandler(map[string]handler.Pinger{"database": db.Ping}, doc, logger),
		Tracker:   handler.NewTrackerHandler(trackerService, logger),
		Analytics: handler.NewAnalyticsHandler(analyticsService, logger),
		Report:    handler.NewReportHandler(reportService, logger),
		Chat:      handler.NewChatHandler(chatService, logger),
		Record:    handler.NewRecordHandler(service.NewRecordService(recordRepo, auditLogger, logger), logger),
		Access:    handler.NewAccessHandler(service.NewAccessService(accessRepo, recordRepo, auditLogger, logger), logger),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())
	api.RegisterHandlers(router, server)

	return &testEnv{router: router, db: db, reports: reportStorage, profiles: accessRepo}
}

// do sends a request with an optional JSON body
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "integration-test")
	w := httptest.NewRecorder()

	e.router.ServeHTTP(w, req)

	if w.Code >= http.StatusBadRequest {
		t.Logf("Response body: %s", w.Body.String())
	}
	return w
}

// decode asserts the status and decodes the JSON body
func decode[T any](t *testing.T, w *httptest.ResponseRecorder, status int) T {
	t.Helper()

	require.Equal(t, status, w.Code)
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "Should be able to parse response")
	return v
}
