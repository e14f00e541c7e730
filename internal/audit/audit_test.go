package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vcscsvcscs/healthguide/internal/repository"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("audit_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	_, err = repository.Migrate(ctx, connString, zap.NewNop())
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestLogger_LogAndList(t *testing.T) {
	ctx := context.Background()
	auditLogger := NewLogger(setupTestDB(t), zap.NewNop())

	userID := uuid.New().String()
	base := time.Now().Add(-time.Hour)

	require.NoError(t, auditLogger.Log(ctx, AuditLog{
		UserID:        userID,
		OperationType: OperationCreate,
		ResourceType:  ResourceMedicalRecord,
		ResourceID:    "rec-1",
		Timestamp:     base,
		IPAddress:     "10.0.0.1",
	}))
	require.NoError(t, auditLogger.Log(ctx, AuditLog{
		UserID:         userID,
		OperationType:  OperationRead,
		ResourceType:   ResourceAccessToken,
		ResourceID:     "tok-1",
		Timestamp:      base.Add(time.Minute),
		AdditionalData: map[string]any{"records": 2},
	}))

	logs, err := auditLogger.GetAuditLogs(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, OperationRead, logs[0].OperationType)
	assert.Equal(t, ResourceAccessToken, logs[0].ResourceType)
	assert.Equal(t, "", logs[0].IPAddress)
	assert.Equal(t, "10.0.0.1", logs[1].IPAddress)

	logs, err = auditLogger.GetAuditLogs(ctx, userID, 1)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = NopRecorder{}
	assert.NoError(t, r.Log(context.Background(), AuditLog{}))
}
