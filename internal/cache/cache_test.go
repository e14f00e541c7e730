package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type cachedValue struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

func setupRedis(t *testing.T) *redis.Client {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	return client
}

func TestRedisCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewRedisCache(setupRedis(t), time.Minute, zap.NewNop())
	key := Key("analytics", "2024-01-01", "2024-01-07")

	var got cachedValue
	slot, found, err := c.Get(ctx, "user-1", key, &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Slot("healthguide:user-1:0:analytics:2024-01-01:2024-01-07"), slot)

	want := cachedValue{Score: 82, Label: "Good"}
	require.NoError(t, c.Set(ctx, slot, want))

	_, found, err = c.Get(ctx, "user-1", key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	// other users are unaffected by an invalidation
	otherSlot, _, err := c.Get(ctx, "user-2", "k", &got)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, otherSlot, want))
	require.NoError(t, c.InvalidateUser(ctx, "user-1"))

	_, found, err = c.Get(ctx, "user-1", key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = c.Get(ctx, "user-2", "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRedisCache_WriteAfterInvalidationIsUnreachable(t *testing.T) {
	ctx := context.Background()
	c := NewRedisCache(setupRedis(t), time.Minute, zap.NewNop())
	key := Key("analytics", "2024-01-01", "2024-01-07")

	// a reader misses, then an entry is saved before it writes back
	var got cachedValue
	slot, found, err := c.Get(ctx, "user-1", key, &got)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.InvalidateUser(ctx, "user-1"))
	require.NoError(t, c.Set(ctx, slot, cachedValue{Score: 40, Label: "computed before save"}))

	fresh, found, err := c.Get(ctx, "user-1", key, &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NotEqual(t, slot, fresh)

	want := cachedValue{Score: 90, Label: "computed after save"}
	require.NoError(t, c.Set(ctx, fresh, want))

	_, found, err = c.Get(ctx, "user-1", key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestRedisCache_SetIgnoresEmptySlot(t *testing.T) {
	c := NewRedisCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), time.Minute, zap.NewNop())
	assert.NoError(t, c.Set(context.Background(), "", cachedValue{Score: 1}))
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = NoopCache{}

	slot, found, err := c.Get(ctx, "u", "k", &cachedValue{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, slot)
	require.NoError(t, c.Set(ctx, slot, cachedValue{Score: 1}))
	assert.NoError(t, c.InvalidateUser(ctx, "u"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "report:2024-01-01:2024-01-31:2024-02-01", Key("report", "2024-01-01", "2024-01-31", "2024-02-01"))
}
