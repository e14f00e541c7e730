package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "health.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func entry(date string, steps int) *model.HealthEntry {
	metrics := model.DailyMetrics{Steps: steps, Exercise: model.Exercise{Type: model.ExerciseNone}}
	return &model.HealthEntry{Date: date, Metrics: metrics, Score: scoring.ComputeScore(metrics)}
}

func TestStore_SaveEntryUpsertsByDate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.SaveEntry(ctx, entry("2024-01-01", 1000)))
	require.NoError(t, store.SaveEntry(ctx, entry("2024-01-02", 2000)))
	require.NoError(t, store.SaveEntry(ctx, entry("2024-01-01", 12000)))

	entries, err := store.LoadEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 12000, entries["2024-01-01"].Metrics.Steps)
	assert.Equal(t, 15, entries["2024-01-01"].Score.Breakdown.Steps)
	assert.False(t, entries["2024-01-01"].UpdatedAt.IsZero())

	got, err := store.GetEntry(ctx, "2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, 2000, got.Metrics.Steps)

	_, err = store.GetEntry(ctx, "2024-01-03")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_PrescribedMedications(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	names, err := store.ListPrescribed(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	added, err := store.AddPrescribed(ctx, "Vitamin D")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.AddPrescribed(ctx, "Vitamin D")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = store.AddPrescribed(ctx, "Aspirin")
	require.NoError(t, err)

	names, err = store.ListPrescribed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vitamin D", "Aspirin"}, names)

	require.NoError(t, store.RemovePrescribed(ctx, "Vitamin D"))
	assert.True(t, errors.Is(store.RemovePrescribed(ctx, "Vitamin D"), ErrNotFound))
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "health.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveEntry(ctx, entry("2024-05-05", 5000)))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.LoadEntries(ctx)
	require.NoError(t, err)
	assert.Contains(t, entries, "2024-05-05")
}
