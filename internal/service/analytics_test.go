package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/internal/cache"
	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

func newTestAnalyticsService(entries *MockEntryRepository, c *MockCache) *AnalyticsService {
	svc := NewAnalyticsService(entries, c, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func scoredEntry(date string, metrics model.DailyMetrics) model.HealthEntry {
	return model.HealthEntry{Date: date, Metrics: metrics, Score: scoring.ComputeScore(metrics)}
}

func weekOfEntries() map[string]model.HealthEntry {
	entries := map[string]model.HealthEntry{}
	for i := 0; i < 7; i++ {
		date := analytics.AddDays("2024-03-15", -i)
		entries[date] = scoredEntry(date, perfectDay())
	}
	return entries
}

func missingCache() *MockCache {
	c := new(MockCache)
	c.On("Get", mock.Anything, testUserID, mock.Anything, mock.Anything).Return(false, nil)
	c.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return c
}

func TestResolveRange(t *testing.T) {
	svc := newTestAnalyticsService(new(MockEntryRepository), new(MockCache))

	tests := []struct {
		name    string
		query   RangeQuery
		want    analytics.DateRange
		wantErr string
	}{
		{name: "default is last 7 days", query: RangeQuery{}, want: analytics.DateRange{Start: "2024-03-09", End: "2024-03-15"}},
		{name: "last30", query: RangeQuery{Preset: analytics.PresetLast30}, want: analytics.DateRange{Start: "2024-02-15", End: "2024-03-15"}},
		{name: "explicit", query: RangeQuery{Start: "2024-01-01", End: "2024-01-31"}, want: analytics.DateRange{Start: "2024-01-01", End: "2024-01-31"}},
		{name: "start after end", query: RangeQuery{Start: "2024-02-01", End: "2024-01-31"}, wantErr: "after end date"},
		{name: "only start", query: RangeQuery{Start: "2024-01-01"}, wantErr: "together"},
		{name: "preset and dates", query: RangeQuery{Start: "2024-01-01", End: "2024-01-02", Preset: analytics.PresetAll}, wantErr: "either a preset"},
		{name: "unknown preset", query: RangeQuery{Preset: "last5"}, wantErr: "unknown date range preset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveRange(tt.query)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalytics_ComputesAndCaches(t *testing.T) {
	entries := new(MockEntryRepository)
	entries.On("LoadEntries", mock.Anything, testUserID).Return(weekOfEntries(), nil)
	c := missingCache()

	svc := newTestAnalyticsService(entries, c)
	result, r, err := svc.Analytics(context.Background(), testUserID, RangeQuery{})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", r.Start)
	assert.Len(t, result.DailyData, 7)
	assert.InDelta(t, 100, result.AvgScore, 0.001)
	assert.Equal(t, 7, result.Streak)

	c.AssertCalled(t, "Set", mock.Anything, cache.Slot("analytics:2024-03-09:2024-03-15"), mock.Anything)
}

func TestAnalytics_CacheHitSkipsRepository(t *testing.T) {
	entries := new(MockEntryRepository)
	c := new(MockCache)
	c.On("Get", mock.Anything, testUserID, "analytics:2024-03-09:2024-03-15", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(3).(*model.AnalyticsResult)
			dest.AvgScore = 64
		}).
		Return(true, nil)

	svc := newTestAnalyticsService(entries, c)
	result, _, err := svc.Analytics(context.Background(), testUserID, RangeQuery{})

	require.NoError(t, err)
	assert.Equal(t, 64.0, result.AvgScore)
	entries.AssertNotCalled(t, "LoadEntries", mock.Anything, mock.Anything)
}

func TestAnalytics_CacheFailureFallsBackToRepository(t *testing.T) {
	entries := new(MockEntryRepository)
	entries.On("LoadEntries", mock.Anything, testUserID).Return(map[string]model.HealthEntry{}, nil)
	c := new(MockCache)
	c.On("Get", mock.Anything, testUserID, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
	c.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := newTestAnalyticsService(entries, c)
	result, _, err := svc.Analytics(context.Background(), testUserID, RangeQuery{Preset: analytics.PresetLast30})

	require.NoError(t, err)
	assert.Empty(t, result.DailyData)
	assert.Equal(t, 0.0, result.AvgScore)
}

func TestAnalytics_RepositoryFailure(t *testing.T) {
	entries := new(MockEntryRepository)
	entries.On("LoadEntries", mock.Anything, testUserID).Return(nil, errors.New("timeout"))

	svc := newTestAnalyticsService(entries, missingCache())
	_, _, err := svc.Analytics(context.Background(), testUserID, RangeQuery{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load entries")
}

func TestReport_UsesTodayAndCurrentTime(t *testing.T) {
	entries := new(MockEntryRepository)
	entries.On("LoadEntries", mock.Anything, testUserID).Return(weekOfEntries(), nil)
	c := missingCache()

	svc := newTestAnalyticsService(entries, c)
	report, err := svc.Report(context.Background(), testUserID, RangeQuery{})

	require.NoError(t, err)
	assert.Equal(t, fixedNow, report.GeneratedAt)
	assert.InDelta(t, 100, report.CurrentScore, 0.001)
	assert.Equal(t, 7, report.DaysLogged)
	c.AssertCalled(t, "Set", mock.Anything, cache.Slot("report:2024-03-09:2024-03-15:2024-03-15"), mock.Anything)
}

func TestReport_CacheHitRefreshesGeneratedAt(t *testing.T) {
	c := new(MockCache)
	c.On("Get", mock.Anything, testUserID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(3).(*model.Report)
			dest.GeneratedAt = fixedNow.Add(-time.Hour)
			dest.AvgScore = 72
		}).
		Return(true, nil)

	svc := newTestAnalyticsService(new(MockEntryRepository), c)
	report, err := svc.Report(context.Background(), testUserID, RangeQuery{})

	require.NoError(t, err)
	assert.Equal(t, fixedNow, report.GeneratedAt)
	assert.Equal(t, 72.0, report.AvgScore)
}

func TestExportText(t *testing.T) {
	entries := new(MockEntryRepository)
	entries.On("LoadEntries", mock.Anything, testUserID).Return(weekOfEntries(), nil)

	svc := newTestAnalyticsService(entries, missingCache())
	filename, body, err := svc.ExportText(context.Background(), testUserID, RangeQuery{})

	require.NoError(t, err)
	assert.Equal(t, "health-report-2024-03-15.txt", filename)
	assert.True(t, strings.HasPrefix(body, "COMPREHENSIVE HEALTH REPORT"))
	assert.Contains(t, body, "Average Score: 100/100")
}
