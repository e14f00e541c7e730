package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/internal/cache"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// RangeQuery selects an analytics period either explicitly or by preset.
// An empty query means the last 7 days.
type RangeQuery struct {
	Start  string
	End    string
	Preset analytics.Preset
}

// AnalyticsService computes analytics and reports over a user's stored entries
type AnalyticsService struct {
	entries EntryRepositoryInterface
	cache   cache.Cache
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(entries EntryRepositoryInterface, c cache.Cache, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		entries: entries,
		cache:   c,
		logger:  logger,
		now:     time.Now,
	}
}

// ResolveRange turns a query into an inclusive date range
func (s *AnalyticsService) ResolveRange(q RangeQuery) (analytics.DateRange, error) {
	switch {
	case q.Start != "" || q.End != "":
		if q.Start == "" || q.End == "" {
			return analytics.DateRange{}, validationError("start and end must be given together")
		}
		if q.Preset != "" {
			return analytics.DateRange{}, validationError("use either a preset or start and end")
		}
		r, err := analytics.NewDateRange(q.Start, q.End)
		if err != nil {
			return analytics.DateRange{}, validationError("%s", err)
		}
		return r, nil
	default:
		preset := q.Preset
		if preset == "" {
			preset = analytics.PresetLast7
		}
		r, err := analytics.PresetRange(preset, s.today())
		if err != nil {
			return analytics.DateRange{}, validationError("%s", err)
		}
		return r, nil
	}
}

// Analytics returns the analytics of the selected period
func (s *AnalyticsService) Analytics(ctx context.Context, userID string, q RangeQuery) (*model.AnalyticsResult, analytics.DateRange, error) {
	if err := validateUserID(userID); err != nil {
		return nil, analytics.DateRange{}, err
	}
	r, err := s.ResolveRange(q)
	if err != nil {
		return nil, analytics.DateRange{}, err
	}

	key := cache.Key("analytics", r.Start, r.End)
	var result model.AnalyticsResult
	slot, hit := s.cached(ctx, userID, key, &result)
	if hit {
		return &result, r, nil
	}

	entries, err := s.load(ctx, userID)
	if err != nil {
		return nil, r, err
	}

	result = analytics.ComputeAnalytics(entries, r.Start, r.End)
	s.remember(ctx, userID, slot, result)

	s.logger.Debug("analytics computed",
		zap.String("user_id", userID),
		zap.String("start_date", r.Start),
		zap.String("end_date", r.End),
		zap.Int("entries", len(entries)),
	)

	return &result, r, nil
}

// Report returns the formatted report of the selected period
func (s *AnalyticsService) Report(ctx context.Context, userID string, q RangeQuery) (*model.Report, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	r, err := s.ResolveRange(q)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	// the current score depends on today's entry
	key := cache.Key("report", r.Start, r.End, now.Format(model.DateLayout))

	var report model.Report
	slot, hit := s.cached(ctx, userID, key, &report)
	if hit {
		report.GeneratedAt = now
		return &report, nil
	}

	entries, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	report = analytics.GenerateReport(entries, r.Start, r.End, now)
	s.remember(ctx, userID, slot, report)

	return &report, nil
}

// ExportText renders the report of the selected period as a downloadable text file
func (s *AnalyticsService) ExportText(ctx context.Context, userID string, q RangeQuery) (filename, body string, err error) {
	report, err := s.Report(ctx, userID, q)
	if err != nil {
		return "", "", err
	}
	return analytics.ExportFilename(*report), analytics.FormatText(*report), nil
}

func (s *AnalyticsService) load(ctx context.Context, userID string) (map[string]model.HealthEntry, error) {
	entries, err := s.entries.LoadEntries(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load entries", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return entries, nil
}

// cached returns the slot the result must be remembered in after a miss
func (s *AnalyticsService) cached(ctx context.Context, userID, key string, dest any) (cache.Slot, bool) {
	slot, found, err := s.cache.Get(ctx, userID, key, dest)
	if err != nil {
		s.logger.Warn("analytics cache read failed", zap.Error(err), zap.String("user_id", userID))
		return slot, false
	}
	return slot, found
}

func (s *AnalyticsService) remember(ctx context.Context, userID string, slot cache.Slot, value any) {
	if slot == "" {
		return
	}
	if err := s.cache.Set(ctx, slot, value); err != nil {
		s.logger.Warn("analytics cache write failed", zap.Error(err), zap.String("user_id", userID))
	}
}

func (s *AnalyticsService) today() string {
	return s.now().UTC().Format(model.DateLayout)
}
