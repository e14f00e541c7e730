package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vcscsvcscs/healthguide/internal/cache"
	"github.com/vcscsvcscs/healthguide/internal/events"
	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// TrackerService records daily metrics and keeps the prescribed medication list
type TrackerService struct {
	entries   EntryRepositoryInterface
	meds      MedicationRepositoryInterface
	cache     cache.Cache
	publisher events.Publisher
	notes     NotesCipher
	logger    *zap.Logger
	now       func() time.Time
}

// NewTrackerService creates a new TrackerService. notes may be nil, in which case notes are stored in clear.
func NewTrackerService(
	entries EntryRepositoryInterface,
	meds MedicationRepositoryInterface,
	c cache.Cache,
	publisher events.Publisher,
	notes NotesCipher,
	logger *zap.Logger,
) *TrackerService {
	return &TrackerService{
		entries:   entries,
		meds:      meds,
		cache:     c,
		publisher: publisher,
		notes:     notes,
		logger:    logger,
		now:       time.Now,
	}
}

// Today returns the calendar day entries are saved under when no date is given
func (s *TrackerService) Today() string {
	return s.now().UTC().Format(model.DateLayout)
}

// SaveEntry scores and stores the metrics of a day, replacing any entry already saved for it.
// An empty date means today. When metrics carry no prescribed list the user's current list is used.
func (s *TrackerService) SaveEntry(ctx context.Context, userID, date string, metrics model.DailyMetrics) (*model.HealthEntry, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if date == "" {
		date = s.Today()
	} else if err := validateDate(date); err != nil {
		return nil, err
	}
	if err := ValidateMetrics(metrics); err != nil {
		return nil, err
	}

	if metrics.Medications.Prescribed == nil {
		prescribed, err := s.meds.ListPrescribed(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load prescribed medications: %w", err)
		}
		metrics.Medications.Prescribed = prescribed
	}

	entry := &model.HealthEntry{Date: date, Metrics: normalizeMetrics(metrics)}
	entry.Score = scoring.ComputeScore(entry.Metrics)

	if err := s.store(ctx, userID, entry); err != nil {
		return nil, err
	}

	s.logger.Info("health entry saved",
		zap.String("user_id", userID),
		zap.String("date", date),
		zap.Int("total_score", entry.Score.TotalScore),
		zap.String("rating", string(entry.Score.Rating)),
	)

	return entry, nil
}

// store persists entry with sealed notes, then invalidates cached analytics and announces the change
func (s *TrackerService) store(ctx context.Context, userID string, entry *model.HealthEntry) error {
	stored := *entry
	if s.notes != nil {
		sealed, err := s.notes.EncryptOptional(entry.Metrics.Notes)
		if err != nil {
			return fmt.Errorf("failed to encrypt notes: %w", err)
		}
		stored.Metrics.Notes = sealed
	}

	if err := s.entries.SaveEntry(ctx, userID, &stored); err != nil {
		s.logger.Error("failed to save health entry",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("date", entry.Date),
		)
		return fmt.Errorf("failed to save health entry: %w", err)
	}
	entry.UpdatedAt = stored.UpdatedAt

	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err), zap.String("user_id", userID))
	}

	if err := s.publisher.PublishEntrySaved(ctx, events.NewEntrySaved(userID, entry, s.now())); err != nil {
		s.logger.Warn("failed to publish entry event", zap.Error(err), zap.String("user_id", userID))
	}

	return nil
}

// PreviewScore scores metrics without saving them. userID may be empty, in which case only
// the prescribed list in metrics is used.
func (s *TrackerService) PreviewScore(ctx context.Context, userID string, metrics model.DailyMetrics) (model.ScoreBreakdown, error) {
	if err := ValidateMetrics(metrics); err != nil {
		return model.ScoreBreakdown{}, err
	}

	if metrics.Medications.Prescribed == nil && userID != "" {
		if err := validateUserID(userID); err != nil {
			return model.ScoreBreakdown{}, err
		}
		prescribed, err := s.meds.ListPrescribed(ctx, userID)
		if err != nil {
			return model.ScoreBreakdown{}, fmt.Errorf("failed to load prescribed medications: %w", err)
		}
		metrics.Medications.Prescribed = prescribed
	}

	return scoring.ComputeScore(normalizeMetrics(metrics)), nil
}

// GetEntry returns the entry of a single day
func (s *TrackerService) GetEntry(ctx context.Context, userID, date string) (*model.HealthEntry, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	entry, err := s.entries.GetEntry(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if err := s.openNotes(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// LoadEntries returns the user's whole entry collection keyed by date
func (s *TrackerService) LoadEntries(ctx context.Context, userID string) (map[string]model.HealthEntry, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	entries, err := s.entries.LoadEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	for date, entry := range entries {
		if err := s.openNotes(&entry); err != nil {
			return nil, err
		}
		entries[date] = entry
	}

	return entries, nil
}

func (s *TrackerService) openNotes(entry *model.HealthEntry) error {
	if s.notes == nil {
		return nil
	}
	opened, err := s.notes.DecryptOptional(entry.Metrics.Notes)
	if err != nil {
		s.logger.Error("failed to decrypt notes", zap.Error(err), zap.String("date", entry.Date))
		return fmt.Errorf("failed to decrypt notes: %w", err)
	}
	entry.Metrics.Notes = opened
	return nil
}

// ListPrescribedMedications returns the prescribed list in insertion order
func (s *TrackerService) ListPrescribedMedications(ctx context.Context, userID string) ([]string, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.meds.ListPrescribed(ctx, userID)
}

// AddPrescribedMedication appends a trimmed name. Empty names and duplicates are ignored.
func (s *TrackerService) AddPrescribedMedication(ctx context.Context, userID, name string) ([]string, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name != "" {
		added, err := s.meds.AddPrescribed(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to add prescribed medication: %w", err)
		}
		if added {
			s.logger.Info("prescribed medication added", zap.String("user_id", userID), zap.String("name", name))
		}
	}

	return s.meds.ListPrescribed(ctx, userID)
}

// RemovePrescribedMedication removes a name from the list and from today's taken medications,
// rescoring today's entry when one exists.
func (s *TrackerService) RemovePrescribedMedication(ctx context.Context, userID, name string) ([]string, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	if err := s.meds.RemovePrescribed(ctx, userID, name); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove prescribed medication: %w", err)
	}

	prescribed, err := s.meds.ListPrescribed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prescribed medications: %w", err)
	}

	if err := s.rescoreToday(ctx, userID, prescribed); err != nil {
		return nil, err
	}

	s.logger.Info("prescribed medication removed", zap.String("user_id", userID), zap.String("name", name))
	return prescribed, nil
}

func (s *TrackerService) rescoreToday(ctx context.Context, userID string, prescribed []string) error {
	entry, err := s.entries.GetEntry(ctx, userID, s.Today())
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load today's entry: %w", err)
	}
	if err := s.openNotes(entry); err != nil {
		return err
	}

	metrics := entry.Metrics
	metrics.Medications.Prescribed = prescribed
	entry.Metrics = normalizeMetrics(metrics)
	entry.Score = scoring.ComputeScore(entry.Metrics)

	return s.store(ctx, userID, entry)
}
