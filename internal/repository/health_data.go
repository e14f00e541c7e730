package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// HealthEntryRepository stores one scored entry per user and calendar day
type HealthEntryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewHealthEntryRepository creates a new HealthEntryRepository
func NewHealthEntryRepository(db *pgxpool.Pool, logger *zap.Logger) *HealthEntryRepository {
	return &HealthEntryRepository{
		db:     db,
		logger: logger,
	}
}

// SaveEntry inserts the entry or replaces the existing one for the same day
func (r *HealthEntryRepository) SaveEntry(ctx context.Context, userID string, entry *model.HealthEntry) error {
	query := `
		INSERT INTO health_entries (
			user_id, entry_date, metrics,
			total_score, breakdown, rating, color,
			created_at, updated_at
		) VALUES ($1, $2::date, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (user_id, entry_date) DO UPDATE
		SET metrics = EXCLUDED.metrics,
		    total_score = EXCLUDED.total_score,
		    breakdown = EXCLUDED.breakdown,
		    rating = EXCLUDED.rating,
		    color = EXCLUDED.color,
		    updated_at = NOW()
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		userID,
		entry.Date,
		entry.Metrics,
		entry.Score.TotalScore,
		entry.Score.Breakdown,
		entry.Score.Rating,
		entry.Score.Color,
	).Scan(&entry.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to save health entry",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("date", entry.Date),
		)
		return fmt.Errorf("failed to save health entry: %w", err)
	}

	return nil
}

// GetEntry retrieves the entry of a single day
func (r *HealthEntryRepository) GetEntry(ctx context.Context, userID, date string) (*model.HealthEntry, error) {
	query := `
		SELECT entry_date::text, metrics, total_score, breakdown, rating, color, updated_at
		FROM health_entries
		WHERE user_id = $1 AND entry_date = $2::date
	`

	var entry model.HealthEntry
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&entry.Date,
		&entry.Metrics,
		&entry.Score.TotalScore,
		&entry.Score.Breakdown,
		&entry.Score.Rating,
		&entry.Score.Color,
		&entry.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("health entry %s: %w", date, ErrNotFound)
		}
		r.logger.Error("failed to get health entry", zap.Error(err), zap.String("user_id", userID), zap.String("date", date))
		return nil, fmt.Errorf("failed to get health entry: %w", err)
	}

	return &entry, nil
}

// LoadEntries retrieves the user's whole entry collection keyed by calendar day
func (r *HealthEntryRepository) LoadEntries(ctx context.Context, userID string) (map[string]model.HealthEntry, error) {
	query := `
		SELECT entry_date::text, metrics, total_score, breakdown, rating, color, updated_at
		FROM health_entries
		WHERE user_id = $1
		ORDER BY entry_date ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to load health entries", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to load health entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]model.HealthEntry)
	for rows.Next() {
		var entry model.HealthEntry
		err := rows.Scan(
			&entry.Date,
			&entry.Metrics,
			&entry.Score.TotalScore,
			&entry.Score.Breakdown,
			&entry.Score.Rating,
			&entry.Score.Color,
			&entry.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan health entry", zap.Error(err), zap.String("user_id", userID))
			return nil, fmt.Errorf("failed to scan health entry: %w", err)
		}
		entries[entry.Date] = entry
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating health entries", zap.Error(err))
		return nil, fmt.Errorf("error iterating health entries: %w", err)
	}

	return entries, nil
}

// DeleteEntry removes the entry of a single day
func (r *HealthEntryRepository) DeleteEntry(ctx context.Context, userID, date string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM health_entries WHERE user_id = $1 AND entry_date = $2::date`, userID, date)
	if err != nil {
		r.logger.Error("failed to delete health entry", zap.Error(err), zap.String("user_id", userID), zap.String("date", date))
		return fmt.Errorf("failed to delete health entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("health entry %s: %w", date, ErrNotFound)
	}

	return nil
}
