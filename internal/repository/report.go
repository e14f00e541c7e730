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

// ReportRepository records archived report documents
type ReportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores an archive record
func (r *ReportRepository) Create(ctx context.Context, archive *model.ReportArchive) error {
	query := `
		INSERT INTO reports (id, user_id, date_range_start, date_range_end, file_path, generated_at)
		VALUES ($1, $2, $3::date, $4::date, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		archive.ID,
		archive.UserID,
		archive.DateRangeStart,
		archive.DateRangeEnd,
		archive.FilePath,
		archive.GeneratedAt,
	)

	if err != nil {
		r.logger.Error("failed to create report archive",
			zap.Error(err),
			zap.String("report_id", archive.ID),
			zap.String("user_id", archive.UserID),
		)
		return fmt.Errorf("failed to create report archive: %w", err)
	}

	return nil
}

// FindByID retrieves an archive record by ID
func (r *ReportRepository) FindByID(ctx context.Context, reportID string) (*model.ReportArchive, error) {
	query := `
		SELECT id, user_id, date_range_start::text, date_range_end::text, file_path, generated_at
		FROM reports
		WHERE id = $1
	`

	var archive model.ReportArchive
	err := r.db.QueryRow(ctx, query, reportID).Scan(
		&archive.ID,
		&archive.UserID,
		&archive.DateRangeStart,
		&archive.DateRangeEnd,
		&archive.FilePath,
		&archive.GeneratedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report %s: %w", reportID, ErrNotFound)
		}
		r.logger.Error("failed to find report archive", zap.Error(err), zap.String("report_id", reportID))
		return nil, fmt.Errorf("failed to find report archive: %w", err)
	}

	return &archive, nil
}

// ListByUser retrieves a user's archived reports, newest first
func (r *ReportRepository) ListByUser(ctx context.Context, userID string) ([]model.ReportArchive, error) {
	query := `
		SELECT id, user_id, date_range_start::text, date_range_end::text, file_path, generated_at
		FROM reports
		WHERE user_id = $1
		ORDER BY generated_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list report archives", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list report archives: %w", err)
	}
	defer rows.Close()

	archives := []model.ReportArchive{}
	for rows.Next() {
		var archive model.ReportArchive
		err := rows.Scan(
			&archive.ID,
			&archive.UserID,
			&archive.DateRangeStart,
			&archive.DateRangeEnd,
			&archive.FilePath,
			&archive.GeneratedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan report archive", zap.Error(err))
			continue
		}
		archives = append(archives, archive)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating report archives", zap.Error(err))
		return nil, fmt.Errorf("error iterating report archives: %w", err)
	}

	return archives, nil
}
