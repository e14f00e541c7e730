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

const recordColumns = `
	id, user_id, file_name, file_path, file_type, file_size, document_type,
	report_date::text, hospital_name, doctor_name, notes, tags, created_at
`

// RecordRepository manages medical record metadata
type RecordRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *pgxpool.Pool, logger *zap.Logger) *RecordRepository {
	return &RecordRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new record
func (r *RecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			id, user_id, file_name, file_path, file_type, file_size, document_type,
			report_date, hospital_name, doctor_name, notes, tags,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9, $10, $11, $12, $13, $13)
	`

	tags := record.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.FileName,
		record.FilePath,
		record.FileType,
		record.FileSize,
		record.DocumentType,
		record.ReportDate,
		record.HospitalName,
		record.DoctorName,
		record.Notes,
		tags,
		record.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create medical record",
			zap.Error(err),
			zap.String("record_id", record.ID),
			zap.String("user_id", record.UserID),
		)
		return fmt.Errorf("failed to create medical record: %w", err)
	}

	return nil
}

// FindByID retrieves a record by ID
func (r *RecordRepository) FindByID(ctx context.Context, recordID string) (*model.MedicalRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM medical_records WHERE id = $1`

	record, err := scanRecord(r.db.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("medical record %s: %w", recordID, ErrNotFound)
		}
		r.logger.Error("failed to find medical record", zap.Error(err), zap.String("record_id", recordID))
		return nil, fmt.Errorf("failed to find medical record: %w", err)
	}

	return record, nil
}

// ListByUser retrieves a user's records, newest first. A non-nil recordID narrows the result to that record.
func (r *RecordRepository) ListByUser(ctx context.Context, userID string, recordID *string) ([]model.MedicalRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM medical_records
		WHERE user_id = $1 AND ($2::uuid IS NULL OR id = $2::uuid)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, recordID)
	if err != nil {
		r.logger.Error("failed to list medical records", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	defer rows.Close()

	records := []model.MedicalRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			r.logger.Error("failed to scan medical record", zap.Error(err))
			continue
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating medical records", zap.Error(err))
		return nil, fmt.Errorf("error iterating medical records: %w", err)
	}

	return records, nil
}

// Delete removes a record
func (r *RecordRepository) Delete(ctx context.Context, recordID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, recordID)
	if err != nil {
		r.logger.Error("failed to delete medical record", zap.Error(err), zap.String("record_id", recordID))
		return fmt.Errorf("failed to delete medical record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medical record %s: %w", recordID, ErrNotFound)
	}

	return nil
}

func scanRecord(row pgx.Row) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.FileName,
		&record.FilePath,
		&record.FileType,
		&record.FileSize,
		&record.DocumentType,
		&record.ReportDate,
		&record.HospitalName,
		&record.DoctorName,
		&record.Notes,
		&record.Tags,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
