package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// MedicationRepository manages a user's prescribed medication list
type MedicationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewMedicationRepository creates a new MedicationRepository
func NewMedicationRepository(db *pgxpool.Pool, logger *zap.Logger) *MedicationRepository {
	return &MedicationRepository{
		db:     db,
		logger: logger,
	}
}

// ListPrescribed returns the prescribed names in the order they were added
func (r *MedicationRepository) ListPrescribed(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT name
		FROM prescribed_medications
		WHERE user_id = $1
		ORDER BY created_at ASC, name ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list prescribed medications", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list prescribed medications: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			r.logger.Error("failed to scan prescribed medication", zap.Error(err))
			continue
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating prescribed medications", zap.Error(err))
		return nil, fmt.Errorf("error iterating prescribed medications: %w", err)
	}

	return names, nil
}

// AddPrescribed adds a name to the list. It reports false when the name was already present.
func (r *MedicationRepository) AddPrescribed(ctx context.Context, userID, name string) (bool, error) {
	query := `
		INSERT INTO prescribed_medications (user_id, name, created_at)
		VALUES ($1, $2, clock_timestamp())
		ON CONFLICT (user_id, name) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, userID, name)
	if err != nil {
		r.logger.Error("failed to add prescribed medication",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("name", name),
		)
		return false, fmt.Errorf("failed to add prescribed medication: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// RemovePrescribed removes a name from the list
func (r *MedicationRepository) RemovePrescribed(ctx context.Context, userID, name string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM prescribed_medications WHERE user_id = $1 AND name = $2`, userID, name)
	if err != nil {
		r.logger.Error("failed to remove prescribed medication",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("name", name),
		)
		return fmt.Errorf("failed to remove prescribed medication: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("prescribed medication %q: %w", name, ErrNotFound)
	}

	return nil
}
