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

const tokenColumns = `
	id, user_id, record_id, token, password_hash, expires_at,
	access_count, is_revoked, created_at
`

// AccessTokenRepository manages QR access tokens and their access logs
type AccessTokenRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewAccessTokenRepository creates a new AccessTokenRepository
func NewAccessTokenRepository(db *pgxpool.Pool, logger *zap.Logger) *AccessTokenRepository {
	return &AccessTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new token
func (r *AccessTokenRepository) Create(ctx context.Context, token *model.AccessToken) error {
	query := `
		INSERT INTO qr_access_tokens (
			id, user_id, record_id, token, password_hash, expires_at,
			access_count, is_revoked, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, 0, false, $7)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.RecordID,
		token.Token,
		token.PasswordHash,
		token.ExpiresAt,
		token.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create access token",
			zap.Error(err),
			zap.String("token_id", token.ID),
			zap.String("user_id", token.UserID),
		)
		return fmt.Errorf("failed to create access token: %w", err)
	}

	return nil
}

// FindByToken retrieves a token by its secret value
func (r *AccessTokenRepository) FindByToken(ctx context.Context, value string) (*model.AccessToken, error) {
	query := `SELECT ` + tokenColumns + ` FROM qr_access_tokens WHERE token = $1`

	token, err := scanToken(r.db.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("access token: %w", ErrNotFound)
		}
		r.logger.Error("failed to find access token", zap.Error(err))
		return nil, fmt.Errorf("failed to find access token: %w", err)
	}

	return token, nil
}

// FindByID retrieves a token by ID
func (r *AccessTokenRepository) FindByID(ctx context.Context, tokenID string) (*model.AccessToken, error) {
	query := `SELECT ` + tokenColumns + ` FROM qr_access_tokens WHERE id = $1`

	token, err := scanToken(r.db.QueryRow(ctx, query, tokenID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("access token %s: %w", tokenID, ErrNotFound)
		}
		r.logger.Error("failed to find access token", zap.Error(err), zap.String("token_id", tokenID))
		return nil, fmt.Errorf("failed to find access token: %w", err)
	}

	return token, nil
}

// ListByUser retrieves a user's tokens, newest first
func (r *AccessTokenRepository) ListByUser(ctx context.Context, userID string) ([]model.AccessToken, error) {
	query := `SELECT ` + tokenColumns + `
		FROM qr_access_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list access tokens", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list access tokens: %w", err)
	}
	defer rows.Close()

	tokens := []model.AccessToken{}
	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			r.logger.Error("failed to scan access token", zap.Error(err))
			continue
		}
		tokens = append(tokens, *token)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating access tokens", zap.Error(err))
		return nil, fmt.Errorf("error iterating access tokens: %w", err)
	}

	return tokens, nil
}

// Revoke marks a token as revoked
func (r *AccessTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	result, err := r.db.Exec(ctx, `UPDATE qr_access_tokens SET is_revoked = true WHERE id = $1`, tokenID)
	if err != nil {
		r.logger.Error("failed to revoke access token", zap.Error(err), zap.String("token_id", tokenID))
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("access token %s: %w", tokenID, ErrNotFound)
	}

	return nil
}

// RecordAccess logs one successful use of a token and increments its access count
func (r *AccessTokenRepository) RecordAccess(ctx context.Context, entry *model.AccessLog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO qr_access_logs (id, token_id, accessed_at, ip_address, user_agent) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.TokenID, entry.AccessedAt, entry.IPAddress, entry.UserAgent,
	)
	if err != nil {
		r.logger.Error("failed to insert access log", zap.Error(err), zap.String("token_id", entry.TokenID))
		return fmt.Errorf("failed to insert access log: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE qr_access_tokens SET access_count = access_count + 1 WHERE id = $1`, entry.TokenID)
	if err != nil {
		r.logger.Error("failed to increment access count", zap.Error(err), zap.String("token_id", entry.TokenID))
		return fmt.Errorf("failed to increment access count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit access log: %w", err)
	}

	return nil
}

// ListLogs retrieves a token's access logs, newest first
func (r *AccessTokenRepository) ListLogs(ctx context.Context, tokenID string) ([]model.AccessLog, error) {
	query := `
		SELECT id, token_id, accessed_at, COALESCE(ip_address, ''), COALESCE(user_agent, '')
		FROM qr_access_logs
		WHERE token_id = $1
		ORDER BY accessed_at DESC
	`

	rows, err := r.db.Query(ctx, query, tokenID)
	if err != nil {
		r.logger.Error("failed to list access logs", zap.Error(err), zap.String("token_id", tokenID))
		return nil, fmt.Errorf("failed to list access logs: %w", err)
	}
	defer rows.Close()

	logs := []model.AccessLog{}
	for rows.Next() {
		var entry model.AccessLog
		if err := rows.Scan(&entry.ID, &entry.TokenID, &entry.AccessedAt, &entry.IPAddress, &entry.UserAgent); err != nil {
			r.logger.Error("failed to scan access log", zap.Error(err))
			continue
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating access logs", zap.Error(err))
		return nil, fmt.Errorf("error iterating access logs: %w", err)
	}

	return logs, nil
}

// OwnerName returns the profile name of a user, "" when the user has no named profile
func (r *AccessTokenRepository) OwnerName(ctx context.Context, userID string) (string, error) {
	var name *string
	err := r.db.QueryRow(ctx, `SELECT full_name FROM profiles WHERE user_id = $1`, userID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		r.logger.Error("failed to get profile name", zap.Error(err), zap.String("user_id", userID))
		return "", fmt.Errorf("failed to get profile name: %w", err)
	}

	if name == nil {
		return "", nil
	}
	return *name, nil
}

// UpsertProfile stores the display name of a user
func (r *AccessTokenRepository) UpsertProfile(ctx context.Context, userID, fullName string) error {
	query := `
		INSERT INTO profiles (user_id, full_name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, userID, fullName); err != nil {
		r.logger.Error("failed to upsert profile", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func scanToken(row pgx.Row) (*model.AccessToken, error) {
	var token model.AccessToken
	err := row.Scan(
		&token.ID,
		&token.UserID,
		&token.RecordID,
		&token.Token,
		&token.PasswordHash,
		&token.ExpiresAt,
		&token.AccessCount,
		&token.IsRevoked,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
