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

// ChatRepository manages symptom-checker chat sessions and their messages
type ChatRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool, logger *zap.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession creates a new chat session
func (r *ChatRepository) CreateSession(ctx context.Context, session *model.ChatSession) error {
	query := `
		INSERT INTO chat_sessions (id, user_id, title, age_group, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Title,
		session.AgeGroup,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create chat session", zap.Error(err), zap.String("session_id", session.ID))
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	return nil
}

// GetSession retrieves a session with its messages in chronological order
func (r *ChatRepository) GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error) {
	query := `
		SELECT id, user_id, title, age_group, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1
	`

	var session model.ChatSession
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.AgeGroup,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("chat session %s: %w", sessionID, ErrNotFound)
		}
		r.logger.Error("failed to get chat session", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	messages, err := r.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Messages = messages

	return &session, nil
}

// ListSessions retrieves a user's sessions, most recently active first, without messages
func (r *ChatRepository) ListSessions(ctx context.Context, userID string) ([]model.ChatSession, error) {
	query := `
		SELECT id, user_id, title, age_group, created_at, updated_at
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list chat sessions", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	defer rows.Close()

	sessions := []model.ChatSession{}
	for rows.Next() {
		var session model.ChatSession
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Title,
			&session.AgeGroup,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan chat session", zap.Error(err))
			continue
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating chat sessions", zap.Error(err))
		return nil, fmt.Errorf("error iterating chat sessions: %w", err)
	}

	return sessions, nil
}

// AddMessages appends messages to a session and bumps its activity time in one transaction
func (r *ChatRepository) AddMessages(ctx context.Context, sessionID string, messages ...model.ChatMessage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, msg := range messages {
		_, err := tx.Exec(ctx,
			`INSERT INTO chat_messages (id, session_id, role, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
			msg.ID, sessionID, msg.Role, msg.Content, msg.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to save chat message",
				zap.Error(err),
				zap.String("session_id", sessionID),
				zap.String("message_id", msg.ID),
			)
			return fmt.Errorf("failed to save chat message: %w", err)
		}
	}

	result, err := tx.Exec(ctx, `UPDATE chat_sessions SET updated_at = NOW() WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update chat session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat session %s: %w", sessionID, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chat messages: %w", err)
	}

	return nil
}

// GetMessages retrieves all messages of a session
func (r *ChatRepository) GetMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.logger.Error("failed to get chat messages", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to get chat messages: %w", err)
	}
	defer rows.Close()

	messages := []model.ChatMessage{}
	for rows.Next() {
		var msg model.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			r.logger.Error("failed to scan chat message", zap.Error(err))
			continue
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating chat messages", zap.Error(err))
		return nil, fmt.Errorf("error iterating chat messages: %w", err)
	}

	return messages, nil
}

// DeleteSession removes a session and, by cascade, its messages
func (r *ChatRepository) DeleteSession(ctx context.Context, sessionID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM chat_sessions WHERE id = $1`, sessionID)
	if err != nil {
		r.logger.Error("failed to delete chat session", zap.Error(err), zap.String("session_id", sessionID))
		return fmt.Errorf("failed to delete chat session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat session %s: %w", sessionID, ErrNotFound)
	}

	return nil
}
