package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/healthguide/internal/audit"
	"github.com/vcscsvcscs/healthguide/internal/security"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// Messages shown to whoever opens a QR access link
const (
	AccessInvalidMessage   = "Invalid or expired access link"
	AccessRevokedMessage   = "This access link has been revoked"
	AccessExpiredMessage   = "This access link has expired"
	AccessPasswordMessage  = "Incorrect password"
	AccessGenericMessage   = "Something went wrong. Please try again."
	AccessRecordsMessage   = "Failed to load medical records"
	defaultAccessOwnerName = "User"
)

var expiryDurations = map[model.ExpiresIn]time.Duration{
	model.ExpiresInHour: time.Hour,
	model.ExpiresInDay:  24 * time.Hour,
	model.ExpiresInWeek: 7 * 24 * time.Hour,
}

// NewAccessToken describes the link a user wants to share
type NewAccessToken struct {
	RecordID  *string
	ExpiresIn model.ExpiresIn
	Password  *string
}

// AccessRequest is one attempt to open a QR access link
type AccessRequest struct {
	Token     string
	Password  *string
	IPAddress string
	UserAgent string
}

// AccessService issues QR access links and resolves them for viewers
type AccessService struct {
	tokens  AccessTokenRepositoryInterface
	records RecordRepositoryInterface
	audit   audit.Recorder
	logger  *zap.Logger
	now     func() time.Time
}

// NewAccessService creates a new AccessService
func NewAccessService(tokens AccessTokenRepositoryInterface, records RecordRepositoryInterface, auditor audit.Recorder, logger *zap.Logger) *AccessService {
	return &AccessService{
		tokens:  tokens,
		records: records,
		audit:   auditor,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateAccessToken issues a new link. A scoped link must point at one of the user's own records.
func (s *AccessService) CreateAccessToken(ctx context.Context, userID string, in NewAccessToken) (*model.AccessToken, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	if in.ExpiresIn == "" {
		in.ExpiresIn = model.ExpiresInDay
	}
	var expiresAt *time.Time
	switch in.ExpiresIn {
	case model.ExpiresInNever:
	case model.ExpiresInHour, model.ExpiresInDay, model.ExpiresInWeek:
		t := s.now().Add(expiryDurations[in.ExpiresIn])
		expiresAt = &t
	default:
		return nil, validationError("invalid expiry: %s", in.ExpiresIn)
	}

	if in.RecordID != nil {
		if _, err := uuid.Parse(*in.RecordID); err != nil {
			return nil, validationError("record ID must be a UUID")
		}
		record, err := s.records.FindByID(ctx, *in.RecordID)
		if err != nil {
			return nil, err
		}
		if record.UserID != userID {
			return nil, fmt.Errorf("record %s: %w", *in.RecordID, ErrForbidden)
		}
	}

	var passwordHash *string
	if in.Password != nil && *in.Password != "" {
		hash, err := security.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	token := &model.AccessToken{
		ID:           uuid.New().String(),
		UserID:       userID,
		RecordID:     in.RecordID,
		Token:        uuid.New().String(),
		PasswordHash: passwordHash,
		ExpiresAt:    expiresAt,
		CreatedAt:    s.now(),
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	s.record(ctx, audit.AuditLog{UserID: userID, OperationType: audit.OperationCreate, ResourceID: token.ID})

	s.logger.Info("access token created",
		zap.String("token_id", token.ID),
		zap.String("user_id", userID),
		zap.String("expires_in", string(in.ExpiresIn)),
		zap.Bool("password_protected", passwordHash != nil),
	)

	return token, nil
}

// ListAccessTokens returns the user's links, newest first
func (s *AccessService) ListAccessTokens(ctx context.Context, userID string) ([]model.AccessToken, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.tokens.ListByUser(ctx, userID)
}

// RevokeAccessToken disables a link permanently
func (s *AccessService) RevokeAccessToken(ctx context.Context, tokenID string) error {
	token, err := s.findByID(ctx, tokenID)
	if err != nil {
		return err
	}

	if err := s.tokens.Revoke(ctx, tokenID); err != nil {
		return err
	}
	s.record(ctx, audit.AuditLog{UserID: token.UserID, OperationType: audit.OperationUpdate, ResourceID: tokenID})

	s.logger.Info("access token revoked", zap.String("token_id", tokenID), zap.String("user_id", token.UserID))
	return nil
}

// GetAccessLogs returns the uses of a link, newest first
func (s *AccessService) GetAccessLogs(ctx context.Context, tokenID string) ([]model.AccessLog, error) {
	if _, err := s.findByID(ctx, tokenID); err != nil {
		return nil, err
	}
	return s.tokens.ListLogs(ctx, tokenID)
}

// ResolveAccess checks a link and returns the records it grants. Failures are reported in the
// result, never as an error, so viewers only ever see the fixed messages.
func (s *AccessService) ResolveAccess(ctx context.Context, req AccessRequest) model.AccessResult {
	if req.Token == "" {
		return denied(AccessInvalidMessage)
	}

	token, err := s.tokens.FindByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return denied(AccessInvalidMessage)
		}
		s.logger.Error("failed to resolve access token", zap.Error(err))
		return denied(AccessGenericMessage)
	}

	if token.IsRevoked {
		return denied(AccessRevokedMessage)
	}
	if token.ExpiresAt != nil && !s.now().Before(*token.ExpiresAt) {
		return denied(AccessExpiredMessage)
	}

	ownerName := s.ownerName(ctx, token.UserID)

	if token.RequiresPassword() {
		if req.Password == nil || *req.Password == "" {
			return model.AccessResult{OK: true, OwnerName: ownerName, RequiresPassword: true}
		}
		ok, err := security.CheckPassword(*token.PasswordHash, *req.Password)
		if err != nil {
			s.logger.Error("failed to check access password", zap.Error(err), zap.String("token_id", token.ID))
			return denied(AccessGenericMessage)
		}
		if !ok {
			s.logger.Warn("incorrect access password", zap.String("token_id", token.ID), zap.String("ip_address", req.IPAddress))
			return denied(AccessPasswordMessage)
		}
	}

	entry := &model.AccessLog{
		ID:         uuid.New().String(),
		TokenID:    token.ID,
		AccessedAt: s.now(),
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
	}
	if err := s.tokens.RecordAccess(ctx, entry); err != nil {
		s.logger.Error("failed to record access", zap.Error(err), zap.String("token_id", token.ID))
		return denied(AccessGenericMessage)
	}

	records, err := s.records.ListByUser(ctx, token.UserID, token.RecordID)
	if err != nil {
		s.logger.Error("failed to load shared records", zap.Error(err), zap.String("token_id", token.ID))
		return denied(AccessRecordsMessage)
	}

	s.record(ctx, audit.AuditLog{
		UserID:        token.UserID,
		OperationType: audit.OperationRead,
		ResourceID:    token.ID,
		IPAddress:     req.IPAddress,
		UserAgent:     req.UserAgent,
		AdditionalData: map[string]any{
			"records": len(records),
		},
	})

	s.logger.Info("access link opened",
		zap.String("token_id", token.ID),
		zap.String("user_id", token.UserID),
		zap.Int("records", len(records)),
	)

	return model.AccessResult{
		OK:               true,
		OwnerName:        ownerName,
		RequiresPassword: token.RequiresPassword(),
		Records:          records,
	}
}

func (s *AccessService) findByID(ctx context.Context, tokenID string) (*model.AccessToken, error) {
	if _, err := uuid.Parse(tokenID); err != nil {
		return nil, validationError("token ID must be a UUID")
	}
	return s.tokens.FindByID(ctx, tokenID)
}

func (s *AccessService) ownerName(ctx context.Context, userID string) string {
	name, err := s.tokens.OwnerName(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load owner name", zap.Error(err), zap.String("user_id", userID))
	}
	if name == "" {
		return defaultAccessOwnerName
	}
	return name
}

func (s *AccessService) record(ctx context.Context, entry audit.AuditLog) {
	entry.ResourceType = audit.ResourceAccessToken
	entry.Timestamp = s.now()
	if err := s.audit.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit log", zap.Error(err), zap.String("token_id", entry.ResourceID))
	}
}

func denied(message string) model.AccessResult {
	return model.AccessResult{OK: false, Error: message}
}
