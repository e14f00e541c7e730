package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/healthguide/internal/audit"
	"github.com/vcscsvcscs/healthguide/internal/chatbot"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

const (
	maxTitleLength   = 50
	defaultChatTitle = "New conversation"
	maxMessageLength = 2000
)

// Matcher answers symptom descriptions
type Matcher interface {
	Classify(message string, ageGroup model.AgeGroup) chatbot.Reply
}

// Extractor finds symptom keywords in free text
type Extractor interface {
	ExtractSymptoms(ctx context.Context, message string) (*ExtractedSymptoms, error)
}

// ChatService runs symptom-checker conversations and keeps their history
type ChatService struct {
	repo      ChatRepositoryInterface
	matcher   Matcher
	extractor Extractor
	audit     audit.Recorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewChatService creates a new ChatService. extractor may be nil.
func NewChatService(repo ChatRepositoryInterface, matcher Matcher, extractor Extractor, auditor audit.Recorder, logger *zap.Logger) *ChatService {
	return &ChatService{
		repo:      repo,
		matcher:   matcher,
		extractor: extractor,
		audit:     auditor,
		logger:    logger,
		now:       time.Now,
	}
}

// Respond answers a single message without storing anything
func (s *ChatService) Respond(ctx context.Context, message string, ageGroup model.AgeGroup) (chatbot.Reply, error) {
	ageGroup, err := normalizeAgeGroup(ageGroup)
	if err != nil {
		return chatbot.Reply{}, err
	}
	if err := validateMessage(message); err != nil {
		return chatbot.Reply{}, err
	}
	return s.reply(ctx, message, ageGroup), nil
}

// reply classifies message, retrying with model-extracted symptoms when the rules find nothing
func (s *ChatService) reply(ctx context.Context, message string, ageGroup model.AgeGroup) chatbot.Reply {
	reply := s.matcher.Classify(message, ageGroup)
	if reply.Kind != chatbot.ReplyFallback || s.extractor == nil {
		return reply
	}

	extracted, err := s.extractor.ExtractSymptoms(ctx, message)
	if err != nil {
		s.logger.Warn("symptom extraction unavailable, using rule reply", zap.Error(err))
		return reply
	}

	rephrased := extracted.Rephrase()
	if rephrased == "" {
		return reply
	}

	retry := s.matcher.Classify(rephrased, ageGroup)
	s.logger.Debug("reclassified with extracted symptoms",
		zap.Strings("symptoms", extracted.Symptoms),
		zap.String("kind", string(retry.Kind)),
	)
	return retry
}

// CreateSession starts a conversation. When firstMessage is not empty it is answered straight away
// and its first 50 characters become the title.
func (s *ChatService) CreateSession(ctx context.Context, userID string, ageGroup model.AgeGroup, firstMessage string) (*model.ChatSession, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	ageGroup, err := normalizeAgeGroup(ageGroup)
	if err != nil {
		return nil, err
	}

	firstMessage = strings.TrimSpace(firstMessage)
	title := defaultChatTitle
	if firstMessage != "" {
		if err := validateMessage(firstMessage); err != nil {
			return nil, err
		}
		title = sessionTitle(firstMessage)
	}

	now := s.now()
	session := &model.ChatSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		AgeGroup:  ageGroup,
		Messages:  []model.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	if firstMessage != "" {
		messages, err := s.exchange(ctx, session, firstMessage)
		if err != nil {
			// a session is only kept once its first message is stored
			if delErr := s.repo.DeleteSession(ctx, session.ID); delErr != nil {
				s.logger.Warn("failed to remove chat session after message failure",
					zap.Error(delErr),
					zap.String("session_id", session.ID),
				)
			}
			return nil, err
		}
		session.Messages = messages
		session.UpdatedAt = messages[len(messages)-1].CreatedAt
	}

	s.record(ctx, userID, audit.OperationCreate, session.ID)
	s.logger.Info("chat session created", zap.String("session_id", session.ID), zap.String("user_id", userID))

	return session, nil
}

// SendMessage appends the user's message and the bot's reply to a session
func (s *ChatService) SendMessage(ctx context.Context, sessionID, content string) ([]model.ChatMessage, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, validationError("session ID must be a UUID")
	}
	content = strings.TrimSpace(content)
	if err := validateMessage(content); err != nil {
		return nil, err
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.exchange(ctx, session, content)
}

func (s *ChatService) exchange(ctx context.Context, session *model.ChatSession, content string) ([]model.ChatMessage, error) {
	asked := s.now()
	userMsg := model.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: session.ID,
		Role:      model.ChatRoleUser,
		Content:   content,
		CreatedAt: asked,
	}

	reply := s.reply(ctx, content, session.AgeGroup)

	answered := s.now()
	if !answered.After(asked) {
		answered = asked.Add(time.Microsecond)
	}
	botMsg := model.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: session.ID,
		Role:      model.ChatRoleBot,
		Content:   reply.Text,
		CreatedAt: answered,
	}

	if err := s.repo.AddMessages(ctx, session.ID, userMsg, botMsg); err != nil {
		return nil, fmt.Errorf("failed to store chat messages: %w", err)
	}

	s.logger.Info("chat message answered",
		zap.String("session_id", session.ID),
		zap.String("kind", string(reply.Kind)),
		zap.Strings("matched", reply.Matched),
	)

	return []model.ChatMessage{userMsg, botMsg}, nil
}

// GetSession returns a session with its messages
func (s *ChatService) GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, validationError("session ID must be a UUID")
	}
	return s.repo.GetSession(ctx, sessionID)
}

// ListSessions returns the user's sessions, most recently active first
func (s *ChatService) ListSessions(ctx context.Context, userID string) ([]model.ChatSession, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.ListSessions(ctx, userID)
}

// DeleteSession removes a session and its messages
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return validationError("session ID must be a UUID")
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.record(ctx, session.UserID, audit.OperationDelete, sessionID)

	s.logger.Info("chat session deleted", zap.String("session_id", sessionID), zap.String("user_id", session.UserID))
	return nil
}

func (s *ChatService) record(ctx context.Context, userID string, op audit.OperationType, sessionID string) {
	err := s.audit.Log(ctx, audit.AuditLog{
		UserID:        userID,
		OperationType: op,
		ResourceType:  audit.ResourceChatSession,
		ResourceID:    sessionID,
		Timestamp:     s.now(),
	})
	if err != nil {
		s.logger.Warn("failed to write audit log", zap.Error(err), zap.String("session_id", sessionID))
	}
}

func normalizeAgeGroup(group model.AgeGroup) (model.AgeGroup, error) {
	if group == "" {
		return model.AgeGroupAdult, nil
	}
	if !group.Valid() {
		return "", validationError("invalid age group: %s", group)
	}
	return group, nil
}

func validateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return validationError("message is required")
	}
	if len([]rune(message)) > maxMessageLength {
		return validationError("message must be at most %d characters", maxMessageLength)
	}
	return nil
}

func sessionTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= maxTitleLength {
		return message
	}
	return strings.TrimSpace(string(runes[:maxTitleLength]))
}
