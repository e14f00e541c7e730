package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// ChatHandler implements the symptom checker endpoints
type ChatHandler struct {
	service Chat
	logger  *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service Chat, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

func ageGroup(group *api.AgeGroup) model.AgeGroup {
	if group == nil {
		return ""
	}
	return model.AgeGroup(*group)
}

// PostApiV1ChatRespond answers one message without storing it
func (h *ChatHandler) PostApiV1ChatRespond(c *gin.Context) {
	var req api.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	reply, err := h.service.Respond(c.Request.Context(), req.Message, ageGroup(req.AgeGroup))
	if err != nil {
		serviceError(c, h.logger, "failed to respond", err)
		return
	}

	c.JSON(http.StatusOK, api.RespondResponse{
		Reply:   reply.Text,
		Kind:    string(reply.Kind),
		Matched: reply.Matched,
	})
}

// PostApiV1UsersUserIdChatSessions starts a session, answering the first message when one is given
func (h *ChatHandler) PostApiV1UsersUserIdChatSessions(c *gin.Context, userId types.UUID) {
	var req api.CreateChatSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidBody(c, h.logger, err)
		return
	}

	userID := uuidToString(userId)
	first := ""
	if req.Message != nil {
		first = *req.Message
	}

	session, err := h.service.CreateSession(c.Request.Context(), userID, ageGroup(req.AgeGroup), first)
	if err != nil {
		serviceError(c, h.logger, "failed to create chat session", err, zap.String("user_id", userID))
		return
	}

	h.logger.Info("chat session created",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
	)

	c.JSON(http.StatusCreated, session)
}

// GetApiV1UsersUserIdChatSessions lists the sessions of a user
func (h *ChatHandler) GetApiV1UsersUserIdChatSessions(c *gin.Context, userId types.UUID) {
	userID := uuidToString(userId)

	sessions, err := h.service.ListSessions(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, h.logger, "failed to list chat sessions", err, zap.String("user_id", userID))
		return
	}
	if sessions == nil {
		sessions = []model.ChatSession{}
	}

	c.JSON(http.StatusOK, sessions)
}

// GetApiV1ChatSessionsId returns a session with its messages
func (h *ChatHandler) GetApiV1ChatSessionsId(c *gin.Context, id types.UUID) {
	sessionID := uuidToString(id)

	session, err := h.service.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		serviceError(c, h.logger, "failed to get chat session", err, zap.String("session_id", sessionID))
		return
	}

	c.JSON(http.StatusOK, session)
}

// PostApiV1ChatSessionsIdMessages appends a message and the bot's reply to a session
func (h *ChatHandler) PostApiV1ChatSessionsIdMessages(c *gin.Context, id types.UUID) {
	var req api.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	sessionID := uuidToString(id)

	messages, err := h.service.SendMessage(c.Request.Context(), sessionID, req.Content)
	if err != nil {
		serviceError(c, h.logger, "failed to send chat message", err, zap.String("session_id", sessionID))
		return
	}

	c.JSON(http.StatusOK, api.ChatMessagesResponse{Messages: messages})
}

// DeleteApiV1ChatSessionsId deletes a session and its messages
func (h *ChatHandler) DeleteApiV1ChatSessionsId(c *gin.Context, id types.UUID) {
	sessionID := uuidToString(id)

	if err := h.service.DeleteSession(c.Request.Context(), sessionID); err != nil {
		serviceError(c, h.logger, "failed to delete chat session", err, zap.String("session_id", sessionID))
		return
	}

	h.logger.Info("chat session deleted", zap.String("session_id", sessionID))
	c.Status(http.StatusNoContent)
}
