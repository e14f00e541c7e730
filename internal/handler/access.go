package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// AccessHandler implements the QR access link endpoints
type AccessHandler struct {
	service Access
	logger  *zap.Logger
}

// NewAccessHandler creates a new AccessHandler
func NewAccessHandler(service Access, logger *zap.Logger) *AccessHandler {
	return &AccessHandler{
		service: service,
		logger:  logger,
	}
}

// PostApiV1UsersUserIdAccessTokens creates an access link to all records or to a single one
func (h *AccessHandler) PostApiV1UsersUserIdAccessTokens(c *gin.Context, userId types.UUID) {
	var req api.CreateAccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidBody(c, h.logger, err)
		return
	}

	userID := uuidToString(userId)

	in := service.NewAccessToken{Password: req.Password}
	if req.RecordId != nil {
		in.RecordID = stringPtr(uuidToString(*req.RecordId))
	}
	if req.ExpiresIn != nil {
		in.ExpiresIn = model.ExpiresIn(*req.ExpiresIn)
	}

	token, err := h.service.CreateAccessToken(c.Request.Context(), userID, in)
	if err != nil {
		serviceError(c, h.logger, "failed to create access token", err, zap.String("user_id", userID))
		return
	}

	h.logger.Info("access token created",
		zap.String("token_id", token.ID),
		zap.String("user_id", userID),
	)

	c.JSON(http.StatusCreated, accessTokenToAPI(*token))
}

// GetApiV1UsersUserIdAccessTokens lists the access links of a user
func (h *AccessHandler) GetApiV1UsersUserIdAccessTokens(c *gin.Context, userId types.UUID) {
	userID := uuidToString(userId)

	tokens, err := h.service.ListAccessTokens(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, h.logger, "failed to list access tokens", err, zap.String("user_id", userID))
		return
	}

	response := make([]api.AccessToken, 0, len(tokens))
	for _, token := range tokens {
		response = append(response, accessTokenToAPI(token))
	}

	c.JSON(http.StatusOK, response)
}

// PostApiV1AccessTokensIdRevoke revokes an access link
func (h *AccessHandler) PostApiV1AccessTokensIdRevoke(c *gin.Context, id types.UUID) {
	tokenID := uuidToString(id)

	if err := h.service.RevokeAccessToken(c.Request.Context(), tokenID); err != nil {
		serviceError(c, h.logger, "failed to revoke access token", err, zap.String("token_id", tokenID))
		return
	}

	h.logger.Info("access token revoked", zap.String("token_id", tokenID))
	c.Status(http.StatusNoContent)
}

// GetApiV1AccessTokensIdLogs lists the uses of an access link
func (h *AccessHandler) GetApiV1AccessTokensIdLogs(c *gin.Context, id types.UUID) {
	tokenID := uuidToString(id)

	logs, err := h.service.GetAccessLogs(c.Request.Context(), tokenID)
	if err != nil {
		serviceError(c, h.logger, "failed to get access logs", err, zap.String("token_id", tokenID))
		return
	}
	if logs == nil {
		logs = []model.AccessLog{}
	}

	c.JSON(http.StatusOK, logs)
}

// PostApiV1AccessResolve opens an access link. Denials are reported in the body with status 200.
func (h *AccessHandler) PostApiV1AccessResolve(c *gin.Context) {
	var req api.ResolveAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	result := h.service.ResolveAccess(c.Request.Context(), service.AccessRequest{
		Token:     req.Token,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	if !result.OK {
		h.logger.Warn("access link denied",
			zap.String("ip", c.ClientIP()),
			zap.String("reason", result.Error),
		)
	}

	c.JSON(http.StatusOK, result)
}
