package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// Helper functions for type conversions between API types and internal models

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// timePtr creates a pointer to a time.Time, nil for the zero time
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// uuidToString converts types.UUID to string
func uuidToString(u types.UUID) string {
	return uuid.UUID(u).String()
}

// stringToUUID converts string to types.UUID, the zero UUID when it does not parse
func stringToUUID(s string) types.UUID {
	u, err := uuid.Parse(s)
	if err != nil {
		return types.UUID{}
	}
	return types.UUID(u)
}

// optionalUUID converts an optional string ID to an optional types.UUID
func optionalUUID(s *string) *types.UUID {
	if s == nil {
		return nil
	}
	u := stringToUUID(*s)
	return &u
}

// dateToString converts types.Date to a calendar-day key
func dateToString(d types.Date) string {
	return d.Format(model.DateLayout)
}

// optionalDate converts an optional types.Date to an optional calendar-day key
func optionalDate(d *types.Date) *string {
	if d == nil {
		return nil
	}
	return stringPtr(dateToString(*d))
}

// stringToDate converts a calendar-day key to types.Date
func stringToDate(s string) types.Date {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return types.Date{}
	}
	return types.Date{Time: t}
}

// rangeQuery converts range parameters to a service query
func rangeQuery(start, end *types.Date, preset *api.RangePreset) service.RangeQuery {
	var q service.RangeQuery
	if start != nil {
		q.Start = dateToString(*start)
	}
	if end != nil {
		q.End = dateToString(*end)
	}
	if preset != nil {
		q.Preset = analyticsPreset(*preset)
	}
	return q
}

// invalidBody answers a request whose body could not be bound
func invalidBody(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusBadRequest, api.ErrorResponse{
		Code:    api.ErrorCodeValidation,
		Message: "Invalid request body",
		Details: stringPtr(err.Error()),
	})
}

// serviceError maps a service error to its HTTP status and error code.
// message is used for unexpected failures.
func serviceError(c *gin.Context, logger *zap.Logger, message string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))

	switch {
	case errors.Is(err, service.ErrValidation):
		logger.Warn(message, fields...)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    api.ErrorCodeValidation,
			Message: "Invalid request",
			Details: stringPtr(err.Error()),
		})
	case errors.Is(err, service.ErrNotFound):
		logger.Warn(message, fields...)
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Code:    api.ErrorCodeNotFound,
			Message: "Resource not found",
		})
	case errors.Is(err, service.ErrForbidden):
		logger.Warn(message, fields...)
		c.JSON(http.StatusForbidden, api.ErrorResponse{
			Code:    api.ErrorCodeForbidden,
			Message: "Resource belongs to another user",
		})
	default:
		logger.Error(message, fields...)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    api.ErrorCodeInternal,
			Message: strings.ToUpper(message[:1]) + message[1:],
			Details: stringPtr(err.Error()),
		})
	}
}
