package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"go.uber.org/zap"
)

// AnalyticsHandler implements the analytics, report and text export endpoints
type AnalyticsHandler struct {
	service Analytics
	logger  *zap.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service Analytics, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger,
	}
}

// GetApiV1UsersUserIdAnalytics returns the analytics of a period
func (h *AnalyticsHandler) GetApiV1UsersUserIdAnalytics(c *gin.Context, userId types.UUID, params api.GetApiV1UsersUserIdAnalyticsParams) {
	userID := uuidToString(userId)

	result, period, err := h.service.Analytics(c.Request.Context(), userID, rangeQuery(params.Start, params.End, params.Preset))
	if err != nil {
		serviceError(c, h.logger, "failed to compute analytics", err, zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, api.AnalyticsResponse{
		StartDate:       stringToDate(period.Start),
		EndDate:         stringToDate(period.End),
		AnalyticsResult: *result,
	})
}

// GetApiV1UsersUserIdReport returns the formatted report of a period
func (h *AnalyticsHandler) GetApiV1UsersUserIdReport(c *gin.Context, userId types.UUID, params api.GetApiV1UsersUserIdReportParams) {
	userID := uuidToString(userId)

	report, err := h.service.Report(c.Request.Context(), userID, rangeQuery(params.Start, params.End, params.Preset))
	if err != nil {
		serviceError(c, h.logger, "failed to generate report", err, zap.String("user_id", userID))
		return
	}

	h.logger.Info("report generated",
		zap.String("user_id", userID),
		zap.String("start_date", report.StartDate),
		zap.String("end_date", report.EndDate),
	)

	c.JSON(http.StatusOK, report)
}

// GetApiV1UsersUserIdReportExport returns the report of a period as a plain-text attachment
func (h *AnalyticsHandler) GetApiV1UsersUserIdReportExport(c *gin.Context, userId types.UUID, params api.GetApiV1UsersUserIdReportExportParams) {
	userID := uuidToString(userId)

	filename, body, err := h.service.ExportText(c.Request.Context(), userID, rangeQuery(params.Start, params.End, params.Preset))
	if err != nil {
		serviceError(c, h.logger, "failed to export report", err, zap.String("user_id", userID))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
