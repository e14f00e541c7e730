package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"go.uber.org/zap"
)

// ReportHandler implements the archived PDF report endpoints
type ReportHandler struct {
	service Reports
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service Reports, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// PostApiV1UsersUserIdReports generates a PDF report and archives it. The body is optional.
func (h *ReportHandler) PostApiV1UsersUserIdReports(c *gin.Context, userId types.UUID) {
	var req api.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidBody(c, h.logger, err)
		return
	}

	userID := uuidToString(userId)

	archive, err := h.service.ArchiveReport(c.Request.Context(), userID, rangeQuery(req.Start, req.End, req.Preset))
	if err != nil {
		serviceError(c, h.logger, "failed to generate report", err, zap.String("user_id", userID))
		return
	}

	h.logger.Info("report generated",
		zap.String("report_id", archive.ID),
		zap.String("user_id", userID),
	)

	c.JSON(http.StatusCreated, archiveToAPI(*archive))
}

// GetApiV1UsersUserIdReports lists the archived reports of a user
func (h *ReportHandler) GetApiV1UsersUserIdReports(c *gin.Context, userId types.UUID) {
	userID := uuidToString(userId)

	archives, err := h.service.ListReports(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, h.logger, "failed to list reports", err, zap.String("user_id", userID))
		return
	}

	response := make([]api.ReportArchive, 0, len(archives))
	for _, archive := range archives {
		response = append(response, archiveToAPI(archive))
	}

	c.JSON(http.StatusOK, response)
}

// GetApiV1ReportsId downloads a report
func (h *ReportHandler) GetApiV1ReportsId(c *gin.Context, id types.UUID) {
	reportID := uuidToString(id)

	archive, pdfBytes, err := h.service.GetReportPDF(c.Request.Context(), reportID)
	if err != nil {
		serviceError(c, h.logger, "failed to get report", err, zap.String("report_id", reportID))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", service.ReportFilename(archive)))
	c.Header("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)

	h.logger.Info("report downloaded",
		zap.String("report_id", reportID),
		zap.Int("size_bytes", len(pdfBytes)),
	)
}
