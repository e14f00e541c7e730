package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// RecordHandler implements the medical record metadata endpoints
type RecordHandler struct {
	service Records
	logger  *zap.Logger
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(service Records, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{
		service: service,
		logger:  logger,
	}
}

// PostApiV1UsersUserIdRecords stores the metadata of an uploaded document
func (h *RecordHandler) PostApiV1UsersUserIdRecords(c *gin.Context, userId types.UUID) {
	var req api.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	userID := uuidToString(userId)

	in := service.NewRecord{
		FileName:     req.FileName,
		FilePath:     req.FilePath,
		ReportDate:   optionalDate(req.ReportDate),
		HospitalName: req.HospitalName,
		DoctorName:   req.DoctorName,
		Notes:        req.Notes,
		Tags:         req.Tags,
	}
	if req.FileType != nil {
		in.FileType = *req.FileType
	}
	if req.FileSize != nil {
		in.FileSize = *req.FileSize
	}
	if req.DocumentType != nil {
		in.DocumentType = model.DocumentType(*req.DocumentType)
	}

	record, err := h.service.CreateRecord(c.Request.Context(), userID, in)
	if err != nil {
		serviceError(c, h.logger, "failed to create record", err, zap.String("user_id", userID))
		return
	}

	h.logger.Info("record created",
		zap.String("record_id", record.ID),
		zap.String("user_id", userID),
	)

	c.JSON(http.StatusCreated, record)
}

// GetApiV1UsersUserIdRecords lists the records of a user
func (h *RecordHandler) GetApiV1UsersUserIdRecords(c *gin.Context, userId types.UUID) {
	userID := uuidToString(userId)

	records, err := h.service.ListRecords(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, h.logger, "failed to list records", err, zap.String("user_id", userID))
		return
	}
	if records == nil {
		records = []model.MedicalRecord{}
	}

	c.JSON(http.StatusOK, records)
}

// DeleteApiV1RecordsId deletes a record
func (h *RecordHandler) DeleteApiV1RecordsId(c *gin.Context, id types.UUID) {
	recordID := uuidToString(id)

	if err := h.service.DeleteRecord(c.Request.Context(), recordID); err != nil {
		serviceError(c, h.logger, "failed to delete record", err, zap.String("record_id", recordID))
		return
	}

	h.logger.Info("record deleted", zap.String("record_id", recordID))
	c.Status(http.StatusNoContent)
}
