package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"go.uber.org/zap"
)

// TrackerHandler implements the daily entry, score preview and prescribed medication endpoints
type TrackerHandler struct {
	service Tracker
	logger  *zap.Logger
}

// NewTrackerHandler creates a new TrackerHandler
func NewTrackerHandler(service Tracker, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{
		service: service,
		logger:  logger,
	}
}

// PostApiV1UsersUserIdEntries saves the metrics of a day, today when no date is given
func (h *TrackerHandler) PostApiV1UsersUserIdEntries(c *gin.Context, userId types.UUID) {
	var req api.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	userID := uuidToString(userId)
	date := ""
	if req.Date != nil {
		date = dateToString(*req.Date)
	}

	entry, err := h.service.SaveEntry(c.Request.Context(), userID, date, metricsFromAPI(req.Metrics))
	if err != nil {
		serviceError(c, h.logger, "failed to save entry", err,
			zap.String("user_id", userID),
			zap.String("date", date),
		)
		return
	}

	h.logger.Info("entry saved",
		zap.String("user_id", userID),
		zap.String("date", entry.Date),
		zap.Int("total_score", entry.Score.TotalScore),
	)

	c.JSON(http.StatusOK, entryToAPI(*entry))
}

// GetApiV1UsersUserIdEntries returns every entry of the user keyed by date
func (h *TrackerHandler) GetApiV1UsersUserIdEntries(c *gin.Context, userId types.UUID) {
	userID := uuidToString(userId)

	entries, err := h.service.LoadEntries(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, h.logger, "failed to load entries", err, zap.String("user_id", userID))
		return
	}

	response := make(map[string]api.HealthEntry, len(entries))
	for date, entry := range entries {
		response[date] = entryToAPI(entry)
	}

	c.JSON(http.StatusOK, response)
}

// GetApiV1UsersUserIdEntriesDate returns the entry of one day
func (h *TrackerHandler) GetApiV1UsersUserIdEntriesDate(c *gin.Context, userId types.UUID, date types.Date) {
	userID := uuidToString(userId)
	day := dateToString(date)

	entry, err := h.service.GetEntry(c.Request.Context(), userID, day)
	if err != nil {
		serviceError(c, h.logger, "failed to get entry", err,
			zap.String("user_id", userID),
			zap.String("date", day),
		)
		return
	}

	c.JSON(http.StatusOK, entryToAPI(*entry))
}

// PostApiV1ScoresPreview scores metrics without saving them
func (h *TrackerHandler) PostApiV1ScoresPreview(c *gin.Context) {
	var req api.PreviewScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	userID := ""
	if req.UserId != nil {
		userID = uuidToString(*req.UserId)
	}

	score, err := h.service.PreviewScore(c.Request.Context(), userID, metricsFromAPI(req.Metrics))
	if err != nil {
		serviceError(c, h.logger, "failed to preview score", err, zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, scoreToAPI(score))
}

// GetApiV1UsersUserIdMedications lists the prescribed medications
func (h *TrackerHandler) GetApiV1UsersUserIdMedications(c *gin.Context, userId types.UUID) {
	userID := uuidToString(userId)

	names, err := h.service.ListPrescribedMedications(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, h.logger, "failed to list medications", err, zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, api.MedicationList{Medications: nonNilStrings(names)})
}

// PostApiV1UsersUserIdMedications adds a medication to the prescribed list
func (h *TrackerHandler) PostApiV1UsersUserIdMedications(c *gin.Context, userId types.UUID) {
	var req api.AddMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	userID := uuidToString(userId)

	names, err := h.service.AddPrescribedMedication(c.Request.Context(), userID, req.Name)
	if err != nil {
		serviceError(c, h.logger, "failed to add medication", err, zap.String("user_id", userID))
		return
	}

	h.logger.Info("medication added",
		zap.String("user_id", userID),
		zap.String("name", req.Name),
	)

	c.JSON(http.StatusOK, api.MedicationList{Medications: nonNilStrings(names)})
}

// DeleteApiV1UsersUserIdMedicationsName removes a medication from the prescribed list
func (h *TrackerHandler) DeleteApiV1UsersUserIdMedicationsName(c *gin.Context, userId types.UUID, name string) {
	userID := uuidToString(userId)

	names, err := h.service.RemovePrescribedMedication(c.Request.Context(), userID, name)
	if err != nil {
		serviceError(c, h.logger, "failed to remove medication", err,
			zap.String("user_id", userID),
			zap.String("name", name),
		)
		return
	}

	h.logger.Info("medication removed",
		zap.String("user_id", userID),
		zap.String("name", name),
	)

	c.JSON(http.StatusOK, api.MedicationList{Medications: nonNilStrings(names)})
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
