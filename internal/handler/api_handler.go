package handler

import (
	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/pkg/api"
)

var _ api.ServerInterface = (*APIHandler)(nil)

// APIHandler implements api.ServerInterface by delegating to the handler of each area
type APIHandler struct {
	System    *SystemHandler
	Tracker   *TrackerHandler
	Analytics *AnalyticsHandler
	Report    *ReportHandler
	Chat      *ChatHandler
	Record    *RecordHandler
	Access    *AccessHandler
}

func (h *APIHandler) GetHealth(c *gin.Context) {
	h.System.GetHealth(c)
}

func (h *APIHandler) GetApiV1OpenapiJson(c *gin.Context) {
	h.System.GetApiV1OpenapiJson(c)
}

// Tracker endpoints
func (h *APIHandler) PostApiV1UsersUserIdEntries(c *gin.Context, userId openapi_types.UUID) {
	h.Tracker.PostApiV1UsersUserIdEntries(c, userId)
}

func (h *APIHandler) GetApiV1UsersUserIdEntries(c *gin.Context, userId openapi_types.UUID) {
	h.Tracker.GetApiV1UsersUserIdEntries(c, userId)
}

func (h *APIHandler) GetApiV1UsersUserIdEntriesDate(c *gin.Context, userId openapi_types.UUID, date openapi_types.Date) {
	h.Tracker.GetApiV1UsersUserIdEntriesDate(c, userId, date)
}

func (h *APIHandler) PostApiV1ScoresPreview(c *gin.Context) {
	h.Tracker.PostApiV1ScoresPreview(c)
}

func (h *APIHandler) GetApiV1UsersUserIdMedications(c *gin.Context, userId openapi_types.UUID) {
	h.Tracker.GetApiV1UsersUserIdMedications(c, userId)
}

func (h *APIHandler) PostApiV1UsersUserIdMedications(c *gin.Context, userId openapi_types.UUID) {
	h.Tracker.PostApiV1UsersUserIdMedications(c, userId)
}

func (h *APIHandler) DeleteApiV1UsersUserIdMedicationsName(c *gin.Context, userId openapi_types.UUID, name string) {
	h.Tracker.DeleteApiV1UsersUserIdMedicationsName(c, userId, name)
}

// Analytics endpoints
func (h *APIHandler) GetApiV1UsersUserIdAnalytics(c *gin.Context, userId openapi_types.UUID, params api.GetApiV1UsersUserIdAnalyticsParams) {
	h.Analytics.GetApiV1UsersUserIdAnalytics(c, userId, params)
}

func (h *APIHandler) GetApiV1UsersUserIdReport(c *gin.Context, userId openapi_types.UUID, params api.GetApiV1UsersUserIdReportParams) {
	h.Analytics.GetApiV1UsersUserIdReport(c, userId, params)
}

func (h *APIHandler) GetApiV1UsersUserIdReportExport(c *gin.Context, userId openapi_types.UUID, params api.GetApiV1UsersUserIdReportExportParams) {
	h.Analytics.GetApiV1UsersUserIdReportExport(c, userId, params)
}

// Report archive endpoints
func (h *APIHandler) PostApiV1UsersUserIdReports(c *gin.Context, userId openapi_types.UUID) {
	h.Report.PostApiV1UsersUserIdReports(c, userId)
}

func (h *APIHandler) GetApiV1UsersUserIdReports(c *gin.Context, userId openapi_types.UUID) {
	h.Report.GetApiV1UsersUserIdReports(c, userId)
}

func (h *APIHandler) GetApiV1ReportsId(c *gin.Context, id openapi_types.UUID) {
	h.Report.GetApiV1ReportsId(c, id)
}

// Chat endpoints
func (h *APIHandler) PostApiV1ChatRespond(c *gin.Context) {
	h.Chat.PostApiV1ChatRespond(c)
}

func (h *APIHandler) PostApiV1UsersUserIdChatSessions(c *gin.Context, userId openapi_types.UUID) {
	h.Chat.PostApiV1UsersUserIdChatSessions(c, userId)
}

func (h *APIHandler) GetApiV1UsersUserIdChatSessions(c *gin.Context, userId openapi_types.UUID) {
	h.Chat.GetApiV1UsersUserIdChatSessions(c, userId)
}

func (h *APIHandler) GetApiV1ChatSessionsId(c *gin.Context, id openapi_types.UUID) {
	h.Chat.GetApiV1ChatSessionsId(c, id)
}

func (h *APIHandler) DeleteApiV1ChatSessionsId(c *gin.Context, id openapi_types.UUID) {
	h.Chat.DeleteApiV1ChatSessionsId(c, id)
}

func (h *APIHandler) PostApiV1ChatSessionsIdMessages(c *gin.Context, id openapi_types.UUID) {
	h.Chat.PostApiV1ChatSessionsIdMessages(c, id)
}

// Record endpoints
func (h *APIHandler) PostApiV1UsersUserIdRecords(c *gin.Context, userId openapi_types.UUID) {
	h.Record.PostApiV1UsersUserIdRecords(c, userId)
}

func (h *APIHandler) GetApiV1UsersUserIdRecords(c *gin.Context, userId openapi_types.UUID) {
	h.Record.GetApiV1UsersUserIdRecords(c, userId)
}

func (h *APIHandler) DeleteApiV1RecordsId(c *gin.Context, id openapi_types.UUID) {
	h.Record.DeleteApiV1RecordsId(c, id)
}

// Access token endpoints
func (h *APIHandler) PostApiV1UsersUserIdAccessTokens(c *gin.Context, userId openapi_types.UUID) {
	h.Access.PostApiV1UsersUserIdAccessTokens(c, userId)
}

func (h *APIHandler) GetApiV1UsersUserIdAccessTokens(c *gin.Context, userId openapi_types.UUID) {
	h.Access.GetApiV1UsersUserIdAccessTokens(c, userId)
}

func (h *APIHandler) PostApiV1AccessTokensIdRevoke(c *gin.Context, id openapi_types.UUID) {
	h.Access.PostApiV1AccessTokensIdRevoke(c, id)
}

func (h *APIHandler) GetApiV1AccessTokensIdLogs(c *gin.Context, id openapi_types.UUID) {
	h.Access.GetApiV1AccessTokensIdLogs(c, id)
}

func (h *APIHandler) PostApiV1AccessResolve(c *gin.Context) {
	h.Access.PostApiV1AccessResolve(c)
}
