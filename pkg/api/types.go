// Package api holds the HTTP contract of the service: request and response
// bodies, the server interface and its gin bindings.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// Error codes returned in ErrorResponse.Code
const (
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeForbidden   = "FORBIDDEN"
	ErrorCodeRateLimited = "RATE_LIMITED"
	ErrorCodeInternal    = "INTERNAL_ERROR"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// RangePreset defines model for RangePreset.
type RangePreset string

// Defines values for RangePreset.
const (
	Last7  RangePreset = "last7"
	Last30 RangePreset = "last30"
	Last90 RangePreset = "last90"
	All    RangePreset = "all"
)

// ExerciseType defines model for ExerciseType.
type ExerciseType string

// Mood defines model for Mood.
type Mood string

// AgeGroup defines model for AgeGroup.
type AgeGroup string

// DocumentType defines model for DocumentType.
type DocumentType string

// ExpiresIn defines model for ExpiresIn.
type ExpiresIn string

// Exercise defines model for the exercise part of DailyMetrics.
type Exercise struct {
	Minutes int          `json:"minutes"`
	Type    ExerciseType `json:"type"`
}

// Meals defines model for the meals part of DailyMetrics.
type Meals struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

// Medications defines model for the medications part of DailyMetrics.
// A nil Prescribed means "use the user's stored list".
type Medications struct {
	Taken      []string `json:"taken,omitempty"`
	Prescribed []string `json:"prescribed,omitempty"`
}

// DailyMetrics defines model for DailyMetrics.
type DailyMetrics struct {
	SleepHours   float64      `json:"sleep_hours"`
	Exercise     Exercise     `json:"exercise"`
	Steps        int          `json:"steps"`
	WaterGlasses int          `json:"water_glasses"`
	Meals        Meals        `json:"meals"`
	Medications  *Medications `json:"medications,omitempty"`
	Mood         *Mood        `json:"mood,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
}

// SaveEntryRequest defines model for SaveEntryRequest.
type SaveEntryRequest struct {
	Date    *openapi_types.Date `json:"date,omitempty"`
	Metrics DailyMetrics        `json:"metrics"`
}

// PreviewScoreRequest defines model for PreviewScoreRequest.
type PreviewScoreRequest struct {
	UserId  *openapi_types.UUID `json:"user_id,omitempty"`
	Metrics DailyMetrics        `json:"metrics"`
}

// ComponentScores defines model for the breakdown of ScoreBreakdown.
type ComponentScores struct {
	Sleep      int `json:"sleep"`
	Exercise   int `json:"exercise"`
	Steps      int `json:"steps"`
	Water      int `json:"water"`
	Medication int `json:"medication"`
	Nutrition  int `json:"nutrition"`
}

// ScoreBreakdown defines model for ScoreBreakdown.
type ScoreBreakdown struct {
	TotalScore int             `json:"total_score"`
	Breakdown  ComponentScores `json:"breakdown"`
	Rating     string          `json:"rating"`
	Color      string          `json:"color"`
}

// HealthEntry defines model for HealthEntry.
type HealthEntry struct {
	Date      openapi_types.Date `json:"date"`
	Metrics   DailyMetrics       `json:"metrics"`
	Score     ScoreBreakdown     `json:"score"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
}

// AddMedicationRequest defines model for AddMedicationRequest.
type AddMedicationRequest struct {
	Name string `json:"name"`
}

// MedicationList defines model for MedicationList.
type MedicationList struct {
	Medications []string `json:"medications"`
}

// RangeParams holds the query parameters shared by the analytics, report and export operations.
type RangeParams struct {
	Start  *openapi_types.Date `form:"start,omitempty" json:"start,omitempty"`
	End    *openapi_types.Date `form:"end,omitempty" json:"end,omitempty"`
	Preset *RangePreset        `form:"preset,omitempty" json:"preset,omitempty"`
}

// GetApiV1UsersUserIdAnalyticsParams defines parameters for GetApiV1UsersUserIdAnalytics.
type GetApiV1UsersUserIdAnalyticsParams = RangeParams

// GetApiV1UsersUserIdReportParams defines parameters for GetApiV1UsersUserIdReport.
type GetApiV1UsersUserIdReportParams = RangeParams

// GetApiV1UsersUserIdReportExportParams defines parameters for GetApiV1UsersUserIdReportExport.
type GetApiV1UsersUserIdReportExportParams = RangeParams

// AnalyticsResponse defines model for the analytics operation.
type AnalyticsResponse struct {
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	model.AnalyticsResult
}

// GenerateReportRequest defines model for GenerateReportRequest.
type GenerateReportRequest struct {
	Start  *openapi_types.Date `json:"start,omitempty"`
	End    *openapi_types.Date `json:"end,omitempty"`
	Preset *RangePreset        `json:"preset,omitempty"`
}

// ReportArchive defines model for ReportArchive.
type ReportArchive struct {
	Id             openapi_types.UUID `json:"id"`
	UserId         openapi_types.UUID `json:"user_id"`
	DateRangeStart openapi_types.Date `json:"date_range_start"`
	DateRangeEnd   openapi_types.Date `json:"date_range_end"`
	FilePath       string             `json:"file_path"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// RespondRequest defines model for RespondRequest.
type RespondRequest struct {
	Message  string    `json:"message" binding:"required"`
	AgeGroup *AgeGroup `json:"age_group,omitempty"`
}

// RespondResponse defines model for RespondResponse.
type RespondResponse struct {
	Reply   string   `json:"reply"`
	Kind    string   `json:"kind"`
	Matched []string `json:"matched,omitempty"`
}

// CreateChatSessionRequest defines model for CreateChatSessionRequest.
type CreateChatSessionRequest struct {
	AgeGroup *AgeGroup `json:"age_group,omitempty"`
	Message  *string   `json:"message,omitempty"`
}

// SendMessageRequest defines model for SendMessageRequest.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ChatMessagesResponse defines model for the send message operation.
type ChatMessagesResponse struct {
	Messages []model.ChatMessage `json:"messages"`
}

// CreateRecordRequest defines model for CreateRecordRequest.
type CreateRecordRequest struct {
	FileName     string              `json:"file_name" binding:"required"`
	FilePath     string              `json:"file_path" binding:"required"`
	FileType     *string             `json:"file_type,omitempty"`
	FileSize     *int64              `json:"file_size,omitempty"`
	DocumentType *DocumentType       `json:"document_type,omitempty"`
	ReportDate   *openapi_types.Date `json:"report_date,omitempty"`
	HospitalName *string             `json:"hospital_name,omitempty"`
	DoctorName   *string             `json:"doctor_name,omitempty"`
	Notes        *string             `json:"notes,omitempty"`
	Tags         []string            `json:"tags,omitempty"`
}

// CreateAccessTokenRequest defines model for CreateAccessTokenRequest.
type CreateAccessTokenRequest struct {
	RecordId  *openapi_types.UUID `json:"record_id,omitempty"`
	ExpiresIn *ExpiresIn          `json:"expires_in,omitempty"`
	Password  *string             `json:"password,omitempty"`
}

// AccessToken defines model for AccessToken.
type AccessToken struct {
	Id               openapi_types.UUID  `json:"id"`
	Token            string              `json:"token"`
	RecordId         *openapi_types.UUID `json:"record_id,omitempty"`
	ExpiresAt        *time.Time          `json:"expires_at,omitempty"`
	AccessCount      int                 `json:"access_count"`
	IsRevoked        bool                `json:"is_revoked"`
	RequiresPassword bool                `json:"requires_password"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ResolveAccessRequest defines model for ResolveAccessRequest.
type ResolveAccessRequest struct {
	Token    string  `json:"token"`
	Password *string `json:"password,omitempty"`
}
