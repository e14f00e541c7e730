package handler

import (
	"context"

	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/internal/chatbot"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// Tracker is the part of service.TrackerService used by the handlers
type Tracker interface {
	SaveEntry(ctx context.Context, userID, date string, metrics model.DailyMetrics) (*model.HealthEntry, error)
	PreviewScore(ctx context.Context, userID string, metrics model.DailyMetrics) (model.ScoreBreakdown, error)
	GetEntry(ctx context.Context, userID, date string) (*model.HealthEntry, error)
	LoadEntries(ctx context.Context, userID string) (map[string]model.HealthEntry, error)
	ListPrescribedMedications(ctx context.Context, userID string) ([]string, error)
	AddPrescribedMedication(ctx context.Context, userID, name string) ([]string, error)
	RemovePrescribedMedication(ctx context.Context, userID, name string) ([]string, error)
}

// Analytics is the part of service.AnalyticsService used by the handlers
type Analytics interface {
	Analytics(ctx context.Context, userID string, q service.RangeQuery) (*model.AnalyticsResult, analytics.DateRange, error)
	Report(ctx context.Context, userID string, q service.RangeQuery) (*model.Report, error)
	ExportText(ctx context.Context, userID string, q service.RangeQuery) (filename, body string, err error)
}

// Reports is the part of service.ReportService used by the handlers
type Reports interface {
	ArchiveReport(ctx context.Context, userID string, q service.RangeQuery) (*model.ReportArchive, error)
	ListReports(ctx context.Context, userID string) ([]model.ReportArchive, error)
	GetReportPDF(ctx context.Context, reportID string) (*model.ReportArchive, []byte, error)
}

// Chat is the part of service.ChatService used by the handlers
type Chat interface {
	Respond(ctx context.Context, message string, ageGroup model.AgeGroup) (chatbot.Reply, error)
	CreateSession(ctx context.Context, userID string, ageGroup model.AgeGroup, firstMessage string) (*model.ChatSession, error)
	SendMessage(ctx context.Context, sessionID, content string) ([]model.ChatMessage, error)
	GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error)
	ListSessions(ctx context.Context, userID string) ([]model.ChatSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Records is the part of service.RecordService used by the handlers
type Records interface {
	CreateRecord(ctx context.Context, userID string, in service.NewRecord) (*model.MedicalRecord, error)
	ListRecords(ctx context.Context, userID string) ([]model.MedicalRecord, error)
	DeleteRecord(ctx context.Context, recordID string) error
}

// Access is the part of service.AccessService used by the handlers
type Access interface {
	CreateAccessToken(ctx context.Context, userID string, in service.NewAccessToken) (*model.AccessToken, error)
	ListAccessTokens(ctx context.Context, userID string) ([]model.AccessToken, error)
	RevokeAccessToken(ctx context.Context, tokenID string) error
	GetAccessLogs(ctx context.Context, tokenID string) ([]model.AccessLog, error)
	ResolveAccess(ctx context.Context, req service.AccessRequest) model.AccessResult
}

var (
	_ Tracker   = (*service.TrackerService)(nil)
	_ Analytics = (*service.AnalyticsService)(nil)
	_ Reports   = (*service.ReportService)(nil)
	_ Chat      = (*service.ChatService)(nil)
	_ Records   = (*service.RecordService)(nil)
	_ Access    = (*service.AccessService)(nil)
)
