package handler

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/internal/chatbot"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) SaveEntry(ctx context.Context, userID, date string, metrics model.DailyMetrics) (*model.HealthEntry, error) {
	args := m.Called(ctx, userID, date, metrics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthEntry), args.Error(1)
}

func (m *MockTracker) PreviewScore(ctx context.Context, userID string, metrics model.DailyMetrics) (model.ScoreBreakdown, error) {
	args := m.Called(ctx, userID, metrics)
	return args.Get(0).(model.ScoreBreakdown), args.Error(1)
}

func (m *MockTracker) GetEntry(ctx context.Context, userID, date string) (*model.HealthEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthEntry), args.Error(1)
}

func (m *MockTracker) LoadEntries(ctx context.Context, userID string) (map[string]model.HealthEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.HealthEntry), args.Error(1)
}

func (m *MockTracker) ListPrescribedMedications(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTracker) AddPrescribedMedication(ctx context.Context, userID, name string) ([]string, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTracker) RemovePrescribedMedication(ctx context.Context, userID, name string) ([]string, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAnalytics struct {
	mock.Mock
}

func (m *MockAnalytics) Analytics(ctx context.Context, userID string, q service.RangeQuery) (*model.AnalyticsResult, analytics.DateRange, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, analytics.DateRange{}, args.Error(2)
	}
	return args.Get(0).(*model.AnalyticsResult), args.Get(1).(analytics.DateRange), args.Error(2)
}

func (m *MockAnalytics) Report(ctx context.Context, userID string, q service.RangeQuery) (*model.Report, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockAnalytics) ExportText(ctx context.Context, userID string, q service.RangeQuery) (string, string, error) {
	args := m.Called(ctx, userID, q)
	return args.String(0), args.String(1), args.Error(2)
}

type MockReports struct {
	mock.Mock
}

func (m *MockReports) ArchiveReport(ctx context.Context, userID string, q service.RangeQuery) (*model.ReportArchive, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportArchive), args.Error(1)
}

func (m *MockReports) ListReports(ctx context.Context, userID string) ([]model.ReportArchive, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportArchive), args.Error(1)
}

func (m *MockReports) GetReportPDF(ctx context.Context, reportID string) (*model.ReportArchive, []byte, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.ReportArchive), args.Get(1).([]byte), args.Error(2)
}

type MockChat struct {
	mock.Mock
}

func (m *MockChat) Respond(ctx context.Context, message string, ageGroup model.AgeGroup) (chatbot.Reply, error) {
	args := m.Called(ctx, message, ageGroup)
	return args.Get(0).(chatbot.Reply), args.Error(1)
}

func (m *MockChat) CreateSession(ctx context.Context, userID string, ageGroup model.AgeGroup, firstMessage string) (*model.ChatSession, error) {
	args := m.Called(ctx, userID, ageGroup, firstMessage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatSession), args.Error(1)
}

func (m *MockChat) SendMessage(ctx context.Context, sessionID, content string) ([]model.ChatMessage, error) {
	args := m.Called(ctx, sessionID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

func (m *MockChat) GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatSession), args.Error(1)
}

func (m *MockChat) ListSessions(ctx context.Context, userID string) ([]model.ChatSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatSession), args.Error(1)
}

func (m *MockChat) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockRecords struct {
	mock.Mock
}

func (m *MockRecords) CreateRecord(ctx context.Context, userID string, in service.NewRecord) (*model.MedicalRecord, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalRecord), args.Error(1)
}

func (m *MockRecords) ListRecords(ctx context.Context, userID string) ([]model.MedicalRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MedicalRecord), args.Error(1)
}

func (m *MockRecords) DeleteRecord(ctx context.Context, recordID string) error {
	return m.Called(ctx, recordID).Error(0)
}

type MockAccess struct {
	mock.Mock
}

func (m *MockAccess) CreateAccessToken(ctx context.Context, userID string, in service.NewAccessToken) (*model.AccessToken, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessToken), args.Error(1)
}

func (m *MockAccess) ListAccessTokens(ctx context.Context, userID string) ([]model.AccessToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessToken), args.Error(1)
}

func (m *MockAccess) RevokeAccessToken(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *MockAccess) GetAccessLogs(ctx context.Context, tokenID string) ([]model.AccessLog, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessLog), args.Error(1)
}

func (m *MockAccess) ResolveAccess(ctx context.Context, req service.AccessRequest) model.AccessResult {
	return m.Called(ctx, req).Get(0).(model.AccessResult)
}
