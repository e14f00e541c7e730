package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vcscsvcscs/healthguide/internal/audit"
	"github.com/vcscsvcscs/healthguide/internal/cache"
	"github.com/vcscsvcscs/healthguide/internal/events"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// Mock implementations for testing

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, userID string, entry *model.HealthEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) GetEntry(ctx context.Context, userID, date string) (*model.HealthEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthEntry), args.Error(1)
}

func (m *MockEntryRepository) LoadEntries(ctx context.Context, userID string) (map[string]model.HealthEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.HealthEntry), args.Error(1)
}

type MockMedicationRepository struct {
	mock.Mock
}

func (m *MockMedicationRepository) ListPrescribed(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMedicationRepository) AddPrescribed(ctx context.Context, userID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockMedicationRepository) RemovePrescribed(ctx context.Context, userID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) CreateSession(ctx context.Context, session *model.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockChatRepository) GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatSession), args.Error(1)
}

func (m *MockChatRepository) ListSessions(ctx context.Context, userID string) ([]model.ChatSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatSession), args.Error(1)
}

func (m *MockChatRepository) AddMessages(ctx context.Context, sessionID string, messages ...model.ChatMessage) error {
	args := m.Called(ctx, sessionID, messages)
	return args.Error(0)
}

func (m *MockChatRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) FindByID(ctx context.Context, recordID string) (*model.MedicalRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalRecord), args.Error(1)
}

func (m *MockRecordRepository) ListByUser(ctx context.Context, userID string, recordID *string) ([]model.MedicalRecord, error) {
	args := m.Called(ctx, userID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MedicalRecord), args.Error(1)
}

func (m *MockRecordRepository) Delete(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

type MockAccessTokenRepository struct {
	mock.Mock
}

func (m *MockAccessTokenRepository) Create(ctx context.Context, token *model.AccessToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAccessTokenRepository) FindByToken(ctx context.Context, value string) (*model.AccessToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessToken), args.Error(1)
}

func (m *MockAccessTokenRepository) FindByID(ctx context.Context, tokenID string) (*model.AccessToken, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessToken), args.Error(1)
}

func (m *MockAccessTokenRepository) ListByUser(ctx context.Context, userID string) ([]model.AccessToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessToken), args.Error(1)
}

func (m *MockAccessTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockAccessTokenRepository) RecordAccess(ctx context.Context, entry *model.AccessLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccessTokenRepository) ListLogs(ctx context.Context, tokenID string) ([]model.AccessLog, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessLog), args.Error(1)
}

func (m *MockAccessTokenRepository) OwnerName(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, archive *model.ReportArchive) error {
	args := m.Called(ctx, archive)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, reportID string) (*model.ReportArchive, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportArchive), args.Error(1)
}

func (m *MockReportRepository) ListByUser(ctx context.Context, userID string) ([]model.ReportArchive, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportArchive), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

// Get hands out the key itself as the slot
func (m *MockCache) Get(ctx context.Context, userID, key string, dest any) (cache.Slot, bool, error) {
	args := m.Called(ctx, userID, key, dest)
	return cache.Slot(key), args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, slot cache.Slot, value any) error {
	args := m.Called(ctx, slot, value)
	return args.Error(0)
}

func (m *MockCache) InvalidateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEntrySaved(ctx context.Context, event events.EntrySaved) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Log(ctx context.Context, entry audit.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockReportStorage struct {
	mock.Mock
}

func (m *MockReportStorage) UploadReport(ctx context.Context, userID, reportID string, data []byte) (string, error) {
	args := m.Called(ctx, userID, reportID, data)
	return args.String(0), args.Error(1)
}

func (m *MockReportStorage) DownloadReport(ctx context.Context, blobName string) ([]byte, error) {
	args := m.Called(ctx, blobName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportStorage) DeleteReport(ctx context.Context, blobName string) error {
	args := m.Called(ctx, blobName)
	return args.Error(0)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Generate(report model.Report, ownerName string) ([]byte, error) {
	args := m.Called(report, ownerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockJSONCompleter struct {
	mock.Mock
}

func (m *MockJSONCompleter) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractSymptoms(ctx context.Context, message string) (*ExtractedSymptoms, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExtractedSymptoms), args.Error(1)
}

func permissiveAudit() *MockAuditRecorder {
	a := new(MockAuditRecorder)
	a.On("Log", mock.Anything, mock.Anything).Return(nil)
	return a
}
