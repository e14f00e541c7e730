package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/healthguide/internal/audit"
	"github.com/vcscsvcscs/healthguide/internal/azure"
	"github.com/vcscsvcscs/healthguide/internal/pdf"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

type reportFixture struct {
	entries  *MockEntryRepository
	renderer *MockRenderer
	storage  *MockReportStorage
	repo     *MockReportRepository
	profiles *MockAccessTokenRepository
	audit    *MockAuditRecorder
	service  *ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		entries:  new(MockEntryRepository),
		renderer: new(MockRenderer),
		storage:  new(MockReportStorage),
		repo:     new(MockReportRepository),
		profiles: new(MockAccessTokenRepository),
		audit:    permissiveAudit(),
	}
	f.entries.On("LoadEntries", mock.Anything, testUserID).Return(weekOfEntries(), nil)
	analyticsSvc := newTestAnalyticsService(f.entries, missingCache())
	f.service = NewReportService(analyticsSvc, f.renderer, f.storage, f.repo, f.profiles, f.audit, zap.NewNop())
	return f
}

func TestArchiveReport(t *testing.T) {
	f := newReportFixture()
	f.profiles.On("OwnerName", mock.Anything, testUserID).Return("Jane Doe", nil)
	f.renderer.On("Generate", mock.AnythingOfType("model.Report"), "Jane Doe").Return([]byte("%PDF-1.3"), nil)
	f.storage.On("UploadReport", mock.Anything, testUserID, mock.Anything, []byte("%PDF-1.3")).
		Return("reports/"+testUserID+"/report.pdf", nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.ReportArchive")).Return(nil)

	archive, err := f.service.ArchiveReport(context.Background(), testUserID, RangeQuery{})

	require.NoError(t, err)
	assert.Equal(t, testUserID, archive.UserID)
	assert.Equal(t, "2024-03-09", archive.DateRangeStart)
	assert.Equal(t, "2024-03-15", archive.DateRangeEnd)
	assert.Equal(t, "reports/"+testUserID+"/report.pdf", archive.FilePath)
	assert.Equal(t, fixedNow, archive.GeneratedAt)

	f.audit.AssertCalled(t, "Log", mock.Anything, mock.MatchedBy(func(e audit.AuditLog) bool {
		return e.OperationType == audit.OperationCreate && e.ResourceType == audit.ResourceReport && e.ResourceID == archive.ID
	}))
}

func TestArchiveReport_RemovesBlobWhenMetadataFails(t *testing.T) {
	f := newReportFixture()
	f.profiles.On("OwnerName", mock.Anything, testUserID).Return("", errors.New("db down"))
	f.renderer.On("Generate", mock.Anything, "").Return([]byte("%PDF-1.3"), nil)
	f.storage.On("UploadReport", mock.Anything, testUserID, mock.Anything, mock.Anything).Return("reports/x.pdf", nil)
	f.storage.On("DeleteReport", mock.Anything, "reports/x.pdf").Return(nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := f.service.ArchiveReport(context.Background(), testUserID, RangeQuery{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save report archive")
	f.storage.AssertCalled(t, "DeleteReport", mock.Anything, "reports/x.pdf")
}

func TestArchiveReport_UploadFailure(t *testing.T) {
	f := newReportFixture()
	f.profiles.On("OwnerName", mock.Anything, testUserID).Return("", nil)
	f.renderer.On("Generate", mock.Anything, "").Return([]byte("%PDF-1.3"), nil)
	f.storage.On("UploadReport", mock.Anything, testUserID, mock.Anything, mock.Anything).Return("", errors.New("403"))

	_, err := f.service.ArchiveReport(context.Background(), testUserID, RangeQuery{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload report")
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestArchiveReport_InvalidRange(t *testing.T) {
	f := newReportFixture()

	_, err := f.service.ArchiveReport(context.Background(), testUserID, RangeQuery{Start: "2024-03-10", End: "2024-03-01"})

	assert.ErrorIs(t, err, ErrValidation)
	f.renderer.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGetReportPDF(t *testing.T) {
	f := newReportFixture()
	reportID := "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	archive := &model.ReportArchive{ID: reportID, UserID: testUserID, FilePath: "reports/a.pdf", DateRangeStart: "2024-03-09", DateRangeEnd: "2024-03-15"}
	f.repo.On("FindByID", mock.Anything, reportID).Return(archive, nil)
	f.storage.On("DownloadReport", mock.Anything, "reports/a.pdf").Return([]byte("%PDF-1.3"), nil)

	got, data, err := f.service.GetReportPDF(context.Background(), reportID)

	require.NoError(t, err)
	assert.Equal(t, archive, got)
	assert.Equal(t, []byte("%PDF-1.3"), data)
	assert.Equal(t, "health-report-2024-03-09-2024-03-15.pdf", ReportFilename(got))
}

func TestGetReportPDF_Errors(t *testing.T) {
	f := newReportFixture()
	missingID := "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	f.repo.On("FindByID", mock.Anything, missingID).Return(nil, ErrNotFound)

	_, _, err := f.service.GetReportPDF(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = f.service.GetReportPDF(context.Background(), missingID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// End to end through the real PDF renderer and the in-memory blob store
func TestArchiveReport_WithMemoryStorage(t *testing.T) {
	logger := zap.NewNop()
	entries := new(MockEntryRepository)
	entries.On("LoadEntries", mock.Anything, testUserID).Return(weekOfEntries(), nil)
	profiles := new(MockAccessTokenRepository)
	profiles.On("OwnerName", mock.Anything, testUserID).Return("Jane Doe", nil)
	repo := new(MockReportRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	storage := azure.NewMemoryReportStorage(logger)
	svc := NewReportService(newTestAnalyticsService(entries, missingCache()), pdf.NewPDFGenerator(logger), storage, repo, profiles, permissiveAudit(), logger)

	archive, err := svc.ArchiveReport(context.Background(), testUserID, RangeQuery{Preset: "last30"})
	require.NoError(t, err)

	data, err := storage.DownloadReport(context.Background(), archive.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}
