package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/healthguide/internal/audit"
	"github.com/vcscsvcscs/healthguide/internal/azure"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// ReportRenderer renders a report document
type ReportRenderer interface {
	Generate(report model.Report, ownerName string) ([]byte, error)
}

// ProfileLookup resolves a user's display name
type ProfileLookup interface {
	OwnerName(ctx context.Context, userID string) (string, error)
}

// ReportService renders reports to PDF and keeps an archive of them
type ReportService struct {
	analytics *AnalyticsService
	renderer  ReportRenderer
	storage   azure.ReportStorage
	repo      ReportRepositoryInterface
	profiles  ProfileLookup
	audit     audit.Recorder
	logger    *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	analytics *AnalyticsService,
	renderer ReportRenderer,
	storage azure.ReportStorage,
	repo ReportRepositoryInterface,
	profiles ProfileLookup,
	auditor audit.Recorder,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		analytics: analytics,
		renderer:  renderer,
		storage:   storage,
		repo:      repo,
		profiles:  profiles,
		audit:     auditor,
		logger:    logger,
	}
}

// ArchiveReport generates the report of the selected period, renders it and stores the PDF
func (s *ReportService) ArchiveReport(ctx context.Context, userID string, q RangeQuery) (*model.ReportArchive, error) {
	report, err := s.analytics.Report(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	ownerName, err := s.profiles.OwnerName(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to resolve owner name", zap.Error(err), zap.String("user_id", userID))
		ownerName = ""
	}

	pdfBytes, err := s.renderer.Generate(*report, ownerName)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	archive := &model.ReportArchive{
		ID:             uuid.New().String(),
		UserID:         userID,
		DateRangeStart: report.StartDate,
		DateRangeEnd:   report.EndDate,
		GeneratedAt:    report.GeneratedAt,
	}

	archive.FilePath, err = s.storage.UploadReport(ctx, userID, archive.ID, pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	if err := s.repo.Create(ctx, archive); err != nil {
		if delErr := s.storage.DeleteReport(ctx, archive.FilePath); delErr != nil {
			s.logger.Warn("failed to remove orphaned report", zap.Error(delErr), zap.String("blob_name", archive.FilePath))
		}
		return nil, fmt.Errorf("failed to save report archive: %w", err)
	}

	s.record(ctx, userID, audit.OperationCreate, archive.ID)

	s.logger.Info("report archived",
		zap.String("report_id", archive.ID),
		zap.String("user_id", userID),
		zap.String("start_date", archive.DateRangeStart),
		zap.String("end_date", archive.DateRangeEnd),
	)

	return archive, nil
}

// ListReports returns the user's archived reports, newest first
func (s *ReportService) ListReports(ctx context.Context, userID string) ([]model.ReportArchive, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetReportPDF downloads an archived report
func (s *ReportService) GetReportPDF(ctx context.Context, reportID string) (*model.ReportArchive, []byte, error) {
	if _, err := uuid.Parse(reportID); err != nil {
		return nil, nil, validationError("report ID must be a UUID")
	}

	archive, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.storage.DownloadReport(ctx, archive.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download report: %w", err)
	}

	s.record(ctx, archive.UserID, audit.OperationRead, archive.ID)
	return archive, data, nil
}

func (s *ReportService) record(ctx context.Context, userID string, op audit.OperationType, reportID string) {
	err := s.audit.Log(ctx, audit.AuditLog{
		UserID:        userID,
		OperationType: op,
		ResourceType:  audit.ResourceReport,
		ResourceID:    reportID,
		Timestamp:     time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to write audit log", zap.Error(err), zap.String("report_id", reportID))
	}
}

// ReportFilename names a downloaded PDF
func ReportFilename(archive *model.ReportArchive) string {
	return fmt.Sprintf("health-report-%s-%s.pdf", archive.DateRangeStart, archive.DateRangeEnd)
}
