package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/healthguide/internal/audit"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// NewRecord is the metadata a user submits for an uploaded document
type NewRecord struct {
	FileName     string
	FilePath     string
	FileType     string
	FileSize     int64
	DocumentType model.DocumentType
	ReportDate   *string
	HospitalName *string
	DoctorName   *string
	Notes        *string
	Tags         []string
}

// RecordService manages medical record metadata
type RecordService struct {
	repo   RecordRepositoryInterface
	audit  audit.Recorder
	logger *zap.Logger
	now    func() time.Time
}

// NewRecordService creates a new RecordService
func NewRecordService(repo RecordRepositoryInterface, auditor audit.Recorder, logger *zap.Logger) *RecordService {
	return &RecordService{
		repo:   repo,
		audit:  auditor,
		logger: logger,
		now:    time.Now,
	}
}

// CreateRecord stores the metadata of a document
func (s *RecordService) CreateRecord(ctx context.Context, userID string, in NewRecord) (*model.MedicalRecord, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateNewRecord(&in); err != nil {
		return nil, err
	}

	record := &model.MedicalRecord{
		ID:           uuid.New().String(),
		UserID:       userID,
		FileName:     in.FileName,
		FilePath:     in.FilePath,
		FileType:     in.FileType,
		FileSize:     in.FileSize,
		DocumentType: in.DocumentType,
		ReportDate:   in.ReportDate,
		HospitalName: blankToNil(in.HospitalName),
		DoctorName:   blankToNil(in.DoctorName),
		Notes:        blankToNil(in.Notes),
		Tags:         uniqueTrimmed(in.Tags),
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}
	s.record(ctx, userID, audit.OperationCreate, record.ID)

	s.logger.Info("medical record created",
		zap.String("record_id", record.ID),
		zap.String("user_id", userID),
		zap.String("document_type", string(record.DocumentType)),
	)

	return record, nil
}

// ListRecords returns the user's records, newest first
func (s *RecordService) ListRecords(ctx context.Context, userID string) ([]model.MedicalRecord, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID, nil)
}

// GetRecord returns a single record
func (s *RecordService) GetRecord(ctx context.Context, recordID string) (*model.MedicalRecord, error) {
	if _, err := uuid.Parse(recordID); err != nil {
		return nil, validationError("record ID must be a UUID")
	}
	return s.repo.FindByID(ctx, recordID)
}

// DeleteRecord removes a record's metadata
func (s *RecordService) DeleteRecord(ctx context.Context, recordID string) error {
	record, err := s.GetRecord(ctx, recordID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, recordID); err != nil {
		return err
	}
	s.record(ctx, record.UserID, audit.OperationDelete, recordID)

	s.logger.Info("medical record deleted", zap.String("record_id", recordID), zap.String("user_id", record.UserID))
	return nil
}

func (s *RecordService) record(ctx context.Context, userID string, op audit.OperationType, recordID string) {
	err := s.audit.Log(ctx, audit.AuditLog{
		UserID:        userID,
		OperationType: op,
		ResourceType:  audit.ResourceMedicalRecord,
		ResourceID:    recordID,
		Timestamp:     s.now(),
	})
	if err != nil {
		s.logger.Warn("failed to write audit log", zap.Error(err), zap.String("record_id", recordID))
	}
}

func validateNewRecord(in *NewRecord) error {
	in.FileName = strings.TrimSpace(in.FileName)
	in.FilePath = strings.TrimSpace(in.FilePath)

	if in.FileName == "" {
		return validationError("file name is required")
	}
	if in.FilePath == "" {
		return validationError("file path is required")
	}
	if in.FileSize < 0 {
		return validationError("file size must not be negative")
	}
	if in.DocumentType == "" {
		in.DocumentType = model.DocumentOther
	}
	if !in.DocumentType.Valid() {
		return validationError("invalid document type: %s", in.DocumentType)
	}
	if in.ReportDate != nil {
		if err := validateDate(*in.ReportDate); err != nil {
			return err
		}
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
