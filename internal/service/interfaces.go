package service

import (
	"context"

	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// EntryRepositoryInterface is the date-keyed entry store
type EntryRepositoryInterface interface {
	SaveEntry(ctx context.Context, userID string, entry *model.HealthEntry) error
	GetEntry(ctx context.Context, userID, date string) (*model.HealthEntry, error)
	LoadEntries(ctx context.Context, userID string) (map[string]model.HealthEntry, error)
}

// MedicationRepositoryInterface stores the prescribed medication list of a user
type MedicationRepositoryInterface interface {
	ListPrescribed(ctx context.Context, userID string) ([]string, error)
	AddPrescribed(ctx context.Context, userID, name string) (bool, error)
	RemovePrescribed(ctx context.Context, userID, name string) error
}

// ChatRepositoryInterface stores chat sessions and their messages
type ChatRepositoryInterface interface {
	CreateSession(ctx context.Context, session *model.ChatSession) error
	GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error)
	ListSessions(ctx context.Context, userID string) ([]model.ChatSession, error)
	AddMessages(ctx context.Context, sessionID string, messages ...model.ChatMessage) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// RecordRepositoryInterface stores medical record metadata
type RecordRepositoryInterface interface {
	Create(ctx context.Context, record *model.MedicalRecord) error
	FindByID(ctx context.Context, recordID string) (*model.MedicalRecord, error)
	ListByUser(ctx context.Context, userID string, recordID *string) ([]model.MedicalRecord, error)
	Delete(ctx context.Context, recordID string) error
}

// AccessTokenRepositoryInterface stores QR access tokens and their usage
type AccessTokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.AccessToken) error
	FindByToken(ctx context.Context, value string) (*model.AccessToken, error)
	FindByID(ctx context.Context, tokenID string) (*model.AccessToken, error)
	ListByUser(ctx context.Context, userID string) ([]model.AccessToken, error)
	Revoke(ctx context.Context, tokenID string) error
	RecordAccess(ctx context.Context, entry *model.AccessLog) error
	ListLogs(ctx context.Context, tokenID string) ([]model.AccessLog, error)
	OwnerName(ctx context.Context, userID string) (string, error)
}

// ReportRepositoryInterface stores archived report metadata
type ReportRepositoryInterface interface {
	Create(ctx context.Context, archive *model.ReportArchive) error
	FindByID(ctx context.Context, reportID string) (*model.ReportArchive, error)
	ListByUser(ctx context.Context, userID string) ([]model.ReportArchive, error)
}

// NotesCipher seals free-text notes at rest
type NotesCipher interface {
	EncryptOptional(value *string) (*string, error)
	DecryptOptional(value *string) (*string, error)
}
