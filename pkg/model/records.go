package model

import "time"

// AgeGroup selects the dosage column of a medicine
type AgeGroup string

const (
	AgeGroupYouth  AgeGroup = "youth"
	AgeGroupAdult  AgeGroup = "adult"
	AgeGroupSenior AgeGroup = "senior"
)

// Valid reports whether the age group is one of the known groups
func (a AgeGroup) Valid() bool {
	switch a {
	case AgeGroupYouth, AgeGroupAdult, AgeGroupSenior:
		return true
	}
	return false
}

// Dosage holds a medicine's dosage per age group
type Dosage struct {
	Youth  string `yaml:"youth" json:"youth"`
	Adult  string `yaml:"adult" json:"adult"`
	Senior string `yaml:"senior" json:"senior"`
}

// For returns the dosage for the given age group
func (d Dosage) For(group AgeGroup) string {
	switch group {
	case AgeGroupYouth:
		return d.Youth
	case AgeGroupSenior:
		return d.Senior
	default:
		return d.Adult
	}
}

// Medicine is a recommended medicine for a disease
type Medicine struct {
	Name   string `yaml:"name" json:"name"`
	Dosage Dosage `yaml:"dosage" json:"dosage"`
	Timing string `yaml:"timing" json:"timing"`
}

// Disease is static reference data for the symptom matcher
type Disease struct {
	Name             string     `yaml:"name" json:"name"`
	Symptoms         []string   `yaml:"symptoms" json:"symptoms"`
	Medicines        []Medicine `yaml:"medicines" json:"medicines"`
	FoodToEat        []string   `yaml:"food_to_eat" json:"food_to_eat"`
	FoodToAvoid      []string   `yaml:"food_to_avoid" json:"food_to_avoid"`
	Duration         string     `yaml:"duration" json:"duration"`
	RequiresHospital bool       `yaml:"requires_hospital" json:"requires_hospital"`
}

// ChatRole represents the author of a chat message
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage represents one message of a chat session
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession represents a stored symptom-checker conversation
type ChatSession struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	AgeGroup  AgeGroup      `json:"age_group"`
	Messages  []ChatMessage `json:"messages,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DocumentType classifies an uploaded medical record
type DocumentType string

const (
	DocumentPrescription     DocumentType = "prescription"
	DocumentLabReport        DocumentType = "lab_report"
	DocumentImaging          DocumentType = "imaging"
	DocumentDischargeSummary DocumentType = "discharge_summary"
	DocumentVaccination      DocumentType = "vaccination_record"
	DocumentOther            DocumentType = "other"
)

// Valid reports whether the document type is known
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentPrescription, DocumentLabReport, DocumentImaging,
		DocumentDischargeSummary, DocumentVaccination, DocumentOther:
		return true
	}
	return false
}

// MedicalRecord is the metadata of a stored medical document
type MedicalRecord struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	FileName     string       `json:"file_name"`
	FilePath     string       `json:"file_path"`
	FileType     string       `json:"file_type"`
	FileSize     int64        `json:"file_size"`
	DocumentType DocumentType `json:"document_type"`
	ReportDate   *string      `json:"report_date,omitempty"`
	HospitalName *string      `json:"hospital_name,omitempty"`
	DoctorName   *string      `json:"doctor_name,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	Tags         []string     `json:"tags"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ExpiresIn selects the lifetime of a QR access token
type ExpiresIn string

const (
	ExpiresInHour  ExpiresIn = "hour"
	ExpiresInDay   ExpiresIn = "day"
	ExpiresInWeek  ExpiresIn = "week"
	ExpiresInNever ExpiresIn = "never"
)

// AccessToken grants read access to a user's records through a QR link
type AccessToken struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	RecordID     *string    `json:"record_id,omitempty"`
	Token        string     `json:"token"`
	PasswordHash *string    `json:"-"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	AccessCount  int        `json:"access_count"`
	IsRevoked    bool       `json:"is_revoked"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RequiresPassword reports whether the token is password protected
func (t *AccessToken) RequiresPassword() bool {
	return t.PasswordHash != nil && *t.PasswordHash != ""
}

// AccessLog records one successful use of an access token
type AccessLog struct {
	ID         string    `json:"id"`
	TokenID    string    `json:"token_id"`
	AccessedAt time.Time `json:"accessed_at"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
}

// AccessResult is the outcome of resolving a QR access token
type AccessResult struct {
	OK               bool            `json:"ok"`
	Error            string          `json:"error,omitempty"`
	OwnerName        string          `json:"owner_name,omitempty"`
	RequiresPassword bool            `json:"requires_password"`
	Records          []MedicalRecord `json:"records,omitempty"`
}
