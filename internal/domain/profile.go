package domain

import (
	"context"
	"time"
)

// Storage prefixes for certificates, one per resource.
const (
	PrefixHighestEducationCertificate = "applicant_certificates"
	PrefixKCSECertificate             = "applicant_kcse_certificates"
	PrefixProfessionalCertificate     = "applicant_professional_certificates"
)

// OwnedRecord is a profile sub-resource of which a user owns at most one.
type OwnedRecord interface {
	RecordID() int64
	OwnerID() int64
	// Assign sets identity fields that clients never supply.
	Assign(id, userID int64)
	Certificate() *string
	SetCertificate(path *string)
}

type PersonalDetails struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Firstname  string    `json:"firstname"`
	Lastname   string    `json:"lastname"`
	NationalID string    `json:"nationalId"`
	ContactNo  string    `json:"contactNo"`
	Address    string    `json:"address"`
	Gender     string    `json:"gender"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *PersonalDetails) RecordID() int64         { return p.ID }
func (p *PersonalDetails) OwnerID() int64          { return p.UserID }
func (p *PersonalDetails) Assign(id, userID int64) { p.ID, p.UserID = id, userID }
func (p *PersonalDetails) Certificate() *string    { return nil }
func (p *PersonalDetails) SetCertificate(*string)  {}

type HighestEducationLevel struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Institution    string    `json:"institution"`
	Course         string    `json:"course"`
	GraduationYear int       `json:"graduationYear"`
	Grade          string    `json:"grade"`
	CertificateURL *string   `json:"certificate"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (h *HighestEducationLevel) RecordID() int64           { return h.ID }
func (h *HighestEducationLevel) OwnerID() int64            { return h.UserID }
func (h *HighestEducationLevel) Assign(id, userID int64)   { h.ID, h.UserID = id, userID }
func (h *HighestEducationLevel) Certificate() *string      { return h.CertificateURL }
func (h *HighestEducationLevel) SetCertificate(p *string) { h.CertificateURL = p }

type SecondaryEducation struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	School          string    `json:"school"`
	KCSEYear        int       `json:"kcseYear"`
	Grade           string    `json:"grade"`
	KCSECertificate *string   `json:"kcseCertificate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s *SecondaryEducation) RecordID() int64           { return s.ID }
func (s *SecondaryEducation) OwnerID() int64            { return s.UserID }
func (s *SecondaryEducation) Assign(id, userID int64)   { s.ID, s.UserID = id, userID }
func (s *SecondaryEducation) Certificate() *string      { return s.KCSECertificate }
func (s *SecondaryEducation) SetCertificate(p *string) { s.KCSECertificate = p }

type ProfessionalQualification struct {
	ID                      int64     `json:"id"`
	UserID                  int64     `json:"user_id"`
	Institution             string    `json:"institution"`
	Body                    string    `json:"body"`
	Award                   string    `json:"award"`
	ProfessionalCertificate *string   `json:"professionalCertificate"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (q *ProfessionalQualification) RecordID() int64           { return q.ID }
func (q *ProfessionalQualification) OwnerID() int64            { return q.UserID }
func (q *ProfessionalQualification) Assign(id, userID int64)   { q.ID, q.UserID = id, userID }
func (q *ProfessionalQualification) Certificate() *string      { return q.ProfessionalCertificate }
func (q *ProfessionalQualification) SetCertificate(p *string) { q.ProfessionalCertificate = p }

// OwnedRepository persists one kind of profile sub-resource. T is a pointer type.
type OwnedRepository[T OwnedRecord] interface {
	GetByID(ctx context.Context, id int64) (T, error)
	GetByUserID(ctx context.Context, userID int64) (T, error)
	List(ctx context.Context) ([]T, error)
	ListByUserIDs(ctx context.Context, userIDs []int64) ([]T, error)
	// Create returns ErrDuplicate when the owner already has a record.
	Create(ctx context.Context, record T) error
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id int64) error
}

type (
	PersonalDetailsRepository           = OwnedRepository[*PersonalDetails]
	HighestEducationLevelRepository     = OwnedRepository[*HighestEducationLevel]
	SecondaryEducationRepository        = OwnedRepository[*SecondaryEducation]
	ProfessionalQualificationRepository = OwnedRepository[*ProfessionalQualification]
)

// CertificateUpload is a file received with a create or update request.
type CertificateUpload struct {
	Filename string
	Data     []byte
}

type ProfileUsecase[T OwnedRecord] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, record T, certificate *CertificateUpload) (T, error)
	// Update replaces every client field; a nil certificate keeps the stored one.
	Update(ctx context.Context, id int64, record T, certificate *CertificateUpload) (T, error)
	Delete(ctx context.Context, id int64) error
}
