// Package resource maps domain records to the JSON shapes served by the API.
package resource

import (
	"time"

	"go-applicant-tracker/internal/domain"
)

// DateFormat renders dates as dd/mm/yyyy.
const DateFormat = "02/01/2006"

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

type User struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Username        *string  `json:"username,omitempty"`
	Email           string   `json:"email"`
	EmailVerifiedAt *string  `json:"email_verified_at"`
	Roles           []string `json:"roles,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func NewUser(u *domain.User) User {
	out := User{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.Roles,
		CreatedAt: date(u.CreatedAt),
		UpdatedAt: date(u.UpdatedAt),
	}
	if u.EmailVerifiedAt != nil {
		v := date(*u.EmailVerifiedAt)
		out.EmailVerifiedAt = &v
	}
	return out
}

type PersonalDetails struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	NationalID string `json:"nationalId"`
	ContactNo  string `json:"contactNo"`
	Address    string `json:"address"`
	Gender     string `json:"gender"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func NewPersonalDetails(p *domain.PersonalDetails) *PersonalDetails {
	if p == nil {
		return nil
	}
	return &PersonalDetails{
		ID:         p.ID,
		UserID:     p.UserID,
		Firstname:  p.Firstname,
		Lastname:   p.Lastname,
		NationalID: p.NationalID,
		ContactNo:  p.ContactNo,
		Address:    p.Address,
		Gender:     p.Gender,
		CreatedAt:  date(p.CreatedAt),
		UpdatedAt:  date(p.UpdatedAt),
	}
}

type HighestEducationLevel struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	Institution    string  `json:"institution"`
	Course         string  `json:"course"`
	GraduationYear int     `json:"graduationYear"`
	Grade          string  `json:"grade"`
	Certificate    *string `json:"certificate"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewHighestEducationLevel(h *domain.HighestEducationLevel) *HighestEducationLevel {
	if h == nil {
		return nil
	}
	return &HighestEducationLevel{
		ID:             h.ID,
		UserID:         h.UserID,
		Institution:    h.Institution,
		Course:         h.Course,
		GraduationYear: h.GraduationYear,
		Grade:          h.Grade,
		Certificate:    h.CertificateURL,
		CreatedAt:      date(h.CreatedAt),
		UpdatedAt:      date(h.UpdatedAt),
	}
}

type SecondaryEducation struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"user_id"`
	School          string  `json:"school"`
	KCSEYear        int     `json:"kcseYear"`
	Grade           string  `json:"grade"`
	KCSECertificate *string `json:"kcseCertificate"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func NewSecondaryEducation(s *domain.SecondaryEducation) *SecondaryEducation {
	if s == nil {
		return nil
	}
	return &SecondaryEducation{
		ID:              s.ID,
		UserID:          s.UserID,
		School:          s.School,
		KCSEYear:        s.KCSEYear,
		Grade:           s.Grade,
		KCSECertificate: s.KCSECertificate,
		CreatedAt:       date(s.CreatedAt),
		UpdatedAt:       date(s.UpdatedAt),
	}
}

type ProfessionalQualification struct {
	ID                      int64   `json:"id"`
	UserID                  int64   `json:"user_id"`
	Institution             string  `json:"institution"`
	Body                    string  `json:"body"`
	Award                   string  `json:"award"`
	ProfessionalCertificate *string `json:"professionalCertificate"`
	CreatedAt               string  `json:"created_at"`
	UpdatedAt               string  `json:"updated_at"`
}

func NewProfessionalQualification(q *domain.ProfessionalQualification) *ProfessionalQualification {
	if q == nil {
		return nil
	}
	return &ProfessionalQualification{
		ID:                      q.ID,
		UserID:                  q.UserID,
		Institution:             q.Institution,
		Body:                    q.Body,
		Award:                   q.Award,
		ProfessionalCertificate: q.ProfessionalCertificate,
		CreatedAt:               date(q.CreatedAt),
		UpdatedAt:               date(q.UpdatedAt),
	}
}

// Collection maps every record with fn.
func Collection[T any, R any](records []T, fn func(T) R) []R {
	out := make([]R, len(records))
	for i, r := range records {
		out[i] = fn(r)
	}
	return out
}
