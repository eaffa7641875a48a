package resource

import (
	"go-applicant-tracker/internal/domain"
)

type Attempt struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	JobID           string `json:"job_id"`
	AssessmentID    string `json:"assessment_id"`
	AssessmentScore *int64 `json:"assessment_score"`
	PracticalScore  *int64 `json:"practical_score"`
	InterviewScore  *int64 `json:"interview_score"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func NewAttempt(a domain.Attempt) Attempt {
	return Attempt{
		ID:              a.ID,
		UserID:          a.UserID,
		JobID:           a.JobID,
		AssessmentID:    a.AssessmentID,
		AssessmentScore: a.AssessmentScore,
		PracticalScore:  a.PracticalScore,
		InterviewScore:  a.InterviewScore,
		Status:          string(a.Status),
		CreatedAt:       date(a.CreatedAt),
		UpdatedAt:       date(a.UpdatedAt),
	}
}

// RosterApplicant is one applicant in a job roster.
type RosterApplicant struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	JobID           string `json:"job_id"`
	AssessmentID    string `json:"assessment_id"`
	AssessmentScore *int64 `json:"assessment_score"`
	PracticalScore  *int64 `json:"practical_score"`
	InterviewScore  *int64 `json:"interview_score"`
	Status          string `json:"status"`
	ApplicationDate string `json:"application_date"`
	UpdatedAt       string `json:"updated_at"`
}

type RosterEntry struct {
	Applicant RosterApplicant `json:"applicant"`
}

func NewRosterApplicant(a domain.Attempt) RosterApplicant {
	return RosterApplicant{
		ID:              a.ID,
		UserID:          a.UserID,
		Name:            a.ApplicantName,
		Email:           a.ApplicantEmail,
		JobID:           a.JobID,
		AssessmentID:    a.AssessmentID,
		AssessmentScore: a.AssessmentScore,
		PracticalScore:  a.PracticalScore,
		InterviewScore:  a.InterviewScore,
		Status:          string(a.Status),
		ApplicationDate: date(a.CreatedAt),
		UpdatedAt:       date(a.UpdatedAt),
	}
}

func NewRosterEntry(a domain.Attempt) RosterEntry {
	return RosterEntry{Applicant: NewRosterApplicant(a)}
}

type JobGroup struct {
	JobID      string            `json:"job_id"`
	Applicants []RosterApplicant `json:"applicants"`
}

func NewJobGroup(g domain.JobGroup) JobGroup {
	return JobGroup{JobID: g.JobID, Applicants: Collection(g.Attempts, NewRosterApplicant)}
}

type AttemptCheck struct {
	Attempted       bool    `json:"attempted"`
	AssessmentScore *int64  `json:"assessment_score,omitempty"`
	AttemptDate     *string `json:"attempt_date,omitempty"`
}

func NewAttemptCheck(c *domain.AttemptCheck) AttemptCheck {
	out := AttemptCheck{Attempted: c.Attempted, AssessmentScore: c.AssessmentScore}
	if c.AttemptDate != nil {
		d := date(*c.AttemptDate)
		out.AttemptDate = &d
	}
	return out
}
