package domain

import (
	"context"
	"time"
)

// AttemptKind selects the table behind the shared attempt implementation.
type AttemptKind string

const (
	KindAssessmentAttempt    AttemptKind = "assessment_attempts"
	KindShortlistedApplicant AttemptKind = "shortlisted_applicants"
)

type AttemptStatus string

const (
	StatusInReview AttemptStatus = "In Review"
	StatusApproved AttemptStatus = "Approved"
	StatusRejected AttemptStatus = "Rejected"
	StatusHired    AttemptStatus = "Hired"
)

func (s AttemptStatus) Valid() bool {
	switch s {
	case StatusInReview, StatusApproved, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Attempt is one assessment submission or shortlist entry of a user for a job.
type Attempt struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id"`
	JobID           string        `json:"job_id"`
	AssessmentID    string        `json:"assessment_id"`
	AssessmentScore *int64        `json:"assessment_score"`
	PracticalScore  *int64        `json:"practical_score"`
	InterviewScore  *int64        `json:"interview_score"`
	Status          AttemptStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Filled by roster queries that join users.
	ApplicantName  string `json:"-"`
	ApplicantEmail string `json:"-"`
}

// AttemptPatch holds the fields present in a partial update.
type AttemptPatch struct {
	JobID           *string
	AssessmentID    *string
	AssessmentScore *int64
	PracticalScore  *int64
	InterviewScore  *int64
	Status          *AttemptStatus
}

func (p AttemptPatch) Empty() bool {
	return p.JobID == nil && p.AssessmentID == nil && p.AssessmentScore == nil &&
		p.PracticalScore == nil && p.InterviewScore == nil && p.Status == nil
}

// JobGroup is the attempts of one job in natural order.
type JobGroup struct {
	JobID    string    `json:"job_id"`
	Attempts []Attempt `json:"applicants"`
}

type AttemptRepository interface {
	Kind() AttemptKind
	Create(ctx context.Context, attempt *Attempt) error
	GetByID(ctx context.Context, id int64) (*Attempt, error)
	Update(ctx context.Context, id int64, patch AttemptPatch) (*Attempt, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]Attempt, error)
	// ListByJob and ListAll return rows in insertion order with applicant name and email.
	ListByJob(ctx context.Context, jobID string) ([]Attempt, error)
	ListAll(ctx context.Context) ([]Attempt, error)
	FindLatest(ctx context.Context, userID int64, jobID, assessmentID string) (*Attempt, error)
}

type RecordAttemptInput struct {
	JobID           string
	AssessmentID    string
	AssessmentScore int64
}

// AttemptCheck answers whether the caller already attempted an assessment.
type AttemptCheck struct {
	Attempted       bool       `json:"attempted"`
	AssessmentScore *int64     `json:"assessment_score,omitempty"`
	AttemptDate     *time.Time `json:"attempt_date,omitempty"`
}

type AttemptUsecase interface {
	Kind() AttemptKind
	Record(ctx context.Context, in RecordAttemptInput) (*Attempt, error)
	Check(ctx context.Context, jobID, assessmentID string) (*AttemptCheck, error)
	Get(ctx context.Context, id int64) (*Attempt, error)
	Update(ctx context.Context, id int64, patch AttemptPatch) (*Attempt, error)
	Delete(ctx context.Context, id int64) error
	ListMine(ctx context.Context) ([]Attempt, error)
	ListByUser(ctx context.Context, userID int64) ([]Attempt, error)
	// ListByJob ranks by assessment score, highest first, nulls last, ties by creation.
	ListByJob(ctx context.Context, jobID string) ([]Attempt, error)
	GroupByJob(ctx context.Context) ([]JobGroup, error)
	ExportByJob(ctx context.Context, jobID string) ([]byte, error)
}
