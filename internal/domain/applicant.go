package domain

import "context"

// Applicant is a user with every profile sub-resource attached.
type Applicant struct {
	User                       User
	PersonalDetails            *PersonalDetails
	HighestEducationLevel      *HighestEducationLevel
	SecondaryEducation         *SecondaryEducation
	ProfessionalQualifications []*ProfessionalQualification
}

// EducationDetails is the caller's own profile in one payload.
type EducationDetails struct {
	PersonalDetails            *PersonalDetails           `json:"personal_details"`
	ProfessionalQualifications *ProfessionalQualification `json:"professional_qualifications"`
	SecondaryEducation         *SecondaryEducation        `json:"secondary_education"`
	HighestEducationLevel      *HighestEducationLevel     `json:"highest_education_level"`
}

type ApplicantUsecase interface {
	List(ctx context.Context, page, perPage int) (*PaginatedResult[Applicant], error)
	Get(ctx context.Context, userID int64) (*Applicant, error)
	EducationDetails(ctx context.Context) (*EducationDetails, error)
}
