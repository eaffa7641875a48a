package resource

import "go-applicant-tracker/internal/domain"

type Applicant struct {
	ID                         int64                        `json:"id"`
	Name                       string                       `json:"name"`
	Email                      string                       `json:"email"`
	CreatedAt                  string                       `json:"created_at"`
	PersonalDetails            *PersonalDetails             `json:"personal_details"`
	HighestEducationLevel      *HighestEducationLevel       `json:"highest_education_level"`
	SecondaryEducation         *SecondaryEducation          `json:"secondary_education"`
	ProfessionalQualifications []*ProfessionalQualification `json:"professional_qualifications"`
}

func NewApplicant(a domain.Applicant) Applicant {
	return Applicant{
		ID:                         a.User.ID,
		Name:                       a.User.DisplayName(),
		Email:                      a.User.Email,
		CreatedAt:                  date(a.User.CreatedAt),
		PersonalDetails:            NewPersonalDetails(a.PersonalDetails),
		HighestEducationLevel:      NewHighestEducationLevel(a.HighestEducationLevel),
		SecondaryEducation:         NewSecondaryEducation(a.SecondaryEducation),
		ProfessionalQualifications: Collection(a.ProfessionalQualifications, NewProfessionalQualification),
	}
}

type EducationDetails struct {
	PersonalDetails            *PersonalDetails           `json:"personal_details"`
	ProfessionalQualifications *ProfessionalQualification `json:"professional_qualifications"`
	SecondaryEducation         *SecondaryEducation        `json:"secondary_education"`
	HighestEducationLevel      *HighestEducationLevel     `json:"highest_education_level"`
}

func NewEducationDetails(d *domain.EducationDetails) EducationDetails {
	return EducationDetails{
		PersonalDetails:            NewPersonalDetails(d.PersonalDetails),
		ProfessionalQualifications: NewProfessionalQualification(d.ProfessionalQualifications),
		SecondaryEducation:         NewSecondaryEducation(d.SecondaryEducation),
		HighestEducationLevel:      NewHighestEducationLevel(d.HighestEducationLevel),
	}
}
