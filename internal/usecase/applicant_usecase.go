package usecase

import (
	"context"
	"errors"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
)

const (
	defaultApplicantsPerPage = 15
	maxApplicantsPerPage     = 100
)

type applicantUsecase struct {
	users          domain.UserRepository
	personal       domain.PersonalDetailsRepository
	highest        domain.HighestEducationLevelRepository
	secondary      domain.SecondaryEducationRepository
	qualifications domain.ProfessionalQualificationRepository
}

func NewApplicantUsecase(
	users domain.UserRepository,
	personal domain.PersonalDetailsRepository,
	highest domain.HighestEducationLevelRepository,
	secondary domain.SecondaryEducationRepository,
	qualifications domain.ProfessionalQualificationRepository,
) domain.ApplicantUsecase {
	return &applicantUsecase{
		users:          users,
		personal:       personal,
		highest:        highest,
		secondary:      secondary,
		qualifications: qualifications,
	}
}

func (u *applicantUsecase) List(ctx context.Context, page, perPage int) (*domain.PaginatedResult[domain.Applicant], error) {
	page, perPage, offset := domain.NormalizePage(page, perPage, defaultApplicantsPerPage, maxApplicantsPerPage)

	users, total, err := u.users.List(ctx, offset, perPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ids := make([]int64, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}

	personal, err := u.personal.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	highest, err := u.highest.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	secondary, err := u.secondary.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	quals, err := u.qualifications.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	personalBy := byOwner(personal)
	highestBy := byOwner(highest)
	secondaryBy := byOwner(secondary)
	qualsBy := make(map[int64][]*domain.ProfessionalQualification)
	for _, q := range quals {
		qualsBy[q.UserID] = append(qualsBy[q.UserID], q)
	}

	items := make([]domain.Applicant, len(users))
	for i, user := range users {
		items[i] = domain.Applicant{
			User:                       user,
			PersonalDetails:            personalBy[user.ID],
			HighestEducationLevel:      highestBy[user.ID],
			SecondaryEducation:         secondaryBy[user.ID],
			ProfessionalQualifications: qualsBy[user.ID],
		}
	}

	return &domain.PaginatedResult[domain.Applicant]{
		Items:      items,
		Pagination: domain.NewPagination(page, perPage, total),
	}, nil
}

func (u *applicantUsecase) Get(ctx context.Context, userID int64) (*domain.Applicant, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "Applicant not found.")
	}

	applicant := &domain.Applicant{User: *user}
	if applicant.PersonalDetails, err = optional[domain.PersonalDetails](u.personal.GetByUserID(ctx, userID)); err != nil {
		return nil, err
	}
	if applicant.HighestEducationLevel, err = optional[domain.HighestEducationLevel](u.highest.GetByUserID(ctx, userID)); err != nil {
		return nil, err
	}
	if applicant.SecondaryEducation, err = optional[domain.SecondaryEducation](u.secondary.GetByUserID(ctx, userID)); err != nil {
		return nil, err
	}
	qual, err := optional[domain.ProfessionalQualification](u.qualifications.GetByUserID(ctx, userID))
	if err != nil {
		return nil, err
	}
	if qual != nil {
		applicant.ProfessionalQualifications = []*domain.ProfessionalQualification{qual}
	}
	return applicant, nil
}

func (u *applicantUsecase) EducationDetails(ctx context.Context) (*domain.EducationDetails, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}

	details := &domain.EducationDetails{}
	if details.PersonalDetails, err = optional[domain.PersonalDetails](u.personal.GetByUserID(ctx, actor.UserID)); err != nil {
		return nil, err
	}
	if details.ProfessionalQualifications, err = optional[domain.ProfessionalQualification](u.qualifications.GetByUserID(ctx, actor.UserID)); err != nil {
		return nil, err
	}
	if details.SecondaryEducation, err = optional[domain.SecondaryEducation](u.secondary.GetByUserID(ctx, actor.UserID)); err != nil {
		return nil, err
	}
	if details.HighestEducationLevel, err = optional[domain.HighestEducationLevel](u.highest.GetByUserID(ctx, actor.UserID)); err != nil {
		return nil, err
	}
	return details, nil
}

// optional turns a missing record into nil.
func optional[T any](record *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return record, nil
}

func byOwner[T domain.OwnedRecord](records []T) map[int64]T {
	out := make(map[int64]T, len(records))
	for _, r := range records {
		out[r.OwnerID()] = r
	}
	return out
}
