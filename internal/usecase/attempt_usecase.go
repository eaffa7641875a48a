package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
)

// attemptUsecase serves assessment attempts and shortlisted applicants.
type attemptUsecase struct {
	repo  domain.AttemptRepository
	label string
}

func NewAttemptUsecase(repo domain.AttemptRepository) domain.AttemptUsecase {
	label := "Assessment attempt"
	if repo.Kind() == domain.KindShortlistedApplicant {
		label = "Shortlisted applicant"
	}
	return &attemptUsecase{repo: repo, label: label}
}

func (u *attemptUsecase) Kind() domain.AttemptKind { return u.repo.Kind() }

func (u *attemptUsecase) notFound() error {
	return apperror.NotFound(u.label + " not found.")
}

func (u *attemptUsecase) Record(ctx context.Context, in domain.RecordAttemptInput) (*domain.Attempt, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	score := in.AssessmentScore
	attempt := &domain.Attempt{
		UserID:          actor.UserID,
		JobID:           in.JobID,
		AssessmentID:    in.AssessmentID,
		AssessmentScore: &score,
		Status:          domain.StatusInReview,
	}
	if err := u.repo.Create(ctx, attempt); err != nil {
		return nil, apperror.Internal(err)
	}
	return attempt, nil
}

func (u *attemptUsecase) Check(ctx context.Context, jobID, assessmentID string) (*domain.AttemptCheck, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	if _, err := strconv.ParseInt(jobID, 10, 64); err != nil {
		fields["job_id"] = []string{"The job id must be an integer."}
	}
	if _, err := strconv.ParseInt(assessmentID, 10, 64); err != nil {
		fields["assessment_id"] = []string{"The assessment id must be an integer."}
	}
	if len(fields) > 0 {
		return nil, apperror.Validation("The given data was invalid.", fields)
	}

	latest, err := u.repo.FindLatest(ctx, actor.UserID, jobID, assessmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.AttemptCheck{Attempted: false}, nil
		}
		return nil, apperror.Internal(err)
	}
	created := latest.CreatedAt
	return &domain.AttemptCheck{
		Attempted:       true,
		AssessmentScore: latest.AssessmentScore,
		AttemptDate:     &created,
	}, nil
}

func (u *attemptUsecase) load(ctx context.Context, id int64) (*domain.Attempt, error) {
	attempt, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, u.notFound()
		}
		return nil, apperror.Internal(err)
	}
	return attempt, nil
}

func (u *attemptUsecase) Get(ctx context.Context, id int64) (*domain.Attempt, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	attempt, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, attempt.UserID, domain.PermAssessmentList); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (u *attemptUsecase) Update(ctx context.Context, id int64, patch domain.AttemptPatch) (*domain.Attempt, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requirePermission(actor, domain.PermAssessmentEdit); err != nil {
		return nil, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperror.Validation("The given data was invalid.", map[string][]string{
			"status": {"The selected status is invalid."},
		})
	}

	attempt, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, u.notFound()
		}
		return nil, apperror.Internal(err)
	}
	return attempt, nil
}

func (u *attemptUsecase) Delete(ctx context.Context, id int64) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	attempt, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, attempt.UserID, domain.PermAssessmentDelete); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return u.notFound()
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *attemptUsecase) ListMine(ctx context.Context) ([]domain.Attempt, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	attempts, err := u.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return attempts, nil
}

func (u *attemptUsecase) ListByUser(ctx context.Context, userID int64) ([]domain.Attempt, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, userID, domain.PermUserList); err != nil {
		return nil, err
	}
	attempts, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return attempts, nil
}

func (u *attemptUsecase) ListByJob(ctx context.Context, jobID string) ([]domain.Attempt, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requirePermission(actor, domain.PermAssessmentList); err != nil {
		return nil, err
	}
	attempts, err := u.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	RankByScore(attempts)
	return attempts, nil
}

func (u *attemptUsecase) GroupByJob(ctx context.Context) ([]domain.JobGroup, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requirePermission(actor, domain.PermAssessmentList); err != nil {
		return nil, err
	}
	attempts, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return GroupByJob(attempts), nil
}

func (u *attemptUsecase) ExportByJob(ctx context.Context, jobID string) ([]byte, error) {
	attempts, err := u.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	data, err := exportRoster(u.label, attempts)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return data, nil
}

// RankByScore orders attempts by assessment score, highest first. Attempts
// without a score go last; equal scores keep their existing order.
func RankByScore(attempts []domain.Attempt) {
	sort.SliceStable(attempts, func(i, j int) bool {
		a, b := attempts[i].AssessmentScore, attempts[j].AssessmentScore
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
}

// GroupByJob partitions attempts by job in order of first appearance.
func GroupByJob(attempts []domain.Attempt) []domain.JobGroup {
	groups := []domain.JobGroup{}
	index := make(map[string]int)
	for _, a := range attempts {
		i, ok := index[a.JobID]
		if !ok {
			i = len(groups)
			index[a.JobID] = i
			groups = append(groups, domain.JobGroup{JobID: a.JobID})
		}
		groups[i].Attempts = append(groups[i].Attempts, a)
	}
	return groups
}
