package postgres

import (
	"context"
	"fmt"

	"go-applicant-tracker/internal/domain"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// attemptRepo serves both assessment attempts and shortlisted applicants;
// the two tables share a layout.
type attemptRepo struct {
	db   *pgxpool.Pool
	kind domain.AttemptKind
}

func NewAttemptRepository(db *pgxpool.Pool, kind domain.AttemptKind) domain.AttemptRepository {
	return &attemptRepo{db: db, kind: kind}
}

var attemptColumns = []string{
	"a.id", "a.user_id", "a.job_id", "a.assessment_id", "a.assessment_score",
	"a.practical_score", "a.interview_score", "a.status", "a.created_at", "a.updated_at",
	"COALESCE(u.name, '')", "COALESCE(u.email, '')",
}

func scanAttempt(row pgx.Row) (domain.Attempt, error) {
	var a domain.Attempt
	var status string
	err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.AssessmentID, &a.AssessmentScore,
		&a.PracticalScore, &a.InterviewScore, &status, &a.CreatedAt, &a.UpdatedAt,
		&a.ApplicantName, &a.ApplicantEmail)
	if err != nil {
		return a, notFound(err)
	}
	a.Status = domain.AttemptStatus(status)
	return a, nil
}

func (r *attemptRepo) Kind() domain.AttemptKind { return r.kind }

func (r *attemptRepo) selectAttempts() squirrel.SelectBuilder {
	return psql.Select(attemptColumns...).
		From(string(r.kind) + " a").
		LeftJoin("users u ON u.id = a.user_id")
}

func (r *attemptRepo) one(ctx context.Context, q squirrel.SelectBuilder) (*domain.Attempt, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	a, err := scanAttempt(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepo) many(ctx context.Context, q squirrel.SelectBuilder) ([]domain.Attempt, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.kind, err)
	}
	return collect(rows, scanAttempt)
}

func (r *attemptRepo) Create(ctx context.Context, a *domain.Attempt) error {
	if a.Status == "" {
		a.Status = domain.StatusInReview
	}
	sql, args, err := psql.Insert(string(r.kind)).
		Columns("user_id", "job_id", "assessment_id", "assessment_score", "practical_score",
			"interview_score", "status", "created_at", "updated_at").
		Values(a.UserID, a.JobID, a.AssessmentID, a.AssessmentScore, a.PracticalScore,
			a.InterviewScore, string(a.Status), squirrel.Expr("NOW()"), squirrel.Expr("NOW()")).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("insert %s: %w", r.kind, err)
	}
	return nil
}

func (r *attemptRepo) GetByID(ctx context.Context, id int64) (*domain.Attempt, error) {
	return r.one(ctx, r.selectAttempts().Where(squirrel.Eq{"a.id": id}))
}

// attemptPatchSet lists the columns written by a partial update.
func attemptPatchSet(patch domain.AttemptPatch) map[string]interface{} {
	set := map[string]interface{}{"updated_at": squirrel.Expr("NOW()")}
	if patch.JobID != nil {
		set["job_id"] = *patch.JobID
	}
	if patch.AssessmentID != nil {
		set["assessment_id"] = *patch.AssessmentID
	}
	if patch.AssessmentScore != nil {
		set["assessment_score"] = *patch.AssessmentScore
	}
	if patch.PracticalScore != nil {
		set["practical_score"] = *patch.PracticalScore
	}
	if patch.InterviewScore != nil {
		set["interview_score"] = *patch.InterviewScore
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	return set
}

func buildAttemptUpdate(kind domain.AttemptKind, id int64, patch domain.AttemptPatch) (string, []interface{}, error) {
	return psql.Update(string(kind)).
		SetMap(attemptPatchSet(patch)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func (r *attemptRepo) Update(ctx context.Context, id int64, patch domain.AttemptPatch) (*domain.Attempt, error) {
	sql, args, err := buildAttemptUpdate(r.kind, id, patch)
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", r.kind, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *attemptRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete(string(r.kind)).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attemptRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Attempt, error) {
	return r.many(ctx, r.selectAttempts().Where(squirrel.Eq{"a.user_id": userID}).OrderBy("a.id"))
}

func (r *attemptRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Attempt, error) {
	return r.many(ctx, r.selectAttempts().Where(squirrel.Eq{"a.job_id": jobID}).OrderBy("a.id"))
}

func (r *attemptRepo) ListAll(ctx context.Context) ([]domain.Attempt, error) {
	return r.many(ctx, r.selectAttempts().OrderBy("a.id"))
}

func (r *attemptRepo) FindLatest(ctx context.Context, userID int64, jobID, assessmentID string) (*domain.Attempt, error) {
	return r.one(ctx, r.selectAttempts().
		Where(squirrel.Eq{"a.user_id": userID, "a.job_id": jobID, "a.assessment_id": assessmentID}).
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(1))
}
