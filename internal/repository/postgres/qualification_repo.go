package postgres

import (
	"context"
	"fmt"

	"go-applicant-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type qualificationRepo struct {
	db *pgxpool.Pool
}

func NewProfessionalQualificationRepository(db *pgxpool.Pool) domain.ProfessionalQualificationRepository {
	return &qualificationRepo{db: db}
}

const qualificationColumns = `id, user_id, institution, body, award, professional_certificate, created_at, updated_at`

func scanQualification(row pgx.Row) (*domain.ProfessionalQualification, error) {
	var q domain.ProfessionalQualification
	err := row.Scan(&q.ID, &q.UserID, &q.Institution, &q.Body, &q.Award, &q.ProfessionalCertificate, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &q, nil
}

func (r *qualificationRepo) GetByID(ctx context.Context, id int64) (*domain.ProfessionalQualification, error) {
	return scanQualification(r.db.QueryRow(ctx, `SELECT `+qualificationColumns+` FROM professional_qualifications WHERE id = $1`, id))
}

func (r *qualificationRepo) GetByUserID(ctx context.Context, userID int64) (*domain.ProfessionalQualification, error) {
	return scanQualification(r.db.QueryRow(ctx, `SELECT `+qualificationColumns+` FROM professional_qualifications WHERE user_id = $1`, userID))
}

func (r *qualificationRepo) List(ctx context.Context) ([]*domain.ProfessionalQualification, error) {
	rows, err := r.db.Query(ctx, `SELECT `+qualificationColumns+` FROM professional_qualifications ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanQualification)
}

func (r *qualificationRepo) ListByUserIDs(ctx context.Context, userIDs []int64) ([]*domain.ProfessionalQualification, error) {
	rows, err := r.db.Query(ctx, `SELECT `+qualificationColumns+` FROM professional_qualifications WHERE user_id = ANY($1) ORDER BY id`, userIDs)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanQualification)
}

func (r *qualificationRepo) Create(ctx context.Context, q *domain.ProfessionalQualification) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO professional_qualifications (user_id, institution, body, award, professional_certificate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		q.UserID, q.Institution, q.Body, q.Award, q.ProfessionalCertificate,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert professional qualification: %w", err)
	}
	return nil
}

func (r *qualificationRepo) Update(ctx context.Context, q *domain.ProfessionalQualification) error {
	err := r.db.QueryRow(ctx, `
		UPDATE professional_qualifications
		SET institution = $2, body = $3, award = $4, professional_certificate = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		q.ID, q.Institution, q.Body, q.Award, q.ProfessionalCertificate,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	return notFound(err)
}

func (r *qualificationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM professional_qualifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
