package postgres

import (
	"context"
	"fmt"

	"go-applicant-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Highest education level

type highestEducationRepo struct {
	db *pgxpool.Pool
}

func NewHighestEducationLevelRepository(db *pgxpool.Pool) domain.HighestEducationLevelRepository {
	return &highestEducationRepo{db: db}
}

const highestEducationColumns = `id, user_id, institution, course, graduation_year, grade, certificate, created_at, updated_at`

func scanHighestEducation(row pgx.Row) (*domain.HighestEducationLevel, error) {
	var h domain.HighestEducationLevel
	err := row.Scan(&h.ID, &h.UserID, &h.Institution, &h.Course, &h.GraduationYear,
		&h.Grade, &h.CertificateURL, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *highestEducationRepo) GetByID(ctx context.Context, id int64) (*domain.HighestEducationLevel, error) {
	return scanHighestEducation(r.db.QueryRow(ctx, `SELECT `+highestEducationColumns+` FROM highest_education_levels WHERE id = $1`, id))
}

func (r *highestEducationRepo) GetByUserID(ctx context.Context, userID int64) (*domain.HighestEducationLevel, error) {
	return scanHighestEducation(r.db.QueryRow(ctx, `SELECT `+highestEducationColumns+` FROM highest_education_levels WHERE user_id = $1`, userID))
}

func (r *highestEducationRepo) List(ctx context.Context) ([]*domain.HighestEducationLevel, error) {
	rows, err := r.db.Query(ctx, `SELECT `+highestEducationColumns+` FROM highest_education_levels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanHighestEducation)
}

func (r *highestEducationRepo) ListByUserIDs(ctx context.Context, userIDs []int64) ([]*domain.HighestEducationLevel, error) {
	rows, err := r.db.Query(ctx, `SELECT `+highestEducationColumns+` FROM highest_education_levels WHERE user_id = ANY($1) ORDER BY id`, userIDs)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanHighestEducation)
}

func (r *highestEducationRepo) Create(ctx context.Context, h *domain.HighestEducationLevel) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO highest_education_levels (user_id, institution, course, graduation_year, grade, certificate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		h.UserID, h.Institution, h.Course, h.GraduationYear, h.Grade, h.CertificateURL,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert highest education level: %w", err)
	}
	return nil
}

func (r *highestEducationRepo) Update(ctx context.Context, h *domain.HighestEducationLevel) error {
	err := r.db.QueryRow(ctx, `
		UPDATE highest_education_levels
		SET institution = $2, course = $3, graduation_year = $4, grade = $5, certificate = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		h.ID, h.Institution, h.Course, h.GraduationYear, h.Grade, h.CertificateURL,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	return notFound(err)
}

func (r *highestEducationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM highest_education_levels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Secondary education

type secondaryEducationRepo struct {
	db *pgxpool.Pool
}

func NewSecondaryEducationRepository(db *pgxpool.Pool) domain.SecondaryEducationRepository {
	return &secondaryEducationRepo{db: db}
}

const secondaryEducationColumns = `id, user_id, school, kcse_year, grade, kcse_certificate, created_at, updated_at`

func scanSecondaryEducation(row pgx.Row) (*domain.SecondaryEducation, error) {
	var s domain.SecondaryEducation
	err := row.Scan(&s.ID, &s.UserID, &s.School, &s.KCSEYear, &s.Grade, &s.KCSECertificate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *secondaryEducationRepo) GetByID(ctx context.Context, id int64) (*domain.SecondaryEducation, error) {
	return scanSecondaryEducation(r.db.QueryRow(ctx, `SELECT `+secondaryEducationColumns+` FROM secondary_education WHERE id = $1`, id))
}

func (r *secondaryEducationRepo) GetByUserID(ctx context.Context, userID int64) (*domain.SecondaryEducation, error) {
	return scanSecondaryEducation(r.db.QueryRow(ctx, `SELECT `+secondaryEducationColumns+` FROM secondary_education WHERE user_id = $1`, userID))
}

func (r *secondaryEducationRepo) List(ctx context.Context) ([]*domain.SecondaryEducation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+secondaryEducationColumns+` FROM secondary_education ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSecondaryEducation)
}

func (r *secondaryEducationRepo) ListByUserIDs(ctx context.Context, userIDs []int64) ([]*domain.SecondaryEducation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+secondaryEducationColumns+` FROM secondary_education WHERE user_id = ANY($1) ORDER BY id`, userIDs)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSecondaryEducation)
}

func (r *secondaryEducationRepo) Create(ctx context.Context, s *domain.SecondaryEducation) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO secondary_education (user_id, school, kcse_year, grade, kcse_certificate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		s.UserID, s.School, s.KCSEYear, s.Grade, s.KCSECertificate,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert secondary education: %w", err)
	}
	return nil
}

func (r *secondaryEducationRepo) Update(ctx context.Context, s *domain.SecondaryEducation) error {
	err := r.db.QueryRow(ctx, `
		UPDATE secondary_education
		SET school = $2, kcse_year = $3, grade = $4, kcse_certificate = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		s.ID, s.School, s.KCSEYear, s.Grade, s.KCSECertificate,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return notFound(err)
}

func (r *secondaryEducationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM secondary_education WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
