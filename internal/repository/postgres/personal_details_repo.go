package postgres

import (
	"context"
	"fmt"

	"go-applicant-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type personalDetailsRepo struct {
	db *pgxpool.Pool
}

func NewPersonalDetailsRepository(db *pgxpool.Pool) domain.PersonalDetailsRepository {
	return &personalDetailsRepo{db: db}
}

const personalDetailsColumns = `id, user_id, firstname, lastname, national_id, contact_no, address, gender, created_at, updated_at`

func scanPersonalDetails(row pgx.Row) (*domain.PersonalDetails, error) {
	var p domain.PersonalDetails
	err := row.Scan(&p.ID, &p.UserID, &p.Firstname, &p.Lastname, &p.NationalID,
		&p.ContactNo, &p.Address, &p.Gender, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *personalDetailsRepo) GetByID(ctx context.Context, id int64) (*domain.PersonalDetails, error) {
	return scanPersonalDetails(r.db.QueryRow(ctx, `SELECT `+personalDetailsColumns+` FROM personal_details WHERE id = $1`, id))
}

func (r *personalDetailsRepo) GetByUserID(ctx context.Context, userID int64) (*domain.PersonalDetails, error) {
	return scanPersonalDetails(r.db.QueryRow(ctx, `SELECT `+personalDetailsColumns+` FROM personal_details WHERE user_id = $1`, userID))
}

func (r *personalDetailsRepo) List(ctx context.Context) ([]*domain.PersonalDetails, error) {
	rows, err := r.db.Query(ctx, `SELECT `+personalDetailsColumns+` FROM personal_details ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPersonalDetails)
}

func (r *personalDetailsRepo) ListByUserIDs(ctx context.Context, userIDs []int64) ([]*domain.PersonalDetails, error) {
	rows, err := r.db.Query(ctx, `SELECT `+personalDetailsColumns+` FROM personal_details WHERE user_id = ANY($1) ORDER BY id`, userIDs)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPersonalDetails)
}

func (r *personalDetailsRepo) Create(ctx context.Context, p *domain.PersonalDetails) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO personal_details (user_id, firstname, lastname, national_id, contact_no, address, gender, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		p.UserID, p.Firstname, p.Lastname, p.NationalID, p.ContactNo, p.Address, p.Gender,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert personal details: %w", err)
	}
	return nil
}

func (r *personalDetailsRepo) Update(ctx context.Context, p *domain.PersonalDetails) error {
	err := r.db.QueryRow(ctx, `
		UPDATE personal_details
		SET firstname = $2, lastname = $3, national_id = $4, contact_no = $5, address = $6, gender = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		p.ID, p.Firstname, p.Lastname, p.NationalID, p.ContactNo, p.Address, p.Gender,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return notFound(err)
}

func (r *personalDetailsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM personal_details WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
