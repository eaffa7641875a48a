package postgres

import (
	"context"
	"fmt"
	"time"

	"go-applicant-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, name, username, email, password, email_verified_at, remember_token, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash,
		&u.EmailVerifiedAt, &u.RememberToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

const insertUserSQL = `INSERT INTO users (name, username, email, password, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	RETURNING id, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, insertUserSQL, user.Name, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) CreateWithRole(ctx context.Context, user *domain.User, roleID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, insertUserSQL, user.Name, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO model_has_roles (role_id, user_id) VALUES ($1, $2)`, roleID, user.ID); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// List pages users by id.
func (r *userRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := buildUserPage(offset, limit)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func buildUserPage(offset, limit int) (string, []interface{}, error) {
	return psql.Select(userColumns).
		From("users").
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, passwordHash, rememberToken string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $2, remember_token = $3, updated_at = NOW() WHERE id = $1`,
		id, passwordHash, rememberToken)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkEmailVerified keeps the first verification time.
func (r *userRepo) MarkEmailVerified(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET email_verified_at = COALESCE(email_verified_at, $2), updated_at = NOW() WHERE id = $1`,
		id, at)
	return err
}
