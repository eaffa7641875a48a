package postgres

import (
	"context"
	"time"

	"go-applicant-tracker/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type tokenRepo struct {
	db *pgxpool.Pool
}

func NewTokenRepository(db *pgxpool.Pool) domain.TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) Create(ctx context.Context, token *domain.AccessToken) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO personal_access_tokens (user_id, name, token, created_at) VALUES ($1, $2, $3, NOW())
		 RETURNING id, created_at`,
		token.UserID, token.Name, token.Hash).Scan(&token.ID, &token.CreatedAt)
}

func (r *tokenRepo) GetByID(ctx context.Context, id int64) (*domain.AccessToken, error) {
	var t domain.AccessToken
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, token, last_used_at, created_at FROM personal_access_tokens WHERE id = $1`, id).
		Scan(&t.ID, &t.UserID, &t.Name, &t.Hash, &t.LastUsedAt, &t.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *tokenRepo) Touch(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE personal_access_tokens SET last_used_at = $2 WHERE id = $1`, id, at)
	return err
}

func (r *tokenRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM personal_access_tokens WHERE id = $1`, id)
	return err
}

func (r *tokenRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM personal_access_tokens WHERE user_id = $1`, userID)
	return err
}

type passwordResetRepo struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) domain.PasswordResetRepository {
	return &passwordResetRepo{db: db}
}

func (r *passwordResetRepo) Upsert(ctx context.Context, token *domain.PasswordResetToken) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO password_reset_tokens (email, token, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET token = EXCLUDED.token, created_at = EXCLUDED.created_at`,
		token.Email, token.Hash, token.CreatedAt)
	return err
}

func (r *passwordResetRepo) GetByEmail(ctx context.Context, email string) (*domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := r.db.QueryRow(ctx,
		`SELECT email, token, created_at FROM password_reset_tokens WHERE email = $1`, email).
		Scan(&t.Email, &t.Hash, &t.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *passwordResetRepo) Delete(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE email = $1`, email)
	return err
}
