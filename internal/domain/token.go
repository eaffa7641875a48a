package domain

import (
	"context"
	"time"
)

// AccessToken is an opaque bearer token. Only the sha256 of its secret is stored.
type AccessToken struct {
	ID         int64
	UserID     int64
	Name       string
	Hash       string
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

type TokenRepository interface {
	Create(ctx context.Context, token *AccessToken) error
	GetByID(ctx context.Context, id int64) (*AccessToken, error)
	Touch(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// PasswordResetToken is keyed by email; issuing a new one replaces the old.
type PasswordResetToken struct {
	Email     string
	Hash      string
	CreatedAt time.Time
}

type PasswordResetRepository interface {
	Upsert(ctx context.Context, token *PasswordResetToken) error
	GetByEmail(ctx context.Context, email string) (*PasswordResetToken, error)
	Delete(ctx context.Context, email string) error
}

type ResetPasswordInput struct {
	Token    string
	Email    string
	Password string
}

type PasswordUsecase interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}

type VerificationUsecase interface {
	// Verify checks a signed link and marks the email verified (idempotent).
	Verify(ctx context.Context, userID int64, hash, signature string) error
	SendLink(ctx context.Context, user *User) error
	// Resend mails a fresh link to the caller unless already verified.
	Resend(ctx context.Context) (alreadyVerified bool, err error)
	Status(ctx context.Context) (bool, error)
}
