package usecase

import (
	"context"
	"errors"
	"net/url"
	"time"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
	"go-applicant-tracker/pkg/auth"
	"go-applicant-tracker/pkg/email"
	"go-applicant-tracker/pkg/logger"

	"go.uber.org/zap"
)

const (
	resetTokenLength    = 64
	rememberTokenLength = 60
)

type passwordUsecase struct {
	users       domain.UserRepository
	resets      domain.PasswordResetRepository
	mailer      email.Sender
	events      domain.EventPublisher
	frontendURL string
	ttl         time.Duration
	now         func() time.Time
}

func NewPasswordUsecase(
	users domain.UserRepository,
	resets domain.PasswordResetRepository,
	mailer email.Sender,
	events domain.EventPublisher,
	frontendURL string,
	ttl time.Duration,
) domain.PasswordUsecase {
	return &passwordUsecase{
		users:       users,
		resets:      resets,
		mailer:      mailer,
		events:      events,
		frontendURL: frontendURL,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (uc *passwordUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := uc.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.BadRequest("We can't find a user with that email address.")
		}
		return apperror.Internal(err)
	}

	token, err := auth.RandomString(resetTokenLength)
	if err != nil {
		return apperror.Internal(err)
	}
	// One row per email: issuing a token replaces the previous one.
	err = uc.resets.Upsert(ctx, &domain.PasswordResetToken{
		Email:     user.Email,
		Hash:      auth.HashToken(token),
		CreatedAt: uc.now(),
	})
	if err != nil {
		return apperror.Internal(err)
	}

	link := uc.frontendURL + "/reset-password/" + token + "?email=" + url.QueryEscape(user.Email)
	if err := uc.mailer.SendPasswordResetLink(ctx, user.Email, link); err != nil {
		logger.Log.Error("Failed to send password reset email", zap.Int64("user_id", user.ID), zap.Error(err))
		return apperror.Internal(err)
	}
	return nil
}

func resetFailed(status string) error {
	return apperror.Validation("Failed to reset password", map[string][]string{"email": {status}})
}

func (uc *passwordUsecase) ResetPassword(ctx context.Context, in domain.ResetPasswordInput) error {
	const invalidToken = "This password reset token is invalid."

	rec, err := uc.resets.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return resetFailed(invalidToken)
		}
		return apperror.Internal(err)
	}
	if !auth.TokenMatches(in.Token, rec.Hash) {
		return resetFailed(invalidToken)
	}
	if uc.now().Sub(rec.CreatedAt) > uc.ttl {
		_ = uc.resets.Delete(ctx, in.Email)
		return resetFailed(invalidToken)
	}

	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return resetFailed("We can't find a user with that email address.")
		}
		return apperror.Internal(err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return apperror.Internal(err)
	}
	remember, err := auth.RandomString(rememberTokenLength)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, hash, remember); err != nil {
		return apperror.Internal(err)
	}
	if err := uc.resets.Delete(ctx, in.Email); err != nil {
		logger.Log.Warn("Failed to delete used reset token", zap.Error(err))
	}

	uc.events.Publish(ctx, domain.Event{Name: domain.EventPasswordReset, User: user, OccurredAt: uc.now()})
	return nil
}
