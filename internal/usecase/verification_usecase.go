package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
	"go-applicant-tracker/pkg/auth"
	"go-applicant-tracker/pkg/email"
)

// LinkSigner builds and checks signed email verification links.
type LinkSigner interface {
	VerificationURL(userID int64, email string) (string, error)
	Verify(userID int64, hash, signature string) error
}

type verificationUsecase struct {
	users  domain.UserRepository
	signer LinkSigner
	mailer email.Sender
	events domain.EventPublisher
	now    func() time.Time
}

func NewVerificationUsecase(users domain.UserRepository, signer LinkSigner, mailer email.Sender, events domain.EventPublisher) domain.VerificationUsecase {
	return &verificationUsecase{users: users, signer: signer, mailer: mailer, events: events, now: time.Now}
}

func (uc *verificationUsecase) Verify(ctx context.Context, userID int64, hash, signature string) error {
	if err := uc.signer.Verify(userID, hash, signature); err != nil {
		return apperror.Forbidden("Invalid signature.")
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "User not found.")
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(auth.EmailHash(user.Email))) != 1 {
		return apperror.Forbidden("Invalid signature.")
	}
	if user.IsVerified() {
		return nil
	}

	now := uc.now()
	if err := uc.users.MarkEmailVerified(ctx, user.ID, now); err != nil {
		return apperror.Internal(err)
	}
	user.EmailVerifiedAt = &now
	uc.events.Publish(ctx, domain.Event{Name: domain.EventVerified, User: user, OccurredAt: now})
	return nil
}

func (uc *verificationUsecase) SendLink(ctx context.Context, user *domain.User) error {
	link, err := uc.signer.VerificationURL(user.ID, user.Email)
	if err != nil {
		return err
	}
	return uc.mailer.SendVerificationLink(ctx, user.Email, user.DisplayName(), link)
}

func (uc *verificationUsecase) Resend(ctx context.Context) (bool, error) {
	user, err := uc.caller(ctx)
	if err != nil {
		return false, err
	}
	if user.IsVerified() {
		return true, nil
	}
	if err := uc.SendLink(ctx, user); err != nil {
		return false, apperror.New(http.StatusInternalServerError, "Email sending failed. Please try again later.", err)
	}
	return false, nil
}

func (uc *verificationUsecase) Status(ctx context.Context) (bool, error) {
	user, err := uc.caller(ctx)
	if err != nil {
		return false, err
	}
	return user.IsVerified(), nil
}

func (uc *verificationUsecase) caller(ctx context.Context) (*domain.User, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Unauthenticated.")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
