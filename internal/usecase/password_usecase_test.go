package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/internal/usecase"
	"go-applicant-tracker/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject an unknown email", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "nobody@x.io").Return(nil, domain.ErrNotFound)
		uc := usecase.NewPasswordUsecase(users, new(MockResetRepo), new(MockMailer), &recordingPublisher{}, "http://app", time.Hour)

		err := uc.ForgotPassword(ctx, "nobody@x.io")
		assertAppError(t, err, http.StatusBadRequest, "We can't find a user with that email address.")
	})

	t.Run("Should store a hashed token and mail the link", func(t *testing.T) {
		users := new(MockUserRepo)
		resets := new(MockResetRepo)
		mailer := new(MockMailer)
		users.On("GetByEmail", mock.Anything, "ann@x.io").Return(&domain.User{ID: 1, Email: "ann@x.io"}, nil)

		var stored *domain.PasswordResetToken
		resets.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.PasswordResetToken")).Return(nil).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.PasswordResetToken)
		})
		var link string
		mailer.On("SendPasswordResetLink", mock.Anything, "ann@x.io", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			link = args.String(2)
		})

		uc := usecase.NewPasswordUsecase(users, resets, mailer, &recordingPublisher{}, "http://app", time.Hour)
		require.NoError(t, uc.ForgotPassword(ctx, "ann@x.io"))

		require.True(t, strings.HasPrefix(link, "http://app/reset-password/"))
		token := strings.TrimPrefix(link, "http://app/reset-password/")
		token = token[:strings.Index(token, "?")]
		assert.True(t, auth.TokenMatches(token, stored.Hash))
		assert.NotContains(t, stored.Hash, token)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	in := domain.ResetPasswordInput{Token: "tok", Email: "ann@x.io", Password: "new-password"}

	t.Run("Should fail for an expired token", func(t *testing.T) {
		resets := new(MockResetRepo)
		resets.On("GetByEmail", mock.Anything, "ann@x.io").Return(&domain.PasswordResetToken{
			Email: "ann@x.io", Hash: auth.HashToken("tok"), CreatedAt: time.Now().Add(-2 * time.Hour),
		}, nil)
		resets.On("Delete", mock.Anything, "ann@x.io").Return(nil)
		users := new(MockUserRepo)
		uc := usecase.NewPasswordUsecase(users, resets, new(MockMailer), &recordingPublisher{}, "http://app", time.Hour)

		err := uc.ResetPassword(ctx, in)

		assertAppError(t, err, http.StatusUnprocessableEntity, "Failed to reset password")
		assert.Contains(t, asAppError(t, err).Fields, "email")
		users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail for a mismatched token", func(t *testing.T) {
		resets := new(MockResetRepo)
		resets.On("GetByEmail", mock.Anything, "ann@x.io").Return(&domain.PasswordResetToken{
			Email: "ann@x.io", Hash: auth.HashToken("other"), CreatedAt: time.Now(),
		}, nil)
		uc := usecase.NewPasswordUsecase(new(MockUserRepo), resets, new(MockMailer), &recordingPublisher{}, "http://app", time.Hour)

		assertAppError(t, uc.ResetPassword(ctx, in), http.StatusUnprocessableEntity, "Failed to reset password")
	})

	t.Run("Should overwrite the password and consume the token", func(t *testing.T) {
		resets := new(MockResetRepo)
		users := new(MockUserRepo)
		events := &recordingPublisher{}
		resets.On("GetByEmail", mock.Anything, "ann@x.io").Return(&domain.PasswordResetToken{
			Email: "ann@x.io", Hash: auth.HashToken("tok"), CreatedAt: time.Now(),
		}, nil)
		resets.On("Delete", mock.Anything, "ann@x.io").Return(nil)
		users.On("GetByEmail", mock.Anything, "ann@x.io").Return(&domain.User{ID: 1, Email: "ann@x.io"}, nil)
		users.On("UpdatePassword", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			assert.True(t, auth.CheckPassword(args.String(2), "new-password"))
			assert.Len(t, args.String(3), 60)
		})
		uc := usecase.NewPasswordUsecase(users, resets, new(MockMailer), events, "http://app", time.Hour)

		require.NoError(t, uc.ResetPassword(ctx, in))
		resets.AssertCalled(t, "Delete", mock.Anything, "ann@x.io")
		require.Len(t, events.events, 1)
		assert.Equal(t, domain.EventPasswordReset, events.events[0].Name)
	})
}
