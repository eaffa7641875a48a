package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
	"go-applicant-tracker/pkg/auth"
	"go-applicant-tracker/pkg/email"
	"go-applicant-tracker/pkg/logger"
	"go-applicant-tracker/pkg/security"

	"go.uber.org/zap"
)

// LoginGuard blocks repeated failed logins for one email.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip string) (bool, int, error)
	ClearAttempts(ctx context.Context, email string) error
}

type AuthConfig struct {
	AppName         string
	LoginURL        string
	DefaultPassword string
	DefaultRole     string
	BlockMinutes    int
}

type authUsecase struct {
	users  domain.UserRepository
	tokens domain.TokenRepository
	roles  domain.RoleRepository
	mailer email.Sender
	events domain.EventPublisher
	guard  LoginGuard
	secLog *security.SecurityLogger
	cfg    AuthConfig
	now    func() time.Time
}

func NewAuthUsecase(
	users domain.UserRepository,
	tokens domain.TokenRepository,
	roles domain.RoleRepository,
	mailer email.Sender,
	events domain.EventPublisher,
	guard LoginGuard,
	cfg AuthConfig,
) domain.AuthUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		roles:  roles,
		mailer: mailer,
		events: events,
		guard:  guard,
		secLog: security.DefaultLogger(),
		cfg:    cfg,
		now:    time.Now,
	}
}

var errEmailTaken = apperror.Validation("The given data was invalid.", map[string][]string{
	"email": {"The email has already been taken."},
})

func (u *authUsecase) RegisterApplicant(ctx context.Context, in domain.RegisterApplicantInput) (*domain.AuthResult, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user := &domain.User{Name: in.Name, Email: in.Email, PasswordHash: hash}

	// The default role is optional; an unseeded database still accepts registrations.
	var roles []string
	role, err := u.roles.GetByName(ctx, u.cfg.DefaultRole)
	switch {
	case err == nil:
		err = u.users.CreateWithRole(ctx, user, role.ID)
		roles = []string{role.Name}
	case errors.Is(err, domain.ErrNotFound):
		logger.Log.Warn("Default role missing, registering without a role", zap.String("role", u.cfg.DefaultRole))
		err = u.users.Create(ctx, user)
	default:
		return nil, apperror.Internal(err)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errEmailTaken
		}
		return nil, apperror.Internal(err)
	}
	user.Roles = roles

	u.events.Publish(ctx, domain.Event{Name: domain.EventRegistered, User: user, OccurredAt: u.now()})

	token, err := u.issueToken(ctx, user.ID, "auth_token")
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{Token: token, User: user, Roles: roles}, nil
}

func (u *authUsecase) ProvisionUser(ctx context.Context, in domain.ProvisionUserInput) (*domain.AuthResult, error) {
	// 1. Role must exist before any row is written
	role, err := u.roles.GetByName(ctx, in.Role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Validation("The given data was invalid.", map[string][]string{
				"role": {"The selected role is invalid."},
			})
		}
		return nil, apperror.Internal(err)
	}

	// 2. User and role assignment in one transaction
	hash, err := auth.HashPassword(u.cfg.DefaultPassword)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	username := in.Username
	user := &domain.User{Name: in.Username, Username: &username, Email: in.Email, PasswordHash: hash}
	if err := u.users.CreateWithRole(ctx, user, role.ID); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errEmailTaken
		}
		return nil, apperror.Internal(err)
	}
	user.Roles = []string{role.Name}

	token, err := u.issueToken(ctx, user.ID, "auth_token")
	if err != nil {
		return nil, err
	}

	// 3. Credentials mail; the user stays committed when delivery fails
	err = u.mailer.SendCredentials(ctx, user.Email, email.CredentialsEmailData{
		AppName:  u.cfg.AppName,
		Username: in.Username,
		Email:    user.Email,
		Password: u.cfg.DefaultPassword,
		Role:     role.Name,
		LoginURL: u.cfg.LoginURL,
	})
	if err != nil {
		logger.Log.Error("Failed to send credentials email", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, apperror.New(http.StatusInternalServerError, "Email sending failed. Please try again later.", err)
	}

	return &domain.AuthResult{Token: token, User: user, Roles: user.Roles}, nil
}

func (u *authUsecase) Login(ctx context.Context, emailAddr, password, ip string) (*domain.AuthResult, error) {
	if u.guard != nil {
		if blocked, err := u.guard.IsBlocked(ctx, emailAddr); err == nil && blocked {
			u.secLog.LogLoginFailed(ctx, emailAddr, ip, "blocked")
			return nil, apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
		}
	}

	user, err := u.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.secLog.LogLoginFailed(ctx, emailAddr, ip, "unknown_email")
			return nil, apperror.NotFound("User does not exist!")
		}
		return nil, apperror.Internal(err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		u.secLog.LogLoginFailed(ctx, emailAddr, ip, "invalid_password")
		if u.guard != nil {
			if blocked, _, err := u.guard.RecordFailedAttempt(ctx, emailAddr, ip); err == nil && blocked {
				u.secLog.LogBlockCreated(ctx, emailAddr, ip, u.cfg.BlockMinutes)
			}
		}
		return nil, apperror.Unauthorized("Incorrect password!")
	}

	if u.guard != nil {
		if err := u.guard.ClearAttempts(ctx, emailAddr); err != nil {
			logger.Log.Warn("Failed to clear failed login attempts", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}
	u.secLog.LogLoginSuccess(ctx, emailAddr, ip)

	roles, _, err := u.roles.AccessForUser(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.Roles = roles

	token, err := u.issueToken(ctx, user.ID, "auth_token")
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{Token: token, User: user, Roles: roles}, nil
}

func (u *authUsecase) Logout(ctx context.Context) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	if err := u.tokens.Delete(ctx, actor.TokenID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}
	u.secLog.LogUserEvent(ctx, security.EventLogout, strconv.FormatInt(actor.UserID, 10), map[string]interface{}{"scope": "current"})
	return nil
}

func (u *authUsecase) LogoutAll(ctx context.Context) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	if err := u.tokens.DeleteByUserID(ctx, actor.UserID); err != nil {
		return apperror.Internal(err)
	}
	u.secLog.LogUserEvent(ctx, security.EventLogout, strconv.FormatInt(actor.UserID, 10), map[string]interface{}{"scope": "all"})
	return nil
}

// Authenticate resolves an "id|secret" bearer token to the calling user.
func (u *authUsecase) Authenticate(ctx context.Context, bearer string) (*domain.Actor, error) {
	unauthenticated := apperror.Unauthorized("Unauthenticated.")

	id, secret, ok := auth.ParseBearer(bearer)
	if !ok {
		return nil, unauthenticated
	}
	token, err := u.tokens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, unauthenticated
		}
		return nil, apperror.Internal(err)
	}
	if !auth.TokenMatches(secret, token.Hash) {
		return nil, unauthenticated
	}

	user, err := u.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, unauthenticated
		}
		return nil, apperror.Internal(err)
	}

	roles, perms, err := u.roles.AccessForUser(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.tokens.Touch(ctx, token.ID, u.now()); err != nil {
		logger.Log.Warn("Failed to touch access token", zap.Int64("token_id", token.ID), zap.Error(err))
	}

	return &domain.Actor{
		UserID:      user.ID,
		Email:       user.Email,
		TokenID:     token.ID,
		Roles:       roles,
		Permissions: perms,
	}, nil
}

func (u *authUsecase) Me(ctx context.Context) (*domain.User, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	user, err := u.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "User not found.")
	}
	user.Roles = actor.Roles
	return user, nil
}

func (u *authUsecase) issueToken(ctx context.Context, userID int64, name string) (string, error) {
	secret, hash, err := auth.NewTokenSecret()
	if err != nil {
		return "", apperror.Internal(err)
	}
	token := &domain.AccessToken{UserID: userID, Name: name, Hash: hash}
	if err := u.tokens.Create(ctx, token); err != nil {
		return "", apperror.Internal(err)
	}
	return auth.FormatBearer(token.ID, secret), nil
}
