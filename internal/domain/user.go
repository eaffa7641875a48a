package domain

import (
	"context"
	"time"
)

type User struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Username        *string    `json:"username,omitempty"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	RememberToken   *string    `json:"-"`
	Roles           []string   `json:"roles,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}

// DisplayName prefers the admin-assigned username.
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Name
}

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID      int64
	Email       string
	TokenID     int64
	Roles       []string
	Permissions []string
}

// Can reports whether the actor holds perm.
func (a *Actor) Can(perm string) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// Owns reports whether a record owned by userID belongs to the actor.
func (a *Actor) Owns(userID int64) bool {
	return a.UserID == userID
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// CreateWithRole inserts the user and its role assignment atomically.
	CreateWithRole(ctx context.Context, user *User, roleID int64) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash, rememberToken string) error
	MarkEmailVerified(ctx context.Context, id int64, at time.Time) error
}

type RegisterApplicantInput struct {
	Name     string
	Email    string
	Password string
}

type ProvisionUserInput struct {
	Username string
	Email    string
	Role     string
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string
	User  *User
	Roles []string
}

type AuthUsecase interface {
	RegisterApplicant(ctx context.Context, in RegisterApplicantInput) (*AuthResult, error)
	ProvisionUser(ctx context.Context, in ProvisionUserInput) (*AuthResult, error)
	Login(ctx context.Context, email, password, ip string) (*AuthResult, error)
	Logout(ctx context.Context) error
	LogoutAll(ctx context.Context) error
	Authenticate(ctx context.Context, bearer string) (*Actor, error)
	Me(ctx context.Context) (*User, error)
}
