package domain

import (
	"context"
	"time"
)

// Permission names checked by the API.
const (
	PermRoleList   = "role-list"
	PermRoleCreate = "role-create"
	PermRoleEdit   = "role-edit"
	PermRoleDelete = "role-delete"

	PermUserList   = "user-list"
	PermUserCreate = "user-create"
	PermUserEdit   = "user-edit"
	PermUserDelete = "user-delete"

	PermAssessmentList   = "assessment-list"
	PermAssessmentCreate = "assessment-create"
	PermAssessmentEdit   = "assessment-edit"
	PermAssessmentDelete = "assessment-delete"
)

const (
	RoleAdmin     = "admin"
	RoleApplicant = "applicant"
)

var permissionGroups = []string{"role", "user", "category", "tag", "product", "job", "assessment", "question", "answer"}

// AllPermissions is the seeded permission catalogue.
func AllPermissions() []string {
	out := make([]string, 0, len(permissionGroups)*4)
	for _, g := range permissionGroups {
		for _, action := range []string{"list", "create", "edit", "delete"} {
			out = append(out, g+"-"+action)
		}
	}
	return out
}

type Permission struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type RoleRepository interface {
	List(ctx context.Context, offset, limit int) ([]Role, int64, error)
	GetByID(ctx context.Context, id int64) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	// Create and Update write the role and its permission set in one transaction.
	Create(ctx context.Context, role *Role, permissionIDs []int64) error
	Update(ctx context.Context, role *Role, permissionIDs []int64) error
	Delete(ctx context.Context, id int64) error
	ListPermissions(ctx context.Context) ([]Permission, error)
	CountPermissions(ctx context.Context, ids []int64) (int, error)
	// AccessForUser returns the user's role names and the union of their permissions.
	AccessForUser(ctx context.Context, userID int64) (roles []string, permissions []string, err error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	EnsurePermission(ctx context.Context, name string) (int64, error)
}

type RoleInput struct {
	Name          string
	PermissionIDs []int64
}

type RoleUsecase interface {
	List(ctx context.Context, page int) (*PaginatedResult[Role], error)
	Get(ctx context.Context, id int64) (*Role, error)
	Create(ctx context.Context, in RoleInput) (*Role, error)
	Update(ctx context.Context, id int64, in RoleInput) (*Role, error)
	Delete(ctx context.Context, id int64) error
	Permissions(ctx context.Context) ([]Permission, error)
}
