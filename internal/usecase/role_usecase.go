package usecase

import (
	"context"
	"errors"
	"strings"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
)

const rolesPerPage = 5

type roleUsecase struct {
	roles domain.RoleRepository
}

func NewRoleUsecase(roles domain.RoleRepository) domain.RoleUsecase {
	return &roleUsecase{roles: roles}
}

func (u *roleUsecase) List(ctx context.Context, page int) (*domain.PaginatedResult[domain.Role], error) {
	page, perPage, offset := domain.NormalizePage(page, rolesPerPage, rolesPerPage, rolesPerPage)
	roles, total, err := u.roles.List(ctx, offset, perPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.PaginatedResult[domain.Role]{
		Items:      roles,
		Pagination: domain.NewPagination(page, perPage, total),
	}, nil
}

func (u *roleUsecase) Get(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := u.roles.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Role not found.")
	}
	return role, nil
}

// validate checks name uniqueness (ignoring selfID) and that every
// permission id exists.
func (u *roleUsecase) validate(ctx context.Context, in *domain.RoleInput, selfID int64) error {
	fields := map[string][]string{}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		fields["name"] = []string{"The name field is required."}
	} else if existing, err := u.roles.GetByName(ctx, in.Name); err == nil && existing.ID != selfID {
		fields["name"] = []string{"The name has already been taken."}
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}

	in.PermissionIDs = uniqueIDs(in.PermissionIDs)
	if len(in.PermissionIDs) == 0 {
		fields["permission"] = []string{"The permission field is required."}
	} else {
		n, err := u.roles.CountPermissions(ctx, in.PermissionIDs)
		if err != nil {
			return apperror.Internal(err)
		}
		if n != len(in.PermissionIDs) {
			fields["permission"] = []string{"The selected permission is invalid."}
		}
	}

	if len(fields) > 0 {
		return apperror.Validation("The given data was invalid.", fields)
	}
	return nil
}

func (u *roleUsecase) Create(ctx context.Context, in domain.RoleInput) (*domain.Role, error) {
	if err := u.validate(ctx, &in, 0); err != nil {
		return nil, err
	}
	role := &domain.Role{Name: in.Name}
	if err := u.roles.Create(ctx, role, in.PermissionIDs); err != nil {
		return nil, u.writeError(err)
	}
	return u.Get(ctx, role.ID)
}

func (u *roleUsecase) Update(ctx context.Context, id int64, in domain.RoleInput) (*domain.Role, error) {
	role, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.validate(ctx, &in, id); err != nil {
		return nil, err
	}
	role.Name = in.Name
	if err := u.roles.Update(ctx, role, in.PermissionIDs); err != nil {
		return nil, u.writeError(err)
	}
	return u.Get(ctx, id)
}

func (u *roleUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.roles.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Role not found.")
	}
	return nil
}

func (u *roleUsecase) Permissions(ctx context.Context) ([]domain.Permission, error) {
	perms, err := u.roles.ListPermissions(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return perms, nil
}

func (u *roleUsecase) writeError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return apperror.Validation("The given data was invalid.", map[string][]string{
			"name": {"The name has already been taken."},
		})
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Role not found.")
	}
	return apperror.Internal(err)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
