package resource

import "go-applicant-tracker/internal/domain"

type Role struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Permissions []domain.Permission `json:"permissions"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

func NewRole(r domain.Role) Role {
	perms := r.Permissions
	if perms == nil {
		perms = []domain.Permission{}
	}
	return Role{ID: r.ID, Name: r.Name, Permissions: perms, CreatedAt: date(r.CreatedAt), UpdatedAt: date(r.UpdatedAt)}
}
