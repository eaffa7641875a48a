package v1

import (
	"net/http"
	"testing"

	"go-applicant-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoleRoutesArePermissionGated(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermRoleList)

	w := s.do(http.MethodDelete, "/v1/admin/roles/3", nil, true)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListRolesIsPaginated(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermRoleList)
	s.roles.On("List", mock.Anything, 2).Return(&domain.PaginatedResult[domain.Role]{
		Items:      []domain.Role{{ID: 6, Name: "reviewer"}},
		Pagination: domain.NewPagination(2, 5, 6),
	}, nil)

	w := s.do(http.MethodGet, "/v1/admin/roles?page=2", nil, true)

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, float64(2), env.Page["current_page"])
	assert.Equal(t, float64(2), env.Page["last_page"])
}

func TestCreateRole(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermRoleCreate)
	s.roles.On("Create", mock.Anything, domain.RoleInput{Name: "reviewer", PermissionIDs: []int64{1, 2}}).
		Return(&domain.Role{ID: 6, Name: "reviewer", Permissions: []domain.Permission{{ID: 1, Name: "role-list"}}}, nil)

	w := s.do(http.MethodPost, "/v1/admin/roles", map[string]interface{}{"name": "reviewer", "permission": []int{1, 2}}, true)

	require.Equal(t, http.StatusCreated, w.Code)
	var data map[string]interface{}
	decodeData(t, decode(t, w), &data)
	assert.Equal(t, "reviewer", data["name"])
}

func TestCreateRoleNeedsPermissions(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermRoleCreate)

	w := s.do(http.MethodPost, "/v1/admin/roles", map[string]interface{}{"name": "reviewer", "permission": []int{}}, true)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w).Errors, "permission")
}
