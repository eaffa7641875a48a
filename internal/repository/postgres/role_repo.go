package postgres

import (
	"context"
	"fmt"

	"go-applicant-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type roleRepo struct {
	db *pgxpool.Pool
}

func NewRoleRepository(db *pgxpool.Pool) domain.RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) List(ctx context.Context, offset, limit int) ([]domain.Role, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM roles ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, 0, err
		}
		roles = append(roles, role)
	}
	return roles, total, rows.Err()
}

func (r *roleRepo) get(ctx context.Context, where string, arg interface{}) (*domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM roles WHERE `+where, arg).
		Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name FROM permissions p
		 JOIN role_has_permissions rp ON rp.permission_id = p.id
		 WHERE rp.role_id = $1 ORDER BY p.id`, role.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	role.Permissions = []domain.Permission{}
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		role.Permissions = append(role.Permissions, p)
	}
	return &role, rows.Err()
}

func (r *roleRepo) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *roleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.get(ctx, "name = $1", name)
}

func syncPermissions(ctx context.Context, tx pgx.Tx, roleID int64, permissionIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM role_has_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("clear permissions: %w", err)
	}
	if len(permissionIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO role_has_permissions (permission_id, role_id)
		 SELECT DISTINCT unnest($1::bigint[]), $2 ON CONFLICT DO NOTHING`,
		pq.Array(permissionIDs), roleID)
	if err != nil {
		return fmt.Errorf("attach permissions: %w", err)
	}
	return nil
}

func (r *roleRepo) Create(ctx context.Context, role *domain.Role, permissionIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO roles (name, created_at, updated_at) VALUES ($1, NOW(), NOW()) RETURNING id, created_at, updated_at`,
		role.Name).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	if err := syncPermissions(ctx, tx, role.ID, permissionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *roleRepo) Update(ctx context.Context, role *domain.Role, permissionIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE roles SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		role.ID, role.Name).Scan(&role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return notFound(err)
	}
	if err := syncPermissions(ctx, tx, role.ID, permissionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *roleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *roleRepo) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM permissions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perms := []domain.Permission{}
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *roleRepo) CountPermissions(ctx context.Context, ids []int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM permissions WHERE id = ANY($1::bigint[])`, pq.Array(ids)).Scan(&n)
	return n, err
}

func (r *roleRepo) AccessForUser(ctx context.Context, userID int64) ([]string, []string, error) {
	var roles, perms pq.StringArray
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(array_agg(DISTINCT r.name), '{}'),
			COALESCE(array_agg(DISTINCT p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
		FROM model_has_roles mr
		JOIN roles r ON r.id = mr.role_id
		LEFT JOIN role_has_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE mr.user_id = $1`, userID).Scan(&roles, &perms)
	if err != nil {
		return nil, nil, err
	}
	return []string(roles), []string(perms), nil
}

func (r *roleRepo) AssignRole(ctx context.Context, userID, roleID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO model_has_roles (role_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, roleID, userID)
	return err
}

// EnsurePermission inserts name if missing and returns its id.
func (r *roleRepo) EnsurePermission(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO permissions (name, created_at, updated_at) VALUES ($1, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET updated_at = permissions.updated_at
		RETURNING id`, name).Scan(&id)
	return id, err
}
