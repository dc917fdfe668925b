package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberworks/studio-portal/internal/domain"
)

// RoleWithPermissions is the expanded listing shape for the admin roles view.
type RoleWithPermissions struct {
	Role        domain.Role
	Permissions []domain.Permission
}

// RoleRepository defines persistence access for roles.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	ListWithPermissions(ctx context.Context) ([]RoleWithPermissions, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

const roleColumns = `
    SELECT r.id, r.name, r.created_at, r.updated_at,
           COALESCE(array_agg(rp.permission_id::text) FILTER (WHERE rp.permission_id IS NOT NULL), '{}')
    FROM roles r
    LEFT JOIN role_permissions rp ON rp.role_id = r.id`

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	query := roleColumns + ` WHERE r.id=$1 GROUP BY r.id`
	return r.fetchSingle(ctx, query, id)
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	query := roleColumns + ` WHERE r.name=$1 GROUP BY r.id`
	return r.fetchSingle(ctx, query, name)
}

func (r *roleRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Role, error) {
	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&role.ID,
		&role.Name,
		&role.CreatedAt,
		&role.UpdatedAt,
		&role.PermissionIDs,
	); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	query := roleColumns + ` GROUP BY r.id ORDER BY r.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.CreatedAt,
			&role.UpdatedAt,
			&role.PermissionIDs,
		); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *roleRepository) ListWithPermissions(ctx context.Context) ([]RoleWithPermissions, error) {
	roles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	const permQuery = `
        SELECT rp.role_id, p.id, p.name, p.description
        FROM role_permissions rp
        JOIN permissions p ON p.id = rp.permission_id`

	rows, err := r.pool.Query(ctx, permQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byRole := make(map[string][]domain.Permission)
	for rows.Next() {
		var roleID string
		var perm domain.Permission
		if err := rows.Scan(&roleID, &perm.ID, &perm.Name, &perm.Description); err != nil {
			return nil, err
		}
		byRole[roleID] = append(byRole[roleID], perm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]RoleWithPermissions, 0, len(roles))
	for _, role := range roles {
		out = append(out, RoleWithPermissions{Role: role, Permissions: byRole[role.ID]})
	}
	return out, nil
}
