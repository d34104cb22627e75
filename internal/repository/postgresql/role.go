package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SkShizan/clg-project/internal/domain/master/role"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

// Create implements role.RoleRepository.
func (r *roleRepositoryImpl) Create(ctx context.Context, rl role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (id, name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, name, created_at
	`

	var result role.Role
	err := q.QueryRow(ctx, query, newID(), rl.Name).Scan(
		&result.ID,
		&result.Name,
		&result.CreatedAt,
	)

	if err != nil {
		if uniqueConstraint(err) != "" {
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return result, nil
}

// GetByID implements role.RoleRepository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at
		FROM roles
		WHERE id = $1
	`

	var result role.Role
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role: %w", err)
	}

	return result, nil
}

// List implements role.RoleRepository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at
		FROM roles
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	var roles []role.Role
	for rows.Next() {
		var rl role.Role
		if err := rows.Scan(&rl.ID, &rl.Name, &rl.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, rl)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return roles, nil
}

// Delete implements role.RoleRepository. Employees keep their
// row with role_id set to NULL.
func (r *roleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}

	return nil
}
