package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
	"github.com/google/uuid"
)

type roleRepository struct {
	executor DBExecutor
}

func NewRoleRepository(executor DBExecutor) *roleRepository {
	return &roleRepository{executor: executor}
}

func roleResource(id string) string {
	return "role with id " + id
}

func scanRole(row rowScanner) (*domain.Role, error) {
	role := &domain.Role{}
	var name, normalizedName, stamp sql.NullString
	if err := row.Scan(&role.ID, &name, &normalizedName, &stamp); err != nil {
		return nil, err
	}
	role.Name = name.String
	role.NormalizedName = normalizedName.String
	role.ConcurrencyStamp = stamp.String
	return role, nil
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	if role.ConcurrencyStamp == "" {
		role.ConcurrencyStamp = uuid.NewString()
	}

	query := `
		INSERT INTO roles (id, name, normalized_name, concurrency_stamp)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.executor.ExecContext(ctx, query, role.ID, nullString(role.Name), nullString(role.NormalizedName), role.ConcurrencyStamp)
	return mapError(err, "role with name "+role.Name)
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	newStamp := uuid.NewString()

	query := `
		UPDATE roles
		SET name = $3, normalized_name = $4, concurrency_stamp = $5
		WHERE id = $1 AND concurrency_stamp IS NOT DISTINCT FROM $2
	`

	result, err := r.executor.ExecContext(ctx, query, role.ID, nullString(role.ConcurrencyStamp), nullString(role.Name), nullString(role.NormalizedName), newStamp)
	if err != nil {
		return mapError(err, "role with name "+role.Name)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, role.ID); err != nil {
			return err
		}
		return domain.ErrConcurrencyFailure
	}

	role.ConcurrencyStamp = newStamp
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.executor.ExecContext(ctx, "DELETE FROM roles WHERE id = $1", id)
	if err != nil {
		return err
	}
	return checkAffected(result, roleResource(id))
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	query := `SELECT id, name, normalized_name, concurrency_stamp FROM roles WHERE id = $1`

	role, err := scanRole(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, roleResource(id))
	}
	return role, nil
}

func (r *roleRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Role, error) {
	query := `SELECT id, name, normalized_name, concurrency_stamp FROM roles WHERE normalized_name = $1`

	role, err := scanRole(r.executor.QueryRowContext(ctx, query, normalizedName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("role with name " + normalizedName)
		}
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	rows, err := r.executor.QueryContext(ctx, `SELECT id, name, normalized_name, concurrency_stamp FROM roles ORDER BY normalized_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]*domain.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

type userRoleRepository struct {
	executor DBExecutor
}

func NewUserRoleRepository(executor DBExecutor) *userRoleRepository {
	return &userRoleRepository{executor: executor}
}

func (r *userRoleRepository) Add(ctx context.Context, userID, roleID string) error {
	_, err := r.executor.ExecContext(ctx, "INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)", userID, roleID)
	return mapError(err, "role "+roleID+" for user "+userID)
}

func (r *userRoleRepository) Remove(ctx context.Context, userID, roleID string) error {
	result, err := r.executor.ExecContext(ctx, "DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2", userID, roleID)
	if err != nil {
		return err
	}
	return checkAffected(result, "role "+roleID+" for user "+userID)
}

func (r *userRoleRepository) GetRoleNames(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.normalized_name
	`

	rows, err := r.executor.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name.String)
	}
	return names, rows.Err()
}

func (r *userRoleRepository) IsInRole(ctx context.Context, userID, normalizedRoleName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = $1 AND r.normalized_name = $2
		)
	`

	var inRole bool
	if err := r.executor.QueryRowContext(ctx, query, userID, normalizedRoleName).Scan(&inRole); err != nil {
		return false, err
	}
	return inRole, nil
}

func (r *userRoleRepository) GetUsersInRole(ctx context.Context, normalizedRoleName string) ([]*domain.ApplicationUser, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		JOIN roles r ON r.id = ur.role_id
		WHERE r.normalized_name = $1
		ORDER BY u.normalized_user_name
	`

	rows, err := r.executor.QueryContext(ctx, query, normalizedRoleName)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}
