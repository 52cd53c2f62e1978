package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
	"github.com/google/uuid"
)

const defaultListLimit = 100

const userColumns = `
	u.id, u.user_name, u.normalized_user_name, u.email, u.normalized_email,
	u.email_confirmed, u.password_hash, u.security_stamp, u.concurrency_stamp,
	u.phone_number, u.phone_number_confirmed, u.two_factor_enabled,
	u.lockout_end, u.lockout_enabled, u.access_failed_count,
	u.created_at, u.updated_at`

type userRepository struct {
	executor DBExecutor
}

func NewUserRepository(executor DBExecutor) *userRepository {
	return &userRepository{executor: executor}
}

func userResource(id string) string {
	return "user with id " + id
}

func scanUser(row rowScanner) (*domain.ApplicationUser, error) {
	user := &domain.ApplicationUser{}
	var (
		userName, normalizedUserName sql.NullString
		email, normalizedEmail       sql.NullString
		passwordHash, securityStamp  sql.NullString
		concurrencyStamp, phone      sql.NullString
		lockoutEnd, updatedAt        sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&userName,
		&normalizedUserName,
		&email,
		&normalizedEmail,
		&user.EmailConfirmed,
		&passwordHash,
		&securityStamp,
		&concurrencyStamp,
		&phone,
		&user.PhoneNumberConfirmed,
		&user.TwoFactorEnabled,
		&lockoutEnd,
		&user.LockoutEnabled,
		&user.AccessFailedCount,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.UserName = userName.String
	user.NormalizedUserName = normalizedUserName.String
	user.Email = email.String
	user.NormalizedEmail = normalizedEmail.String
	user.PasswordHash = passwordHash.String
	user.SecurityStamp = securityStamp.String
	user.ConcurrencyStamp = concurrencyStamp.String
	user.PhoneNumber = phone.String
	user.LockoutEnd = timePtr(lockoutEnd)
	user.UpdatedAt = timePtr(updatedAt)

	return user, nil
}

func scanUsers(rows *sql.Rows) ([]*domain.ApplicationUser, error) {
	defer rows.Close()

	users := make([]*domain.ApplicationUser, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) Create(ctx context.Context, user *domain.ApplicationUser) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.ConcurrencyStamp == "" {
		user.ConcurrencyStamp = uuid.NewString()
	}

	query := `
		INSERT INTO users (
			id, user_name, normalized_user_name, email, normalized_email,
			email_confirmed, password_hash, security_stamp, concurrency_stamp,
			phone_number, phone_number_confirmed, two_factor_enabled,
			lockout_end, lockout_enabled, access_failed_count, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		user.ID,
		nullString(user.UserName),
		nullString(user.NormalizedUserName),
		nullString(user.Email),
		nullString(user.NormalizedEmail),
		user.EmailConfirmed,
		nullString(user.PasswordHash),
		nullString(user.SecurityStamp),
		user.ConcurrencyStamp,
		nullString(user.PhoneNumber),
		user.PhoneNumberConfirmed,
		user.TwoFactorEnabled,
		nullTime(user.LockoutEnd),
		user.LockoutEnabled,
		user.AccessFailedCount,
		time.Now(),
	).Scan(&user.CreatedAt)
	if err != nil {
		return mapError(err, "user with name "+user.UserName)
	}

	user.UpdatedAt = nil
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.ApplicationUser) error {
	newStamp := uuid.NewString()

	query := `
		UPDATE users
		SET user_name = $3, normalized_user_name = $4, email = $5, normalized_email = $6,
			email_confirmed = $7, password_hash = $8, security_stamp = $9,
			phone_number = $10, phone_number_confirmed = $11, two_factor_enabled = $12,
			lockout_end = $13, lockout_enabled = $14, access_failed_count = $15,
			concurrency_stamp = $16, updated_at = $17
		WHERE id = $1 AND concurrency_stamp IS NOT DISTINCT FROM $2
		RETURNING created_at, updated_at
	`

	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(
		ctx,
		query,
		user.ID,
		nullString(user.ConcurrencyStamp),
		nullString(user.UserName),
		nullString(user.NormalizedUserName),
		nullString(user.Email),
		nullString(user.NormalizedEmail),
		user.EmailConfirmed,
		nullString(user.PasswordHash),
		nullString(user.SecurityStamp),
		nullString(user.PhoneNumber),
		user.PhoneNumberConfirmed,
		user.TwoFactorEnabled,
		nullTime(user.LockoutEnd),
		user.LockoutEnabled,
		user.AccessFailedCount,
		newStamp,
		time.Now(),
	).Scan(&user.CreatedAt, &updatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.stampMismatchOrNotFound(ctx, user.ID)
		}
		return mapError(err, "user with name "+user.UserName)
	}

	user.ConcurrencyStamp = newStamp
	user.UpdatedAt = timePtr(updatedAt)
	return nil
}

// stampMismatchOrNotFound различает отсутствующего пользователя и устаревший штамп
func (r *userRepository) stampMismatchOrNotFound(ctx context.Context, id string) error {
	var exists bool
	err := r.executor.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError(userResource(id))
	}
	return domain.ErrConcurrencyFailure
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.executor.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	return checkAffected(result, userResource(id))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.ApplicationUser, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	user, err := scanUser(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, userResource(id))
	}
	return user, nil
}

func (r *userRepository) GetByNormalizedUserName(ctx context.Context, normalizedUserName string) (*domain.ApplicationUser, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.normalized_user_name = $1`

	user, err := scanUser(r.executor.QueryRowContext(ctx, query, normalizedUserName))
	if err != nil {
		return nil, mapError(err, "user with name "+normalizedUserName)
	}
	return user, nil
}

// GetByNormalizedEmail возвращает самого раннего пользователя с таким email:
// уникальность email схемой не гарантируется.
func (r *userRepository) GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*domain.ApplicationUser, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.normalized_email = $1
		ORDER BY u.created_at, u.id
		LIMIT 1
	`

	user, err := scanUser(r.executor.QueryRowContext(ctx, query, normalizedEmail))
	if err != nil {
		return nil, mapError(err, "user with email "+normalizedEmail)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*domain.ApplicationUser, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + userColumns + `
		FROM users u
		ORDER BY u.created_at, u.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.executor.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (r *userRepository) SetLockoutEnd(ctx context.Context, id string, end *time.Time) error {
	query := `
		UPDATE users
		SET lockout_end = $2, concurrency_stamp = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, nullTime(end), uuid.NewString(), time.Now())
	if err != nil {
		return err
	}
	return checkAffected(result, userResource(id))
}

func (r *userRepository) IncrementAccessFailedCount(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE users
		SET access_failed_count = access_failed_count + 1, concurrency_stamp = $2, updated_at = $3
		WHERE id = $1
		RETURNING access_failed_count
	`

	var count int
	err := r.executor.QueryRowContext(ctx, query, id, uuid.NewString(), time.Now()).Scan(&count)
	if err != nil {
		return 0, mapError(err, userResource(id))
	}
	return count, nil
}

func (r *userRepository) ResetAccessFailedCount(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET access_failed_count = 0, concurrency_stamp = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, uuid.NewString(), time.Now())
	if err != nil {
		return err
	}
	return checkAffected(result, userResource(id))
}
