package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type loginRepository struct {
	executor DBExecutor
}

func NewLoginRepository(executor DBExecutor) *loginRepository {
	return &loginRepository{executor: executor}
}

func loginResource(loginProvider, providerKey string) string {
	return "login " + loginProvider + "/" + providerKey
}

func (r *loginRepository) Add(ctx context.Context, login *domain.UserLogin) error {
	query := `
		INSERT INTO user_logins (login_provider, provider_key, provider_display_name, user_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.executor.ExecContext(ctx, query, login.LoginProvider, login.ProviderKey, nullString(login.ProviderDisplayName), login.UserID)
	return mapError(err, loginResource(login.LoginProvider, login.ProviderKey))
}

func (r *loginRepository) Remove(ctx context.Context, userID, loginProvider, providerKey string) error {
	query := `
		DELETE FROM user_logins
		WHERE user_id = $1 AND login_provider = $2 AND provider_key = $3
	`

	result, err := r.executor.ExecContext(ctx, query, userID, loginProvider, providerKey)
	if err != nil {
		return err
	}
	return checkAffected(result, loginResource(loginProvider, providerKey))
}

func (r *loginRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.UserLogin, error) {
	query := `
		SELECT login_provider, provider_key, provider_display_name, user_id
		FROM user_logins
		WHERE user_id = $1
		ORDER BY login_provider, provider_key
	`

	rows, err := r.executor.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logins := make([]*domain.UserLogin, 0)
	for rows.Next() {
		login := &domain.UserLogin{}
		var displayName sql.NullString
		if err := rows.Scan(&login.LoginProvider, &login.ProviderKey, &displayName, &login.UserID); err != nil {
			return nil, err
		}
		login.ProviderDisplayName = displayName.String
		logins = append(logins, login)
	}
	return logins, rows.Err()
}

func (r *loginRepository) FindUser(ctx context.Context, loginProvider, providerKey string) (*domain.ApplicationUser, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN user_logins ul ON ul.user_id = u.id
		WHERE ul.login_provider = $1 AND ul.provider_key = $2
	`

	user, err := scanUser(r.executor.QueryRowContext(ctx, query, loginProvider, providerKey))
	if err != nil {
		return nil, mapError(err, "user for "+loginResource(loginProvider, providerKey))
	}
	return user, nil
}
