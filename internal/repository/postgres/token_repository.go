package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type tokenRepository struct {
	executor DBExecutor
}

func NewTokenRepository(executor DBExecutor) *tokenRepository {
	return &tokenRepository{executor: executor}
}

func tokenResource(userID, loginProvider, name string) string {
	return "token " + loginProvider + "/" + name + " for user " + userID
}

func (r *tokenRepository) Set(ctx context.Context, token *domain.UserToken) error {
	query := `
		INSERT INTO user_tokens (user_id, login_provider, name, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, login_provider, name) DO UPDATE
		SET value = EXCLUDED.value
	`

	_, err := r.executor.ExecContext(ctx, query, token.UserID, token.LoginProvider, token.Name, nullString(token.Value))
	return mapError(err, tokenResource(token.UserID, token.LoginProvider, token.Name))
}

func (r *tokenRepository) Get(ctx context.Context, userID, loginProvider, name string) (*domain.UserToken, error) {
	query := `
		SELECT user_id, login_provider, name, value
		FROM user_tokens
		WHERE user_id = $1 AND login_provider = $2 AND name = $3
	`

	token := &domain.UserToken{}
	var value sql.NullString
	err := r.executor.QueryRowContext(ctx, query, userID, loginProvider, name).Scan(
		&token.UserID,
		&token.LoginProvider,
		&token.Name,
		&value,
	)
	if err != nil {
		return nil, mapError(err, tokenResource(userID, loginProvider, name))
	}

	token.Value = value.String
	return token, nil
}

// Remove идемпотентен: отсутствие токена ошибкой не считается
func (r *tokenRepository) Remove(ctx context.Context, userID, loginProvider, name string) error {
	query := `DELETE FROM user_tokens WHERE user_id = $1 AND login_provider = $2 AND name = $3`

	_, err := r.executor.ExecContext(ctx, query, userID, loginProvider, name)
	return err
}
