package repository

import (
	"context"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type LoginRepository interface {
	Add(ctx context.Context, login *domain.UserLogin) error
	Remove(ctx context.Context, userID, loginProvider, providerKey string) error
	GetByUserID(ctx context.Context, userID string) ([]*domain.UserLogin, error)
	FindUser(ctx context.Context, loginProvider, providerKey string) (*domain.ApplicationUser, error)
}

type TokenRepository interface {
	Set(ctx context.Context, token *domain.UserToken) error
	Get(ctx context.Context, userID, loginProvider, name string) (*domain.UserToken, error)
	Remove(ctx context.Context, userID, loginProvider, name string) error
}
