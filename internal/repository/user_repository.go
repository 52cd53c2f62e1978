package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.ApplicationUser) error
	// Update сохраняет пользователя, если ConcurrencyStamp совпадает с хранимым,
	// и записывает в user новый штамп.
	Update(ctx context.Context, user *domain.ApplicationUser) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ApplicationUser, error)
	GetByNormalizedUserName(ctx context.Context, normalizedUserName string) (*domain.ApplicationUser, error)
	GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*domain.ApplicationUser, error)
	List(ctx context.Context, limit, offset int) ([]*domain.ApplicationUser, error)
	SetLockoutEnd(ctx context.Context, id string, end *time.Time) error
	IncrementAccessFailedCount(ctx context.Context, id string) (int, error)
	ResetAccessFailedCount(ctx context.Context, id string) error
}
