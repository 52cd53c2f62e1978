package service

import (
	"context"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type UserService interface {
	// CreateUser проверяет и нормализует данные, назначает ID и штампы
	CreateUser(ctx context.Context, user *domain.ApplicationUser) (*domain.ApplicationUser, error)
	// UpdateUser сохраняет пользователя с проверкой ConcurrencyStamp
	UpdateUser(ctx context.Context, user *domain.ApplicationUser) (*domain.ApplicationUser, error)
	DeleteUser(ctx context.Context, userID string) error

	FindByID(ctx context.Context, userID string) (*domain.ApplicationUser, error)
	FindByName(ctx context.Context, userName string) (*domain.ApplicationUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.ApplicationUser, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.ApplicationUser, error)

	SetEmailConfirmed(ctx context.Context, userID string, confirmed bool) (*domain.ApplicationUser, error)

	// RecordAccessFailed увеличивает счётчик неудачных попыток и блокирует
	// пользователя по достижении порога
	RecordAccessFailed(ctx context.Context, userID string) (*domain.ApplicationUser, error)
	ResetAccessFailed(ctx context.Context, userID string) error
	IsLockedOut(ctx context.Context, userID string) (bool, error)
	// CheckLockout возвращает пользователя или LOCKED_OUT, если блокировка активна
	CheckLockout(ctx context.Context, userID string) (*domain.ApplicationUser, error)
	SetLockoutEnd(ctx context.Context, userID string, end *time.Time) error

	AddClaims(ctx context.Context, userID string, claims []domain.Claim) error
	RemoveClaims(ctx context.Context, userID string, claims []domain.Claim) error
	ReplaceClaim(ctx context.Context, userID string, claim, newClaim domain.Claim) error
	GetClaims(ctx context.Context, userID string) ([]domain.Claim, error)
	GetUsersForClaim(ctx context.Context, claim domain.Claim) ([]*domain.ApplicationUser, error)

	AddLogin(ctx context.Context, userID string, login domain.UserLogin) error
	RemoveLogin(ctx context.Context, userID, loginProvider, providerKey string) error
	GetLogins(ctx context.Context, userID string) ([]*domain.UserLogin, error)
	FindByLogin(ctx context.Context, loginProvider, providerKey string) (*domain.ApplicationUser, error)

	SetToken(ctx context.Context, userID, loginProvider, name, value string) error
	GetToken(ctx context.Context, userID, loginProvider, name string) (string, error)
	RemoveToken(ctx context.Context, userID, loginProvider, name string) error
}
