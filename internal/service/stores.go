package service

import (
	"context"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/identitydb"
	"github.com/bagdasarian/vrm-monitor/internal/repository"
)

// Stores - набор репозиториев, с которыми работают сервисы
type Stores struct {
	Users     repository.UserRepository
	Roles     repository.RoleRepository
	UserRoles repository.UserRoleRepository
	Claims    repository.ClaimRepository
	Logins    repository.LoginRepository
	Tokens    repository.TokenRepository
	Stats     repository.StatsRepository
}

// Transactor выполняет fn с репозиториями, привязанными к одной транзакции
type Transactor interface {
	WithinTx(ctx context.Context, fn func(stores Stores) error) error
}

type LockoutOptions struct {
	MaxFailedAttempts  int
	Duration           time.Duration
	AllowedForNewUsers bool
}

type Options struct {
	Lockout LockoutOptions
	Now     func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

// StoresFromContext возвращает репозитории контекста хранения
func StoresFromContext(c *identitydb.Context) Stores {
	return Stores{
		Users:     c.Users,
		Roles:     c.Roles,
		UserRoles: c.UserRoles,
		Claims:    c.Claims,
		Logins:    c.Logins,
		Tokens:    c.Tokens,
		Stats:     c.Stats,
	}
}

type contextTransactor struct {
	c *identitydb.Context
}

func NewContextTransactor(c *identitydb.Context) Transactor {
	return &contextTransactor{c: c}
}

func (t *contextTransactor) WithinTx(ctx context.Context, fn func(stores Stores) error) error {
	return t.c.InTx(ctx, func(tx *identitydb.Context) error {
		return fn(StoresFromContext(tx))
	})
}
