// Package identitydb реализует базовый контекст хранения identity-данных:
// пользователи, роли, claims, внешние входы и токены поверх PostgreSQL.
package identitydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bagdasarian/vrm-monitor/internal/config"
	"github.com/bagdasarian/vrm-monitor/internal/db"
	"github.com/bagdasarian/vrm-monitor/internal/repository"
	"github.com/bagdasarian/vrm-monitor/internal/repository/postgres"
)

// ErrCloseInTx возвращается при вызове Close на контексте транзакции
var ErrCloseInTx = errors.New("identitydb: cannot close a transaction-bound context")

// Options описывает подключение к хранилищу. Значение передаётся
// в Open без изменений.
type Options struct {
	DSN         string
	Pool        db.PoolConfig
	AutoMigrate bool
}

// OptionsFromConfig переносит настройки БД из конфигурации приложения
func OptionsFromConfig(cfg config.DatabaseConfig) Options {
	return Options{
		DSN: cfg.DSN(),
		Pool: db.PoolConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		},
		AutoMigrate: cfg.AutoMigrate,
	}
}

func (o Options) validate() error {
	if o.DSN == "" {
		return errors.New("identitydb: DSN is required")
	}
	return nil
}

// Context - контекст хранения identity-данных. Репозитории привязаны либо
// к пулу соединений, либо (внутри InTx) к одной транзакции.
type Context struct {
	db *sql.DB
	tx *sql.Tx

	Users     repository.UserRepository
	Roles     repository.RoleRepository
	UserRoles repository.UserRoleRepository
	Claims    repository.ClaimRepository
	Logins    repository.LoginRepository
	Tokens    repository.TokenRepository
	Stats     repository.StatsRepository
}

// Open подключается к хранилищу по opts и, если включено, накатывает схему
func Open(ctx context.Context, opts Options) (*Context, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	sqlDB, err := db.NewPostgres(ctx, opts.DSN, opts.Pool)
	if err != nil {
		return nil, err
	}

	c := New(sqlDB)
	if opts.AutoMigrate {
		if _, err := c.EnsureCreated(ctx); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	return c, nil
}

// New оборачивает уже открытое соединение
func New(sqlDB *sql.DB) *Context {
	return bind(sqlDB, nil, sqlDB)
}

func bind(sqlDB *sql.DB, tx *sql.Tx, executor postgres.DBExecutor) *Context {
	return &Context{
		db:        sqlDB,
		tx:        tx,
		Users:     postgres.NewUserRepository(executor),
		Roles:     postgres.NewRoleRepository(executor),
		UserRoles: postgres.NewUserRoleRepository(executor),
		Claims:    postgres.NewClaimRepository(executor),
		Logins:    postgres.NewLoginRepository(executor),
		Tokens:    postgres.NewTokenRepository(executor),
		Stats:     postgres.NewStatsRepository(executor),
	}
}

// InTx выполняет fn с репозиториями, привязанными к одной транзакции.
// Коммит при nil, откат при ошибке или панике. Вложенный вызов
// переиспользует текущую транзакцию.
func (c *Context) InTx(ctx context.Context, fn func(tx *Context) error) (err error) {
	if c.tx != nil {
		return fn(c)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				slog.Error("failed to roll back transaction", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(bind(c.db, tx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Ping проверяет доступность базы
func (c *Context) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// EnsureCreated накатывает недостающие миграции схемы
func (c *Context) EnsureCreated(ctx context.Context) ([]int, error) {
	return db.Migrate(ctx, c.db)
}

// RollbackSchema откатывает последнюю применённую миграцию
func (c *Context) RollbackSchema(ctx context.Context) (int, error) {
	return db.Rollback(ctx, c.db)
}

// SchemaVersion возвращает номер последней применённой миграции
func (c *Context) SchemaVersion(ctx context.Context) (int, error) {
	return db.Version(ctx, c.db)
}

// DB возвращает пул соединений, общий для всех контекстов из InTx
func (c *Context) DB() *sql.DB {
	return c.db
}

// Close закрывает пул соединений. Контекст транзакции из InTx пул
// не закрывает и возвращает ErrCloseInTx.
func (c *Context) Close() error {
	if c.tx != nil {
		return ErrCloseInTx
	}
	return c.db.Close()
}
