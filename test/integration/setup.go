//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/data"
	"github.com/bagdasarian/vrm-monitor/internal/identitydb"
	"github.com/bagdasarian/vrm-monitor/internal/service"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres поднимает контейнер Postgres и возвращает DSN
func startPostgres(t *testing.T) string {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:17.7",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, postgresContainer.Terminate(ctx))
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

// setupTestContext открывает контекст приложения на свежей базе со схемой
func setupTestContext(t *testing.T) *data.ApplicationContext {
	dsn := startPostgres(t)

	appCtx, err := data.Open(context.Background(), identitydb.Options{
		DSN:         dsn,
		AutoMigrate: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() { appCtx.Close() })
	return appCtx
}

func testServiceOptions() service.Options {
	return service.Options{
		Lockout: service.LockoutOptions{
			MaxFailedAttempts:  3,
			Duration:           10 * time.Minute,
			AllowedForNewUsers: true,
		},
	}
}

type testServices struct {
	users service.UserService
	roles service.RoleService
	stats service.StatsService
}

func newTestServices(appCtx *data.ApplicationContext) testServices {
	stores := service.StoresFromContext(appCtx.Context)
	tx := service.NewContextTransactor(appCtx.Context)
	opts := testServiceOptions()
	validate := service.NewValidator()

	return testServices{
		users: service.NewUserService(stores, tx, validate, opts),
		roles: service.NewRoleService(stores, tx, validate),
		stats: service.NewStatsService(stores.Stats, opts),
	}
}
