package service

import (
	"context"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/mocks"
)

type testDeps struct {
	users     *mocks.MockUserRepository
	roles     *mocks.MockRoleRepository
	userRoles *mocks.MockUserRoleRepository
	claims    *mocks.MockClaimRepository
	logins    *mocks.MockLoginRepository
	tokens    *mocks.MockTokenRepository
	stats     *mocks.MockStatsRepository
}

func newTestDeps() (*testDeps, Stores) {
	d := &testDeps{
		users:     new(mocks.MockUserRepository),
		roles:     new(mocks.MockRoleRepository),
		userRoles: new(mocks.MockUserRoleRepository),
		claims:    new(mocks.MockClaimRepository),
		logins:    new(mocks.MockLoginRepository),
		tokens:    new(mocks.MockTokenRepository),
		stats:     new(mocks.MockStatsRepository),
	}
	return d, Stores{
		Users:     d.users,
		Roles:     d.roles,
		UserRoles: d.userRoles,
		Claims:    d.claims,
		Logins:    d.logins,
		Tokens:    d.tokens,
		Stats:     d.stats,
	}
}

// passthroughTx вызывает fn с теми же репозиториями, без транзакции
type passthroughTx struct {
	stores Stores
	calls  int
}

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(stores Stores) error) error {
	p.calls++
	return fn(p.stores)
}

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Lockout: LockoutOptions{
			MaxFailedAttempts:  3,
			Duration:           5 * time.Minute,
			AllowedForNewUsers: true,
		},
		Now: func() time.Time { return fixedNow },
	}
}
