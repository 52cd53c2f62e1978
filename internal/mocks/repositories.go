// Package mocks содержит моки репозиториев на testify/mock для тестов сервисов.
package mocks

import (
	"context"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.ApplicationUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.ApplicationUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.ApplicationUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationUser), args.Error(1)
}

func (m *MockUserRepository) GetByNormalizedUserName(ctx context.Context, normalizedUserName string) (*domain.ApplicationUser, error) {
	args := m.Called(ctx, normalizedUserName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationUser), args.Error(1)
}

func (m *MockUserRepository) GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*domain.ApplicationUser, error) {
	args := m.Called(ctx, normalizedEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationUser), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.ApplicationUser, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ApplicationUser), args.Error(1)
}

func (m *MockUserRepository) SetLockoutEnd(ctx context.Context, id string, end *time.Time) error {
	args := m.Called(ctx, id, end)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementAccessFailedCount(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) ResetAccessFailedCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Update(ctx context.Context, role *domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Role, error) {
	args := m.Called(ctx, normalizedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Role), args.Error(1)
}

type MockUserRoleRepository struct {
	mock.Mock
}

func (m *MockUserRoleRepository) Add(ctx context.Context, userID, roleID string) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockUserRoleRepository) Remove(ctx context.Context, userID, roleID string) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockUserRoleRepository) GetRoleNames(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRoleRepository) IsInRole(ctx context.Context, userID, normalizedRoleName string) (bool, error) {
	args := m.Called(ctx, userID, normalizedRoleName)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRoleRepository) GetUsersInRole(ctx context.Context, normalizedRoleName string) ([]*domain.ApplicationUser, error) {
	args := m.Called(ctx, normalizedRoleName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ApplicationUser), args.Error(1)
}

type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) AddUserClaims(ctx context.Context, userID string, claims []domain.Claim) error {
	args := m.Called(ctx, userID, claims)
	return args.Error(0)
}

func (m *MockClaimRepository) RemoveUserClaims(ctx context.Context, userID string, claims []domain.Claim) error {
	args := m.Called(ctx, userID, claims)
	return args.Error(0)
}

func (m *MockClaimRepository) ReplaceUserClaim(ctx context.Context, userID string, claim, newClaim domain.Claim) error {
	args := m.Called(ctx, userID, claim, newClaim)
	return args.Error(0)
}

func (m *MockClaimRepository) GetUserClaims(ctx context.Context, userID string) ([]domain.Claim, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Claim), args.Error(1)
}

func (m *MockClaimRepository) GetUsersForClaim(ctx context.Context, claim domain.Claim) ([]*domain.ApplicationUser, error) {
	args := m.Called(ctx, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ApplicationUser), args.Error(1)
}

func (m *MockClaimRepository) AddRoleClaim(ctx context.Context, roleID string, claim domain.Claim) error {
	args := m.Called(ctx, roleID, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) RemoveRoleClaim(ctx context.Context, roleID string, claim domain.Claim) error {
	args := m.Called(ctx, roleID, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) GetRoleClaims(ctx context.Context, roleID string) ([]domain.Claim, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Claim), args.Error(1)
}

type MockLoginRepository struct {
	mock.Mock
}

func (m *MockLoginRepository) Add(ctx context.Context, login *domain.UserLogin) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *MockLoginRepository) Remove(ctx context.Context, userID, loginProvider, providerKey string) error {
	args := m.Called(ctx, userID, loginProvider, providerKey)
	return args.Error(0)
}

func (m *MockLoginRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.UserLogin, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserLogin), args.Error(1)
}

func (m *MockLoginRepository) FindUser(ctx context.Context, loginProvider, providerKey string) (*domain.ApplicationUser, error) {
	args := m.Called(ctx, loginProvider, providerKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationUser), args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Set(ctx context.Context, token *domain.UserToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) Get(ctx context.Context, userID, loginProvider, name string) (*domain.UserToken, error) {
	args := m.Called(ctx, userID, loginProvider, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserToken), args.Error(1)
}

func (m *MockTokenRepository) Remove(ctx context.Context, userID, loginProvider, name string) error {
	args := m.Called(ctx, userID, loginProvider, name)
	return args.Error(0)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStats(ctx context.Context, now time.Time) (*domain.Stats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}
