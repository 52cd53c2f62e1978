package repository

import (
	"context"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
}

type UserRoleRepository interface {
	Add(ctx context.Context, userID, roleID string) error
	Remove(ctx context.Context, userID, roleID string) error
	GetRoleNames(ctx context.Context, userID string) ([]string, error)
	IsInRole(ctx context.Context, userID, normalizedRoleName string) (bool, error)
	GetUsersInRole(ctx context.Context, normalizedRoleName string) ([]*domain.ApplicationUser, error)
}
