package service

import (
	"context"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type RoleService interface {
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	RenameRole(ctx context.Context, role *domain.Role, newName string) (*domain.Role, error)
	DeleteRole(ctx context.Context, name string) error
	FindRole(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]*domain.Role, error)

	AddToRole(ctx context.Context, userID, roleName string) error
	RemoveFromRole(ctx context.Context, userID, roleName string) error
	GetRoles(ctx context.Context, userID string) ([]string, error)
	IsInRole(ctx context.Context, userID, roleName string) (bool, error)
	GetUsersInRole(ctx context.Context, roleName string) ([]*domain.ApplicationUser, error)

	AddRoleClaim(ctx context.Context, roleName string, claim domain.Claim) error
	RemoveRoleClaim(ctx context.Context, roleName string, claim domain.Claim) error
	GetRoleClaims(ctx context.Context, roleName string) ([]domain.Claim, error)
}
