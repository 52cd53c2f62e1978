package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type roleService struct {
	stores   Stores
	tx       Transactor
	validate *validator.Validate
}

// NewRoleService создает новый экземпляр RoleService
func NewRoleService(stores Stores, tx Transactor, validate *validator.Validate) RoleService {
	return &roleService{
		stores:   stores,
		tx:       tx,
		validate: validate,
	}
}

func (s *roleService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if err := validateRoleName(s.validate, name); err != nil {
		return nil, err
	}

	normalized := domain.Normalize(name)
	_, err := s.stores.Roles.GetByNormalizedName(ctx, normalized)
	if err == nil {
		return nil, domain.NewDuplicateError("role with name " + name)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	role := &domain.Role{
		ID:               uuid.NewString(),
		Name:             name,
		NormalizedName:   normalized,
		ConcurrencyStamp: uuid.NewString(),
	}
	if err := s.stores.Roles.Create(ctx, role); err != nil {
		return nil, err
	}

	slog.Info("role created", slog.String("role_id", role.ID), slog.String("role_name", role.Name))
	return role, nil
}

func (s *roleService) RenameRole(ctx context.Context, role *domain.Role, newName string) (*domain.Role, error) {
	newName = strings.TrimSpace(newName)
	if err := validateRoleName(s.validate, newName); err != nil {
		return nil, err
	}

	normalized := domain.Normalize(newName)
	existing, err := s.stores.Roles.GetByNormalizedName(ctx, normalized)
	if err == nil && existing.ID != role.ID {
		return nil, domain.NewDuplicateError("role with name " + newName)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	role.Name = newName
	role.NormalizedName = normalized
	if err := s.stores.Roles.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) DeleteRole(ctx context.Context, name string) error {
	role, err := s.FindRole(ctx, name)
	if err != nil {
		return err
	}
	if err := s.stores.Roles.Delete(ctx, role.ID); err != nil {
		return err
	}
	slog.Info("role deleted", slog.String("role_id", role.ID), slog.String("role_name", role.Name))
	return nil
}

func (s *roleService) FindRole(ctx context.Context, name string) (*domain.Role, error) {
	normalized := domain.Normalize(name)
	if normalized == "" {
		return nil, domain.NewValidationError("role name is required")
	}
	return s.stores.Roles.GetByNormalizedName(ctx, normalized)
}

func (s *roleService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.stores.Roles.List(ctx)
}

func (s *roleService) AddToRole(ctx context.Context, userID, roleName string) error {
	return s.tx.WithinTx(ctx, func(stores Stores) error {
		role, err := stores.Roles.GetByNormalizedName(ctx, domain.Normalize(roleName))
		if err != nil {
			return err
		}

		if _, err := stores.Users.GetByID(ctx, userID); err != nil {
			return err
		}

		inRole, err := stores.UserRoles.IsInRole(ctx, userID, role.NormalizedName)
		if err != nil {
			return err
		}
		if inRole {
			return domain.NewDuplicateError("user " + userID + " in role " + role.Name)
		}

		return stores.UserRoles.Add(ctx, userID, role.ID)
	})
}

func (s *roleService) RemoveFromRole(ctx context.Context, userID, roleName string) error {
	role, err := s.FindRole(ctx, roleName)
	if err != nil {
		return err
	}
	return s.stores.UserRoles.Remove(ctx, userID, role.ID)
}

func (s *roleService) GetRoles(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.stores.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.stores.UserRoles.GetRoleNames(ctx, userID)
}

func (s *roleService) IsInRole(ctx context.Context, userID, roleName string) (bool, error) {
	normalized := domain.Normalize(roleName)
	if normalized == "" {
		return false, domain.NewValidationError("role name is required")
	}
	return s.stores.UserRoles.IsInRole(ctx, userID, normalized)
}

func (s *roleService) GetUsersInRole(ctx context.Context, roleName string) ([]*domain.ApplicationUser, error) {
	role, err := s.FindRole(ctx, roleName)
	if err != nil {
		return nil, err
	}
	return s.stores.UserRoles.GetUsersInRole(ctx, role.NormalizedName)
}

func (s *roleService) AddRoleClaim(ctx context.Context, roleName string, claim domain.Claim) error {
	if err := validateClaim(s.validate, claim); err != nil {
		return err
	}
	role, err := s.FindRole(ctx, roleName)
	if err != nil {
		return err
	}
	return s.stores.Claims.AddRoleClaim(ctx, role.ID, claim)
}

func (s *roleService) RemoveRoleClaim(ctx context.Context, roleName string, claim domain.Claim) error {
	role, err := s.FindRole(ctx, roleName)
	if err != nil {
		return err
	}
	return s.stores.Claims.RemoveRoleClaim(ctx, role.ID, claim)
}

func (s *roleService) GetRoleClaims(ctx context.Context, roleName string) ([]domain.Claim, error) {
	role, err := s.FindRole(ctx, roleName)
	if err != nil {
		return nil, err
	}
	return s.stores.Claims.GetRoleClaims(ctx, role.ID)
}
