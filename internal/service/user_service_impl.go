package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type userService struct {
	stores   Stores
	tx       Transactor
	validate *validator.Validate
	opts     Options
}

// NewUserService создает новый экземпляр UserService
func NewUserService(stores Stores, tx Transactor, validate *validator.Validate, opts Options) UserService {
	return &userService{
		stores:   stores,
		tx:       tx,
		validate: validate,
		opts:     opts,
	}
}

func normalizeUser(user *domain.ApplicationUser) {
	user.UserName = strings.TrimSpace(user.UserName)
	user.Email = strings.TrimSpace(user.Email)
	user.NormalizedUserName = domain.Normalize(user.UserName)
	user.NormalizedEmail = domain.Normalize(user.Email)
}

// ensureUniqueName проверяет, что имя не занято другим пользователем
func (s *userService) ensureUniqueName(ctx context.Context, user *domain.ApplicationUser) error {
	existing, err := s.stores.Users.GetByNormalizedUserName(ctx, user.NormalizedUserName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != user.ID {
		return domain.NewDuplicateError("user with name " + user.UserName)
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, user *domain.ApplicationUser) (*domain.ApplicationUser, error) {
	if user == nil {
		return nil, domain.NewValidationError("user is required")
	}

	normalizeUser(user)
	if err := validateUser(s.validate, user); err != nil {
		return nil, err
	}

	if err := s.ensureUniqueName(ctx, user); err != nil {
		return nil, err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.SecurityStamp = uuid.NewString()
	user.ConcurrencyStamp = uuid.NewString()
	user.LockoutEnabled = s.opts.Lockout.AllowedForNewUsers
	user.AccessFailedCount = 0

	if err := s.stores.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user created", slog.String("user_id", user.ID), slog.String("user_name", user.UserName))
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, user *domain.ApplicationUser) (*domain.ApplicationUser, error) {
	if user == nil || user.ID == "" {
		return nil, domain.NewValidationError("user id is required")
	}

	normalizeUser(user)
	if err := validateUser(s.validate, user); err != nil {
		return nil, err
	}

	if err := s.ensureUniqueName(ctx, user); err != nil {
		return nil, err
	}

	if err := s.stores.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.stores.Users.Delete(ctx, userID); err != nil {
		return err
	}
	slog.Info("user deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) FindByID(ctx context.Context, userID string) (*domain.ApplicationUser, error) {
	return s.stores.Users.GetByID(ctx, userID)
}

func (s *userService) FindByName(ctx context.Context, userName string) (*domain.ApplicationUser, error) {
	normalized := domain.Normalize(userName)
	if normalized == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	return s.stores.Users.GetByNormalizedUserName(ctx, normalized)
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*domain.ApplicationUser, error) {
	normalized := domain.Normalize(email)
	if normalized == "" {
		return nil, domain.NewValidationError("email is required")
	}
	return s.stores.Users.GetByNormalizedEmail(ctx, normalized)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]*domain.ApplicationUser, error) {
	return s.stores.Users.List(ctx, limit, offset)
}

func (s *userService) SetEmailConfirmed(ctx context.Context, userID string, confirmed bool) (*domain.ApplicationUser, error) {
	user, err := s.stores.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.EmailConfirmed = confirmed
	if err := s.stores.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) RecordAccessFailed(ctx context.Context, userID string) (*domain.ApplicationUser, error) {
	var result *domain.ApplicationUser

	err := s.tx.WithinTx(ctx, func(stores Stores) error {
		user, err := stores.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if !user.LockoutEnabled {
			result = user
			return nil
		}

		count, err := stores.Users.IncrementAccessFailedCount(ctx, userID)
		if err != nil {
			return err
		}

		if count >= s.opts.Lockout.MaxFailedAttempts {
			end := s.opts.now().Add(s.opts.Lockout.Duration)
			if err := stores.Users.SetLockoutEnd(ctx, userID, &end); err != nil {
				return err
			}
			if err := stores.Users.ResetAccessFailedCount(ctx, userID); err != nil {
				return err
			}
			slog.Warn("user locked out",
				slog.String("user_id", userID),
				slog.Time("lockout_end", end),
			)
		}

		result, err = stores.Users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *userService) ResetAccessFailed(ctx context.Context, userID string) error {
	return s.stores.Users.ResetAccessFailedCount(ctx, userID)
}

func (s *userService) IsLockedOut(ctx context.Context, userID string) (bool, error) {
	user, err := s.stores.Users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsLockedOut(s.opts.now()), nil
}

func (s *userService) CheckLockout(ctx context.Context, userID string) (*domain.ApplicationUser, error) {
	user, err := s.stores.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsLockedOut(s.opts.now()) {
		return nil, domain.NewLockedOutError(userID, *user.LockoutEnd)
	}
	return user, nil
}

func (s *userService) SetLockoutEnd(ctx context.Context, userID string, end *time.Time) error {
	user, err := s.stores.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.LockoutEnabled {
		return domain.NewValidationError("lockout is not enabled for user %s", userID)
	}
	return s.stores.Users.SetLockoutEnd(ctx, userID, end)
}

func (s *userService) AddClaims(ctx context.Context, userID string, claims []domain.Claim) error {
	for _, claim := range claims {
		if err := validateClaim(s.validate, claim); err != nil {
			return err
		}
	}

	return s.tx.WithinTx(ctx, func(stores Stores) error {
		if _, err := stores.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		return stores.Claims.AddUserClaims(ctx, userID, claims)
	})
}

func (s *userService) RemoveClaims(ctx context.Context, userID string, claims []domain.Claim) error {
	return s.tx.WithinTx(ctx, func(stores Stores) error {
		return stores.Claims.RemoveUserClaims(ctx, userID, claims)
	})
}

func (s *userService) ReplaceClaim(ctx context.Context, userID string, claim, newClaim domain.Claim) error {
	if err := validateClaim(s.validate, newClaim); err != nil {
		return err
	}
	return s.stores.Claims.ReplaceUserClaim(ctx, userID, claim, newClaim)
}

func (s *userService) GetClaims(ctx context.Context, userID string) ([]domain.Claim, error) {
	if _, err := s.stores.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.stores.Claims.GetUserClaims(ctx, userID)
}

func (s *userService) GetUsersForClaim(ctx context.Context, claim domain.Claim) ([]*domain.ApplicationUser, error) {
	if err := validateClaim(s.validate, claim); err != nil {
		return nil, err
	}
	return s.stores.Claims.GetUsersForClaim(ctx, claim)
}

func (s *userService) AddLogin(ctx context.Context, userID string, login domain.UserLogin) error {
	if err := validateStruct(s.validate, loginInput{LoginProvider: login.LoginProvider, ProviderKey: login.ProviderKey}); err != nil {
		return err
	}

	existing, err := s.stores.Logins.FindUser(ctx, login.LoginProvider, login.ProviderKey)
	if err == nil {
		return domain.NewDuplicateError(fmt.Sprintf("login %s/%s for user %s", login.LoginProvider, login.ProviderKey, existing.ID))
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	login.UserID = userID
	return s.stores.Logins.Add(ctx, &login)
}

func (s *userService) RemoveLogin(ctx context.Context, userID, loginProvider, providerKey string) error {
	return s.stores.Logins.Remove(ctx, userID, loginProvider, providerKey)
}

func (s *userService) GetLogins(ctx context.Context, userID string) ([]*domain.UserLogin, error) {
	return s.stores.Logins.GetByUserID(ctx, userID)
}

func (s *userService) FindByLogin(ctx context.Context, loginProvider, providerKey string) (*domain.ApplicationUser, error) {
	return s.stores.Logins.FindUser(ctx, loginProvider, providerKey)
}

func (s *userService) SetToken(ctx context.Context, userID, loginProvider, name, value string) error {
	if err := validateStruct(s.validate, tokenInput{LoginProvider: loginProvider, Name: name}); err != nil {
		return err
	}
	return s.stores.Tokens.Set(ctx, &domain.UserToken{
		UserID:        userID,
		LoginProvider: loginProvider,
		Name:          name,
		Value:         value,
	})
}

func (s *userService) GetToken(ctx context.Context, userID, loginProvider, name string) (string, error) {
	token, err := s.stores.Tokens.Get(ctx, userID, loginProvider, name)
	if err != nil {
		return "", err
	}
	return token.Value, nil
}

func (s *userService) RemoveToken(ctx context.Context, userID, loginProvider, name string) error {
	return s.stores.Tokens.Remove(ctx, userID, loginProvider, name)
}
