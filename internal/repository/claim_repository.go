package repository

import (
	"context"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type ClaimRepository interface {
	AddUserClaims(ctx context.Context, userID string, claims []domain.Claim) error
	RemoveUserClaims(ctx context.Context, userID string, claims []domain.Claim) error
	ReplaceUserClaim(ctx context.Context, userID string, claim, newClaim domain.Claim) error
	GetUserClaims(ctx context.Context, userID string) ([]domain.Claim, error)
	GetUsersForClaim(ctx context.Context, claim domain.Claim) ([]*domain.ApplicationUser, error)

	AddRoleClaim(ctx context.Context, roleID string, claim domain.Claim) error
	RemoveRoleClaim(ctx context.Context, roleID string, claim domain.Claim) error
	GetRoleClaims(ctx context.Context, roleID string) ([]domain.Claim, error)
}
