package postgres

import (
	"context"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type claimRepository struct {
	executor DBExecutor
}

func NewClaimRepository(executor DBExecutor) *claimRepository {
	return &claimRepository{executor: executor}
}

// AddUserClaims вставляет claims по одному. Для атомарности вызывайте
// внутри транзакции.
func (r *claimRepository) AddUserClaims(ctx context.Context, userID string, claims []domain.Claim) error {
	query := `INSERT INTO user_claims (user_id, claim_type, claim_value) VALUES ($1, $2, $3)`

	for _, claim := range claims {
		if _, err := r.executor.ExecContext(ctx, query, userID, claim.Type, claim.Value); err != nil {
			return mapError(err, "claims for user "+userID)
		}
	}
	return nil
}

func (r *claimRepository) RemoveUserClaims(ctx context.Context, userID string, claims []domain.Claim) error {
	query := `DELETE FROM user_claims WHERE user_id = $1 AND claim_type = $2 AND claim_value = $3`

	for _, claim := range claims {
		if _, err := r.executor.ExecContext(ctx, query, userID, claim.Type, claim.Value); err != nil {
			return err
		}
	}
	return nil
}

func (r *claimRepository) ReplaceUserClaim(ctx context.Context, userID string, claim, newClaim domain.Claim) error {
	query := `
		UPDATE user_claims
		SET claim_type = $4, claim_value = $5
		WHERE user_id = $1 AND claim_type = $2 AND claim_value = $3
	`

	result, err := r.executor.ExecContext(ctx, query, userID, claim.Type, claim.Value, newClaim.Type, newClaim.Value)
	if err != nil {
		return err
	}
	return checkAffected(result, "claim "+claim.Type+" for user "+userID)
}

func (r *claimRepository) GetUserClaims(ctx context.Context, userID string) ([]domain.Claim, error) {
	query := `
		SELECT COALESCE(claim_type, ''), COALESCE(claim_value, '')
		FROM user_claims
		WHERE user_id = $1
		ORDER BY id
	`
	return r.queryClaims(ctx, query, userID)
}

func (r *claimRepository) GetUsersForClaim(ctx context.Context, claim domain.Claim) ([]*domain.ApplicationUser, error) {
	query := `
		SELECT DISTINCT ` + userColumns + `
		FROM users u
		JOIN user_claims uc ON uc.user_id = u.id
		WHERE uc.claim_type = $1 AND uc.claim_value = $2
		ORDER BY u.created_at, u.id
	`

	rows, err := r.executor.QueryContext(ctx, query, claim.Type, claim.Value)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (r *claimRepository) AddRoleClaim(ctx context.Context, roleID string, claim domain.Claim) error {
	query := `INSERT INTO role_claims (role_id, claim_type, claim_value) VALUES ($1, $2, $3)`

	_, err := r.executor.ExecContext(ctx, query, roleID, claim.Type, claim.Value)
	return mapError(err, "claims for role "+roleID)
}

func (r *claimRepository) RemoveRoleClaim(ctx context.Context, roleID string, claim domain.Claim) error {
	query := `DELETE FROM role_claims WHERE role_id = $1 AND claim_type = $2 AND claim_value = $3`

	_, err := r.executor.ExecContext(ctx, query, roleID, claim.Type, claim.Value)
	return err
}

func (r *claimRepository) GetRoleClaims(ctx context.Context, roleID string) ([]domain.Claim, error) {
	query := `
		SELECT COALESCE(claim_type, ''), COALESCE(claim_value, '')
		FROM role_claims
		WHERE role_id = $1
		ORDER BY id
	`
	return r.queryClaims(ctx, query, roleID)
}

func (r *claimRepository) queryClaims(ctx context.Context, query string, ownerID string) ([]domain.Claim, error) {
	rows, err := r.executor.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := make([]domain.Claim, 0)
	for rows.Next() {
		var claim domain.Claim
		if err := rows.Scan(&claim.Type, &claim.Value); err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}
	return claims, rows.Err()
}
