package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type statsRepository struct {
	executor DBExecutor
}

func NewStatsRepository(executor DBExecutor) *statsRepository {
	return &statsRepository{executor: executor}
}

func (r *statsRepository) GetStats(ctx context.Context, now time.Time) (*domain.Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE email_confirmed),
			COUNT(*) FILTER (WHERE lockout_enabled AND lockout_end > $1)
		FROM users
	`

	stats := &domain.Stats{}
	err := r.executor.QueryRowContext(ctx, query, now).Scan(
		&stats.TotalUsers,
		&stats.ConfirmedUsers,
		&stats.LockedOutUsers,
	)
	if err != nil {
		return nil, err
	}

	roles, err := r.getRoleStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Roles = roles

	return stats, nil
}

func (r *statsRepository) getRoleStats(ctx context.Context) ([]*domain.RoleStat, error) {
	query := `
		SELECT r.name, COUNT(ur.user_id) AS user_count
		FROM roles r
		LEFT JOIN user_roles ur ON ur.role_id = r.id
		GROUP BY r.id, r.name
		ORDER BY user_count DESC, r.name
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*domain.RoleStat, 0)
	for rows.Next() {
		stat := &domain.RoleStat{}
		var name sql.NullString
		if err := rows.Scan(&name, &stat.UserCount); err != nil {
			return nil, err
		}
		stat.RoleName = name.String
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
