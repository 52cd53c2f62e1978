package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_GetStats(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("успешное получение статистики", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		mock.ExpectQuery("FILTER").
			WithArgs(now).
			WillReturnRows(sqlmock.NewRows([]string{"total", "confirmed", "locked"}).AddRow(10, 7, 1))
		mock.ExpectQuery("LEFT JOIN user_roles").
			WillReturnRows(sqlmock.NewRows([]string{"name", "user_count"}).
				AddRow("Admin", 2).
				AddRow("Viewer", 0))

		stats, err := repo.GetStats(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 10, stats.TotalUsers)
		assert.Equal(t, 7, stats.ConfirmedUsers)
		assert.Equal(t, 1, stats.LockedOutUsers)
		require.Len(t, stats.Roles, 2)
		assert.Equal(t, "Admin", stats.Roles[0].RoleName)
		assert.Equal(t, 2, stats.Roles[0].UserCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка при подсчёте ролей", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		mock.ExpectQuery("FILTER").
			WillReturnRows(sqlmock.NewRows([]string{"total", "confirmed", "locked"}).AddRow(0, 0, 0))
		mock.ExpectQuery("LEFT JOIN user_roles").WillReturnError(errors.New("database error"))

		stats, err := repo.GetStats(ctx, now)

		require.Error(t, err)
		assert.Nil(t, stats)
	})
}
