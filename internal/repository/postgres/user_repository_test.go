package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bagdasarian/vrm-monitor/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupUserRepo создает мок БД и репозиторий для ApplicationUser
func setupUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewUserRepository(db), mock
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное создание пользователя", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		now := time.Now()
		user := &domain.ApplicationUser{
			UserName:           "alice",
			NormalizedUserName: "ALICE",
			Email:              "alice@example.com",
			NormalizedEmail:    "ALICE@EXAMPLE.COM",
			LockoutEnabled:     true,
		}

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(
				sqlmock.AnyArg(), "alice", "ALICE", "alice@example.com", "ALICE@EXAMPLE.COM",
				false, nil, nil, sqlmock.AnyArg(),
				nil, false, false,
				nil, true, 0, sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		err := repo.Create(ctx, user)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID, "ID должен быть сгенерирован")
		assert.NotEmpty(t, user.ConcurrencyStamp, "штамп должен быть сгенерирован")
		assert.Equal(t, now, user.CreatedAt)
		assert.Nil(t, user.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("заданный ID сохраняется", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		user := &domain.ApplicationUser{ID: "fixed-id", UserName: "bob", NormalizedUserName: "BOB", ConcurrencyStamp: "s"}

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(
				"fixed-id", "bob", "BOB", nil, nil,
				false, nil, nil, "s",
				nil, false, false,
				nil, false, 0, sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, "fixed-id", user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка: дубликат имени", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(ctx, &domain.ApplicationUser{UserName: "alice", NormalizedUserName: "ALICE"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrDuplicate))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка БД пробрасывается как есть", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		expectedError := errors.New("database error")
		mock.ExpectQuery("INSERT INTO users").WillReturnError(expectedError)

		err := repo.Create(ctx, &domain.ApplicationUser{UserName: "alice"})

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное обновление меняет штамп", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		now := time.Now()
		updatedAt := now.Add(time.Hour)
		user := &domain.ApplicationUser{
			ID:                 "u1",
			UserName:           "alice",
			NormalizedUserName: "ALICE",
			ConcurrencyStamp:   "stamp-1",
		}

		mock.ExpectQuery("UPDATE users").
			WithArgs(
				"u1", "stamp-1", "alice", "ALICE", nil, nil,
				false, nil, nil, nil, false, false,
				nil, false, 0, sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, updatedAt))

		err := repo.Update(ctx, user)

		require.NoError(t, err)
		assert.NotEqual(t, "stamp-1", user.ConcurrencyStamp)
		require.NotNil(t, user.UpdatedAt)
		assert.Equal(t, updatedAt, *user.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка: устаревший штамп", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		user := &domain.ApplicationUser{ID: "u1", UserName: "alice", ConcurrencyStamp: "stale"}

		mock.ExpectQuery("UPDATE users").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.Update(ctx, user)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConcurrencyFailure))
		assert.Equal(t, "stale", user.ConcurrencyStamp, "штамп не должен меняться при ошибке")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка: пользователь не найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("UPDATE users").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("u404").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.Update(ctx, &domain.ApplicationUser{ID: "u404"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное удаление", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectExec("DELETE FROM users").WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, "u1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка: пользователь не найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectExec("DELETE FROM users").WithArgs("u404").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "u404")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное получение", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		now := time.Now()
		rows := addUserRow(sqlmock.NewRows(userColumnNames), "u1", "alice", "ALICE", now)
		mock.ExpectQuery("FROM users u WHERE u.id = ").WithArgs("u1").WillReturnRows(rows)

		user, err := repo.GetByID(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "alice", user.UserName)
		assert.Equal(t, "ALICE@EXAMPLE.COM", user.NormalizedEmail)
		assert.True(t, user.EmailConfirmed)
		assert.Equal(t, "", user.PhoneNumber, "NULL превращается в пустую строку")
		assert.Nil(t, user.LockoutEnd)
		assert.Nil(t, user.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка: пользователь не найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("FROM users u WHERE u.id = ").
			WithArgs("u404").
			WillReturnRows(sqlmock.NewRows(userColumnNames))

		user, err := repo.GetByID(ctx, "u404")

		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestUserRepository_GetByNormalizedUserNameAndEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("поиск по имени", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		rows := addUserRow(sqlmock.NewRows(userColumnNames), "u1", "alice", "ALICE", time.Now())
		mock.ExpectQuery("WHERE u.normalized_user_name = ").WithArgs("ALICE").WillReturnRows(rows)

		user, err := repo.GetByNormalizedUserName(ctx, "ALICE")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("поиск по email", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		rows := addUserRow(sqlmock.NewRows(userColumnNames), "u1", "alice", "ALICE", time.Now())
		mock.ExpectQuery("WHERE u.normalized_email = ").WithArgs("ALICE@EXAMPLE.COM").WillReturnRows(rows)

		user, err := repo.GetByNormalizedEmail(ctx, "ALICE@EXAMPLE.COM")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("email не найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("WHERE u.normalized_email = ").WillReturnRows(sqlmock.NewRows(userColumnNames))

		_, err := repo.GetByNormalizedEmail(ctx, "NOBODY@EXAMPLE.COM")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("лимит по умолчанию", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		now := time.Now()
		rows := sqlmock.NewRows(userColumnNames)
		addUserRow(rows, "u1", "alice", "ALICE", now)
		addUserRow(rows, "u2", "bob", "BOB", now)
		mock.ExpectQuery("LIMIT").WithArgs(defaultListLimit, 0).WillReturnRows(rows)

		users, err := repo.List(ctx, 0, -5)

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "u2", users[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("пустой список", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("LIMIT").WithArgs(10, 20).WillReturnRows(sqlmock.NewRows(userColumnNames))

		users, err := repo.List(ctx, 10, 20)

		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Len(t, users, 0)
	})
}

func TestUserRepository_Lockout(t *testing.T) {
	ctx := context.Background()

	t.Run("установка окончания блокировки", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		end := time.Now().Add(5 * time.Minute)
		mock.ExpectExec("UPDATE users").
			WithArgs("u1", end, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetLockoutEnd(ctx, "u1", &end))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("снятие блокировки", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectExec("UPDATE users").
			WithArgs("u1", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetLockoutEnd(ctx, "u1", nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("инкремент неудачных попыток", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("access_failed_count \\+ 1").
			WithArgs("u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"access_failed_count"}).AddRow(3))

		count, err := repo.IncrementAccessFailedCount(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("инкремент для несуществующего пользователя", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("access_failed_count \\+ 1").WillReturnError(sql.ErrNoRows)

		_, err := repo.IncrementAccessFailedCount(ctx, "u404")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("сброс счётчика", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectExec("access_failed_count = 0").
			WithArgs("u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.ResetAccessFailedCount(ctx, "u1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
