package db

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrationName(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantVersion   int
		wantName      string
		wantDirection string
		wantErr       bool
	}{
		{name: "up", input: "000001_identity_schema.up.sql", wantVersion: 1, wantName: "identity_schema", wantDirection: "up"},
		{name: "down", input: "000012_add_index.down.sql", wantVersion: 12, wantName: "add_index", wantDirection: "down"},
		{name: "нет направления", input: "000001_identity_schema.sql", wantErr: true},
		{name: "не sql", input: "000001_identity_schema.up.txt", wantErr: true},
		{name: "нет имени", input: "000001.up.sql", wantErr: true},
		{name: "нечисловая версия", input: "abc_name.up.sql", wantErr: true},
		{name: "нулевая версия", input: "000000_name.up.sql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, name, direction, err := parseMigrationName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, version)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantDirection, direction)
		})
	}
}

func TestLoadMigrations(t *testing.T) {
	t.Run("сортировка по версии и склейка up/down", func(t *testing.T) {
		fsys := fstest.MapFS{
			"m/000002_second.up.sql":   {Data: []byte("CREATE TABLE b (id INT)")},
			"m/000001_first.up.sql":    {Data: []byte("CREATE TABLE a (id INT)")},
			"m/000001_first.down.sql":  {Data: []byte("DROP TABLE a")},
			"m/000002_second.down.sql": {Data: []byte("DROP TABLE b")},
		}

		migrations, err := loadMigrations(fsys, "m")

		require.NoError(t, err)
		require.Len(t, migrations, 2)
		assert.Equal(t, 1, migrations[0].Version)
		assert.Equal(t, "first", migrations[0].Name)
		assert.Equal(t, "DROP TABLE a", migrations[0].Down)
		assert.Equal(t, 2, migrations[1].Version)
	})

	t.Run("ошибка: нет up-скрипта", func(t *testing.T) {
		fsys := fstest.MapFS{
			"m/000001_first.down.sql": {Data: []byte("DROP TABLE a")},
		}

		_, err := loadMigrations(fsys, "m")
		require.Error(t, err)
	})

	t.Run("встроенные миграции", func(t *testing.T) {
		migrations, err := Migrations()

		require.NoError(t, err)
		require.NotEmpty(t, migrations)
		assert.Equal(t, 1, migrations[0].Version)
		assert.Contains(t, migrations[0].Up, "CREATE TABLE IF NOT EXISTS users")
		assert.Contains(t, migrations[0].Down, "DROP TABLE IF EXISTS users")
	})
}

func testMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "first", Up: "CREATE TABLE a", Down: "DROP TABLE a"},
		{Version: 2, Name: "second", Up: "CREATE TABLE b", Down: "DROP TABLE b"},
	}
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	t.Run("применяются только новые миграции", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE b").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		applied, err := migrate(ctx, db, testMigrations())

		require.NoError(t, err)
		assert.Equal(t, []int{2}, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("повторный запуск ничего не делает", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1).AddRow(2))

		applied, err := migrate(ctx, db, testMigrations())

		require.NoError(t, err)
		assert.Empty(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка миграции откатывает транзакцию", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE a").WillReturnError(errors.New("syntax error"))
		mock.ExpectRollback()

		applied, err := migrate(ctx, db, testMigrations())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "000001_first")
		assert.Empty(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRollback(t *testing.T) {
	ctx := context.Background()

	t.Run("откат последней миграции", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT MAX\(version\) FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(2))
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE b").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		version, err := rollback(ctx, db, testMigrations())

		require.NoError(t, err)
		assert.Equal(t, 2, version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("нечего откатывать", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT MAX\(version\) FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		version, err := rollback(ctx, db, testMigrations())

		require.NoError(t, err)
		assert.Equal(t, 0, version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка: неизвестная версия", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT MAX\(version\) FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(7))

		_, err = rollback(ctx, db, testMigrations())

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewPostgres_EmptyDSN(t *testing.T) {
	db, err := NewPostgres(context.Background(), "", PoolConfig{})

	require.Error(t, err)
	assert.Nil(t, db)
}

func TestApplyPool(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	ApplyPool(sqlDB, PoolConfig{MaxOpenConns: 7})

	assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)
}
