package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// setupMockDB создает мок базы данных для тестов
// Автоматически закрывает соединение при завершении теста
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "не удалось создать мок БД")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var userColumnNames = []string{
	"id", "user_name", "normalized_user_name", "email", "normalized_email",
	"email_confirmed", "password_hash", "security_stamp", "concurrency_stamp",
	"phone_number", "phone_number_confirmed", "two_factor_enabled",
	"lockout_end", "lockout_enabled", "access_failed_count",
	"created_at", "updated_at",
}

// addUserRow добавляет строку пользователя с типичными значениями
func addUserRow(rows *sqlmock.Rows, id, userName, normalizedUserName string, createdAt time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, userName, normalizedUserName, "alice@example.com", "ALICE@EXAMPLE.COM",
		true, "hash", "security-stamp", "stamp-1",
		nil, false, false,
		nil, true, 0,
		createdAt, nil,
	)
}
