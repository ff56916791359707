package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

const (
	teamUUID   = "3f1c9a52-6d3e-4a8b-9c2d-1e5f7a9b0c11"
	team2UUID  = "7b2d4e61-0a9f-4c3b-8e1d-2f6a8c0b1d22"
	userUUID   = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
	taskUUID   = "c0ffee00-1234-4abc-9def-0123456789ab"
	clientUUID = "5e6f7a8b-9c0d-4e1f-a2b3-c4d5e6f7a8b9"
)

var fixedTime = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

// setupMockDB создает мок базы данных для тестов
// Автоматически закрывает соединение при завершении теста
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "не удалось создать мок БД")
	t.Cleanup(func() { db.Close() })
	return db, mock
}
