package db

import (
	"context"
	"testing"
	"time"

	"github.com/bagdasarian/crm-service/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	t.Run("спецсимволы в пароле экранируются", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			Host:     "db.local",
			Port:     "5433",
			User:     "crm",
			Password: "p@ss word/#",
			DBName:   "crm",
			SSLMode:  "disable",
		}

		parsed, err := pgx.ParseConfig(ConnString(cfg))

		require.NoError(t, err)
		assert.Equal(t, "db.local", parsed.Host)
		assert.Equal(t, uint16(5433), parsed.Port)
		assert.Equal(t, "crm", parsed.User)
		assert.Equal(t, "p@ss word/#", parsed.Password)
		assert.Equal(t, "crm", parsed.Database)
	})
}

func TestNewPostgres(t *testing.T) {
	t.Run("недоступная БД - ошибка за время таймаута", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			Host:           "127.0.0.1",
			Port:           "1",
			User:           "crm",
			Password:       "crm",
			DBName:         "crm",
			SSLMode:        "disable",
			MaxOpenConns:   1,
			ConnectTimeout: 2 * time.Second,
		}

		start := time.Now()
		_, err := NewPostgres(context.Background(), cfg)

		require.Error(t, err)
		assert.Less(t, time.Since(start), 10*time.Second)
	})
}
