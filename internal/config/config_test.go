package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("значения по умолчанию", func(t *testing.T) {
		t.Setenv("SWEEP_INTERVAL", "")
		t.Setenv("BCRYPT_COST", "")
		t.Setenv("ADMIN_PASSWORD", "")
		t.Setenv("TIMEZONE", "")
		t.Setenv("SESSION_KEY", "")
		t.Setenv("CORS_ORIGINS", "")

		cfg := Load()

		assert.Equal(t, 60*time.Second, cfg.Scheduler.SweepInterval)
		assert.Equal(t, 5*time.Second, cfg.Scheduler.PresenceInterval)
		assert.Equal(t, 10, cfg.Auth.BcryptCost)
		assert.Equal(t, "", cfg.Admin.Password)
		assert.Equal(t, time.Local, cfg.Scheduler.Location)
		assert.Empty(t, cfg.Session.Key, "ключ подписи cookie не должен иметь известного значения по умолчанию")
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSOrigins)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	})

	t.Run("переопределение через окружение", func(t *testing.T) {
		t.Setenv("SWEEP_INTERVAL", "2m")
		t.Setenv("BCRYPT_COST", "12")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("TIMEZONE", "UTC")
		t.Setenv("RUN_MIGRATIONS", "false")

		cfg := Load()

		assert.Equal(t, 2*time.Minute, cfg.Scheduler.SweepInterval)
		assert.Equal(t, 12, cfg.Auth.BcryptCost)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
		assert.Equal(t, time.UTC, cfg.Scheduler.Location)
		assert.False(t, cfg.Database.RunMigrations)
	})

	t.Run("некорректные значения игнорируются", func(t *testing.T) {
		t.Setenv("SWEEP_INTERVAL", "-5s")
		t.Setenv("BCRYPT_COST", "abc")
		t.Setenv("TIMEZONE", "Mars/Olympus")

		cfg := Load()

		assert.Equal(t, 60*time.Second, cfg.Scheduler.SweepInterval)
		assert.Equal(t, 10, cfg.Auth.BcryptCost)
		assert.Equal(t, time.Local, cfg.Scheduler.Location)
	})
}
