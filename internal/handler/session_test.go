package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveSessionKey(t *testing.T) {
	logger := zap.NewNop()

	t.Run("заданный ключ используется как есть", func(t *testing.T) {
		key, err := ResolveSessionKey("configured-session-key-0123456789", false, logger)

		require.NoError(t, err)
		assert.Equal(t, "configured-session-key-0123456789", key)
	})

	t.Run("без ключа в prod - ошибка", func(t *testing.T) {
		_, err := ResolveSessionKey("", false, logger)

		assert.Error(t, err)
	})

	t.Run("без ключа вне prod - случайный ключ на процесс", func(t *testing.T) {
		first, err := ResolveSessionKey("", true, logger)
		require.NoError(t, err)
		second, err := ResolveSessionKey("", true, logger)
		require.NoError(t, err)

		assert.Len(t, first, sessionKeyLength)
		assert.NotEqual(t, first, second)
	})
}

func TestNewSessionManager(t *testing.T) {
	t.Run("пустой ключ отклоняется", func(t *testing.T) {
		_, err := NewSessionManager("", "crm_session", false, zap.NewNop())

		assert.Error(t, err)
	})
}
