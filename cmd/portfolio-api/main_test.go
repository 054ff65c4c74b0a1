// cmd/portfolio-api/main_test.go
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := retryWithBackoff(func() error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		}, 5, time.Millisecond, zap.NewNop(), "test op")

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up with the last error", func(t *testing.T) {
		cause := errors.New("connection refused")
		calls := 0
		err := retryWithBackoff(func() error {
			calls++
			return cause
		}, 3, time.Millisecond, zap.NewNop(), "test op")

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "test op failed after 3 attempts")
		assert.Equal(t, 3, calls)
	})
}

// setRunEnv points the config at throwaway local resources.
func setRunEnv(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "portfolio.db")
	t.Setenv("APP_ENVIRONMENT", "test")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:0")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_SQLITE_PATH", dbPath)
	t.Setenv("RULES_PATH", "../../configs/rules.json")
	t.Setenv("REDIS_ADDRESS", "")
	t.Setenv("JAEGER_ENDPOINT", "")
	t.Setenv("LOGGING_LEVEL", "error")
	return dbPath
}

func TestRun_StartupErrorIsReturned(t *testing.T) {
	setRunEnv(t)
	t.Setenv("RULES_PATH", filepath.Join(t.TempDir(), "missing.json"))

	err := run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule table load failed")
}

func TestRun_StopsOnCancel(t *testing.T) {
	dbPath := setRunEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "database file is created by the migrations")
}
