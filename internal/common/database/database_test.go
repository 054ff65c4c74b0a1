// internal/common/database/database_test.go
package database

import (
	"context"
	"path/filepath"
	"testing"

	"portfolio-backend/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect_Rebind(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "sqlite keeps question marks",
			dialect:  SQLite,
			query:    "INSERT INTO interactions (timestamp, path, user_token) VALUES (?, ?, ?)",
			expected: "INSERT INTO interactions (timestamp, path, user_token) VALUES (?, ?, ?)",
		},
		{
			name:     "postgres numbers placeholders",
			dialect:  Postgres,
			query:    "INSERT INTO interactions (timestamp, path, user_token) VALUES (?, ?, ?)",
			expected: "INSERT INTO interactions (timestamp, path, user_token) VALUES ($1, $2, $3)",
		},
		{
			name:     "no placeholders",
			dialect:  Postgres,
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dialect.Rebind(tt.query))
		})
	}
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	d, err = DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "SERIAL PRIMARY KEY", d.AutoIncrementPK)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestNewSQL_SQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}

	client, err := NewSQL(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))
	require.NoError(t, client.Migrate(ctx,
		"CREATE TABLE IF NOT EXISTS things (id "+client.Dialect.AutoIncrementPK+", name TEXT NOT NULL)",
	))

	_, err = client.Exec(ctx, "INSERT INTO things (name) VALUES (?)", "first")
	require.NoError(t, err)

	var name string
	require.NoError(t, client.QueryRow(ctx, "SELECT name FROM things WHERE id = ?", 1).Scan(&name))
	assert.Equal(t, "first", name)
}

func TestNewSQL_UnknownDriver(t *testing.T) {
	_, err := NewSQL(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestNewRedis(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := NewRedis(config.RedisConfig{})
		assert.ErrorIs(t, err, ErrRedisNotConfigured)
	})

	t.Run("pings miniredis", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { client.Close() })

		assert.NoError(t, client.Ping(context.Background()))
	})
}
