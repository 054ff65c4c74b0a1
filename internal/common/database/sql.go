// internal/common/database/sql.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"portfolio-backend/internal/common/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect captures the differences between the supported SQL backends.
type Dialect struct {
	Name string
	// AutoIncrementPK is the column definition for a surrogate integer key.
	AutoIncrementPK string
	numbered        bool
}

var (
	SQLite = Dialect{
		Name:            config.DriverSQLite,
		AutoIncrementPK: "INTEGER PRIMARY KEY AUTOINCREMENT",
	}
	Postgres = Dialect{
		Name:            config.DriverPostgres,
		AutoIncrementPK: "SERIAL PRIMARY KEY",
		numbered:        true,
	}
)

// Rebind rewrites ? placeholders into the dialect's bind style.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return SQLite, nil
	case config.DriverPostgres:
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLClient wraps the shared *sql.DB together with its dialect.
type SQLClient struct {
	DB      *sql.DB
	Dialect Dialect
}

// NewSQL opens the configured backend. SQLite files are switched to WAL.
func NewSQL(cfg config.DatabaseConfig) (*SQLClient, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Postgres.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		db.SetMaxOpenConns(cfg.Postgres.MaxConnections)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdle)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
		return &SQLClient{DB: db, Dialect: dialect}, nil

	default:
		db, err := sql.Open("sqlite", cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// One writer keeps "database is locked" out of concurrent inserts.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
		return &SQLClient{DB: db, Dialect: dialect}, nil
	}
}

// NewSQLWithDB wraps an already opened handle, e.g. a sqlmock connection.
func NewSQLWithDB(db *sql.DB, dialect Dialect) *SQLClient {
	return &SQLClient{DB: db, Dialect: dialect}
}

func (c *SQLClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *SQLClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Migrate runs each statement in order. Statements must be idempotent.
func (c *SQLClient) Migrate(ctx context.Context, statements ...string) error {
	for _, stmt := range statements {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (c *SQLClient) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, c.Dialect.Rebind(query), args...)
}

func (c *SQLClient) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.DB.QueryRowContext(ctx, c.Dialect.Rebind(query), args...)
}

func (c *SQLClient) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DB.ExecContext(ctx, c.Dialect.Rebind(query), args...)
}
