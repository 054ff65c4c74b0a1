// internal/inquiries/store.go
package inquiries

import (
	"context"
	"time"

	"portfolio-backend/internal/common/database"
	apperrors "portfolio-backend/internal/common/errors"
)

const (
	insertProjectInitiation = `INSERT INTO project_initiations (id, name, email, business_type, website, requirements, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertMeeting           = `INSERT INTO meetings (id, email, date, time, goals, created_at) VALUES (?, ?, ?, ?, ?, ?)`
)

type Store struct {
	db *database.SQLClient
}

func NewStore(db *database.SQLClient) *Store {
	return &Store{db: db}
}

// Migrate creates both submission tables. created_at is RFC 3339 text so
// the schema is identical on SQLite and PostgreSQL.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.Migrate(ctx,
		`CREATE TABLE IF NOT EXISTS project_initiations (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	business_type TEXT NOT NULL,
	website       TEXT,
	requirements  TEXT NOT NULL,
	created_at    TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS meetings (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL,
	date       TEXT NOT NULL,
	time       TEXT NOT NULL,
	goals      TEXT NOT NULL,
	created_at TEXT NOT NULL
)`,
	)
}

func (s *Store) InsertProjectInitiation(ctx context.Context, p ProjectInitiation) error {
	_, err := s.db.Exec(ctx, insertProjectInitiation,
		p.ID, p.Name, p.Email, p.BusinessType, p.Website, p.Requirements, p.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError(string(KindProjectInitiation), err)
	}
	return nil
}

func (s *Store) InsertMeeting(ctx context.Context, m Meeting) error {
	_, err := s.db.Exec(ctx, insertMeeting,
		m.ID, m.Email, m.Date, m.Time, m.Goals, m.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError(string(KindMeeting), err)
	}
	return nil
}
