// internal/tracking/store.go
package tracking

import (
	"context"
	"database/sql"

	"portfolio-backend/internal/common/database"
	apperrors "portfolio-backend/internal/common/errors"
)

const (
	insertInteraction  = `INSERT INTO interactions (timestamp, path, user_token) VALUES (?, ?, ?)`
	recentInteractions = `SELECT id, timestamp, path, user_token FROM interactions ORDER BY id DESC LIMIT ?`
)

// Store appends to and reads from the interactions table.
type Store struct {
	db *database.SQLClient
}

func NewStore(db *database.SQLClient) *Store {
	return &Store{db: db}
}

// Migrate creates the interactions table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.Migrate(ctx, `CREATE TABLE IF NOT EXISTS interactions (
	id         `+s.db.Dialect.AutoIncrementPK+`,
	timestamp  TEXT,
	path       TEXT,
	user_token TEXT
)`)
}

// Append records one visit.
func (s *Store) Append(ctx context.Context, in Interaction) error {
	if _, err := s.db.Exec(ctx, insertInteraction, in.Timestamp, in.Path, in.UserToken); err != nil {
		return apperrors.NewDatabaseInsertFailedError("interactions", err)
	}
	return nil
}

// Recent returns up to limit interactions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Interaction, error) {
	rows, err := s.db.Query(ctx, recentInteractions, limit)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("recent_interactions", err)
	}
	defer rows.Close()

	out := make([]Interaction, 0, limit)
	for rows.Next() {
		var (
			in                     Interaction
			timestamp, path, token sql.NullString
		)
		if err := rows.Scan(&in.ID, &timestamp, &path, &token); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("recent_interactions", err)
		}
		in.Timestamp, in.Path, in.UserToken = timestamp.String, path.String, token.String
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("recent_interactions", err)
	}
	return out, nil
}
