package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresStore keeps sessions in the sessions table. Expired rows are
// ignored on load and removed by PurgeExpired.
type PostgresStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db, now: time.Now}
}

func (p *PostgresStore) Load(ctx context.Context, id string) (*Session, error) {
	var data []byte
	var expiresAt time.Time
	err := p.DB.QueryRowContext(ctx,
		`SELECT data, expires_at FROM sessions WHERE id = $1 AND expires_at > $2`,
		id, p.now().UTC(),
	).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	values, err := decodeValues(data)
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &Session{ID: id, Values: values, ExpiresAt: expiresAt}, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	data, err := encodeValues(s)
	if err != nil {
		return err
	}
	// lib/pq sends []byte as bytea; jsonb needs text.
	_, err = p.DB.ExecContext(ctx,
		`INSERT INTO sessions (id, data, expires_at, last_accessed_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, last_accessed_at = EXCLUDED.last_accessed_at`,
		s.ID, string(data), s.ExpiresAt.UTC(), p.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := p.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := p.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, p.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return result.RowsAffected()
}
