package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jasidev/trendpost/lib/types"
)

// PGStore keeps history in a posted_topics table. Each operation opens
// its own short-lived connection; the bot makes one Load and at most
// one Append per run.
type PGStore struct {
	databaseURL string
}

func NewPGStore(databaseURL string) *PGStore {
	return &PGStore{databaseURL: databaseURL}
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS posted_topics (
		id SERIAL PRIMARY KEY,
		topic TEXT NOT NULL,
		normalized TEXT NOT NULL UNIQUE,
		posted_at TIMESTAMPTZ NOT NULL,
		content TEXT,
		post_urn TEXT
	)`

func (s *PGStore) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, s.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if _, err := conn.Exec(ctx, createTableSQL); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("ensuring posted_topics table: %w", err)
	}
	return conn, nil
}

func (s *PGStore) Load(ctx context.Context) ([]types.HistoryEntry, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, `
		SELECT topic, normalized, posted_at, COALESCE(content, ''), COALESCE(post_urn, '')
		FROM posted_topics
		ORDER BY posted_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying posted_topics: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var entry types.HistoryEntry
		if err := rows.Scan(&entry.Topic, &entry.Normalized, &entry.PostedAt, &entry.Content, &entry.PostURN); err != nil {
			return nil, fmt.Errorf("scanning posted_topics row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *PGStore) Append(ctx context.Context, entry types.HistoryEntry) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, `
		INSERT INTO posted_topics (topic, normalized, posted_at, content, post_urn)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (normalized) DO NOTHING
	`, entry.Topic, entry.Normalized, entry.PostedAt, entry.Content, entry.PostURN)
	if err != nil {
		return fmt.Errorf("saving posted topic: %w", err)
	}
	return nil
}
