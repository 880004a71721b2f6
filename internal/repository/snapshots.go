package repository

import (
	"context"
	"fmt"
	"time"

	"cfbd_v1/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
)

// SnapshotRepository archives raw API payloads
type SnapshotRepository struct {
	db *Database
}

// Save stores the latest payload for an endpoint and query, replacing the previous one
func (r *SnapshotRepository) Save(ctx context.Context, s *models.Snapshot) error {
	query := `
		INSERT INTO api_snapshots (endpoint, query, payload, row_count, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (endpoint, query) DO UPDATE SET
			payload = EXCLUDED.payload,
			row_count = EXCLUDED.row_count,
			fetched_at = EXCLUDED.fetched_at
		RETURNING id
	`

	if s.FetchedAt.IsZero() {
		s.FetchedAt = time.Now().UTC()
	}

	start := time.Now()
	err := r.db.Pool.QueryRow(
		ctx, query,
		s.Endpoint, s.Query, string(s.Payload), s.RowCount, s.FetchedAt,
	).Scan(&s.ID)
	observe("upsert", "api_snapshots", start, err)

	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Latest retrieves the most recently fetched snapshot for an endpoint
func (r *SnapshotRepository) Latest(ctx context.Context, endpoint string) (*models.Snapshot, error) {
	query := `
		SELECT id, endpoint, query, payload, row_count, fetched_at
		FROM api_snapshots
		WHERE endpoint = $1
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var s models.Snapshot
	var payload []byte
	err := r.db.Pool.QueryRow(ctx, query, endpoint).Scan(
		&s.ID, &s.Endpoint, &s.Query, &payload, &s.RowCount, &s.FetchedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("snapshot not found: endpoint=%s", endpoint)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	s.Payload = payload
	return &s, nil
}
