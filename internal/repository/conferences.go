package repository

import (
	"context"
	"fmt"
	"time"

	"cfbd_v1/ingestion/internal/models"
)

// ConferenceRepository handles conference database operations
type ConferenceRepository struct {
	db *Database
}

// Upsert inserts or updates a conference keyed by its CFBD id
func (r *ConferenceRepository) Upsert(ctx context.Context, conf *models.Conference) error {
	query := `
		INSERT INTO conferences (conference_id, name, short_name, abbreviation, classification)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (conference_id) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			abbreviation = EXCLUDED.abbreviation,
			classification = EXCLUDED.classification,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	start := time.Now()
	err := r.db.Pool.QueryRow(
		ctx, query,
		conf.ConferenceID, conf.Name, conf.ShortName, conf.Abbreviation, conf.Classification,
	).Scan(&conf.ID, &conf.CreatedAt, &conf.UpdatedAt)
	observe("upsert", "conferences", start, err)

	if err != nil {
		return fmt.Errorf("failed to upsert conference: %w", err)
	}

	return nil
}

// List retrieves all conferences ordered by name
func (r *ConferenceRepository) List(ctx context.Context) ([]*models.Conference, error) {
	query := `
		SELECT id, conference_id, name, short_name, abbreviation, classification,
		       created_at, updated_at
		FROM conferences
		ORDER BY name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list conferences: %w", err)
	}
	defer rows.Close()

	var confs []*models.Conference
	for rows.Next() {
		var c models.Conference
		err := rows.Scan(
			&c.ID, &c.ConferenceID, &c.Name, &c.ShortName, &c.Abbreviation,
			&c.Classification, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conference: %w", err)
		}
		confs = append(confs, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conferences: %w", err)
	}

	return confs, nil
}
