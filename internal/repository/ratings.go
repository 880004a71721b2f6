package repository

import (
	"context"
	"fmt"
	"time"

	"cfbd_v1/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// RatingRepository handles team rating database operations
type RatingRepository struct {
	db *Database
}

// StoreBatch writes ratings in one transaction and returns how many were stored.
// A row that fails is rolled back to its savepoint, logged and skipped.
func (r *RatingRepository) StoreBatch(ctx context.Context, ratings []*models.TeamRating) (int, error) {
	if len(ratings) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO team_ratings (
			season, week, team, conference, system, rating, ranking,
			offense, defense, special_teams, raw
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (season, week, team, system) DO UPDATE SET
			conference = EXCLUDED.conference,
			rating = EXCLUDED.rating,
			ranking = EXCLUDED.ranking,
			offense = EXCLUDED.offense,
			defense = EXCLUDED.defense,
			special_teams = EXCLUDED.special_teams,
			raw = EXCLUDED.raw,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	start := time.Now()
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stored := 0
	for _, rating := range ratings {
		sp, err := tx.Begin(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to create savepoint: %w", err)
		}

		var raw any
		if len(rating.Raw) > 0 {
			raw = string(rating.Raw)
		}

		err = sp.QueryRow(
			ctx, query,
			rating.Season, rating.Week, rating.Team, rating.Conference, rating.System,
			rating.Rating, rating.Ranking, rating.Offense, rating.Defense,
			rating.SpecialTeams, raw,
		).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
		if err != nil {
			sp.Rollback(ctx)
			log.Warn().
				Err(err).
				Str("team", rating.Team).
				Str("system", rating.System).
				Msg("Failed to store rating")
			continue
		}

		if err := sp.Commit(ctx); err != nil {
			return 0, fmt.Errorf("failed to release savepoint: %w", err)
		}
		stored++
	}

	err = tx.Commit(ctx)
	observe("upsert", "team_ratings", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to commit ratings: %w", err)
	}

	log.Debug().Int("stored", stored).Int("total", len(ratings)).Msg("Stored ratings")
	return stored, nil
}

// ListBySeason retrieves ratings for a season. An empty system returns every system.
func (r *RatingRepository) ListBySeason(ctx context.Context, season int, system string) ([]*models.TeamRating, error) {
	query := `
		SELECT id, season, week, team, conference, system, rating, ranking,
		       offense, defense, special_teams, raw, created_at, updated_at
		FROM team_ratings
		WHERE season = $1 AND ($2 = '' OR system = $2)
		ORDER BY system, week, ranking NULLS LAST, team
	`

	start := time.Now()
	rows, err := r.db.Pool.Query(ctx, query, season, system)
	observe("select", "team_ratings", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.TeamRating
	for rows.Next() {
		var tr models.TeamRating
		var raw []byte
		err := rows.Scan(
			&tr.ID, &tr.Season, &tr.Week, &tr.Team, &tr.Conference, &tr.System,
			&tr.Rating, &tr.Ranking, &tr.Offense, &tr.Defense, &tr.SpecialTeams,
			&raw, &tr.CreatedAt, &tr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		tr.Raw = raw
		ratings = append(ratings, &tr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}

// Count returns the total number of stored ratings
func (r *RatingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM team_ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return count, nil
}
