package repository

import (
	"context"
	"fmt"
	"time"

	"cfbd_v1/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TeamRepository handles team database operations
type TeamRepository struct {
	db *Database
}

const teamColumns = `
	id, team_id, school, mascot, abbreviation, conference, division,
	classification, color, alt_color, venue_id, created_at, updated_at`

func scanTeam(row pgx.Row) (*models.Team, error) {
	var team models.Team
	err := row.Scan(
		&team.ID, &team.TeamID, &team.School, &team.Mascot, &team.Abbreviation,
		&team.Conference, &team.Division, &team.Classification,
		&team.Color, &team.AltColor, &team.VenueID,
		&team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Upsert inserts or updates a team keyed by its CFBD id
func (r *TeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (
			team_id, school, mascot, abbreviation, conference, division,
			classification, color, alt_color, venue_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (team_id) DO UPDATE SET
			school = EXCLUDED.school,
			mascot = EXCLUDED.mascot,
			abbreviation = EXCLUDED.abbreviation,
			conference = EXCLUDED.conference,
			division = EXCLUDED.division,
			classification = EXCLUDED.classification,
			color = EXCLUDED.color,
			alt_color = EXCLUDED.alt_color,
			venue_id = EXCLUDED.venue_id,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	start := time.Now()
	err := r.db.Pool.QueryRow(
		ctx, query,
		team.TeamID, team.School, team.Mascot, team.Abbreviation,
		team.Conference, team.Division, team.Classification,
		team.Color, team.AltColor, team.VenueID,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	observe("upsert", "teams", start, err)

	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}

	log.Debug().
		Int("id", team.ID).
		Int("team_id", team.TeamID).
		Str("school", team.School).
		Msg("Team upserted")

	return nil
}

// GetByTeamID retrieves a team by its CFBD id
func (r *TeamRepository) GetByTeamID(ctx context.Context, teamID int) (*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE team_id = $1`

	team, err := scanTeam(r.db.Pool.QueryRow(ctx, query, teamID))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("team not found: team_id=%d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// GetBySchool retrieves a team by school name, ignoring case
func (r *TeamRepository) GetBySchool(ctx context.Context, school string) (*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE LOWER(school) = LOWER($1)`

	team, err := scanTeam(r.db.Pool.QueryRow(ctx, query, school))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("team not found: school=%s", school)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// List retrieves all teams
func (r *TeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams ORDER BY school`
	return r.list(ctx, query)
}

// ListByConference retrieves teams by conference
func (r *TeamRepository) ListByConference(ctx context.Context, conference string) ([]*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE conference = $1 ORDER BY school`
	return r.list(ctx, query, conference)
}

func (r *TeamRepository) list(ctx context.Context, query string, args ...any) ([]*models.Team, error) {
	start := time.Now()
	rows, err := r.db.Pool.Query(ctx, query, args...)
	observe("select", "teams", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// Count returns the total number of teams
func (r *TeamRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM teams`

	var count int
	err := r.db.Pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}

	return count, nil
}
