package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cfbd_v1/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// ErrGameNotFound is returned when a game id has not been ingested yet
var ErrGameNotFound = errors.New("game not found")

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

const gameColumns = `
	id, game_id, season, week, season_type, start_date, completed, neutral_site,
	conference_game, attendance, venue_id, status, period, clock,
	home_team_id, home_team, home_conference, home_points, home_line_scores,
	away_team_id, away_team, away_conference, away_points, away_line_scores,
	excitement_index, created_at, updated_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.ID, &g.GameID, &g.Season, &g.Week, &g.SeasonType, &g.StartDate, &g.Completed, &g.NeutralSite,
		&g.ConferenceGame, &g.Attendance, &g.VenueID, &g.Status, &g.Period, &g.Clock,
		&g.HomeTeamID, &g.HomeTeam, &g.HomeConference, &g.HomePoints, &g.HomeLineScores,
		&g.AwayTeamID, &g.AwayTeam, &g.AwayConference, &g.AwayPoints, &g.AwayLineScores,
		&g.ExcitementIndex, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Upsert inserts or updates a game keyed by its CFBD id.
// A game already marked in progress keeps its live status until /games reports it completed.
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (
			game_id, season, week, season_type, start_date, completed, neutral_site,
			conference_game, attendance, venue_id, status, period, clock,
			home_team_id, home_team, home_conference, home_points, home_line_scores,
			away_team_id, away_team, away_conference, away_points, away_line_scores,
			excitement_index
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (game_id) DO UPDATE SET
			season = EXCLUDED.season,
			week = EXCLUDED.week,
			season_type = EXCLUDED.season_type,
			start_date = EXCLUDED.start_date,
			completed = EXCLUDED.completed,
			neutral_site = EXCLUDED.neutral_site,
			conference_game = EXCLUDED.conference_game,
			attendance = EXCLUDED.attendance,
			venue_id = EXCLUDED.venue_id,
			status = CASE
				WHEN games.status = 'in_progress' AND NOT EXCLUDED.completed THEN games.status
				ELSE EXCLUDED.status
			END,
			home_team_id = EXCLUDED.home_team_id,
			home_team = EXCLUDED.home_team,
			home_conference = EXCLUDED.home_conference,
			home_points = COALESCE(EXCLUDED.home_points, games.home_points),
			home_line_scores = COALESCE(EXCLUDED.home_line_scores, games.home_line_scores),
			away_team_id = EXCLUDED.away_team_id,
			away_team = EXCLUDED.away_team,
			away_conference = EXCLUDED.away_conference,
			away_points = COALESCE(EXCLUDED.away_points, games.away_points),
			away_line_scores = COALESCE(EXCLUDED.away_line_scores, games.away_line_scores),
			excitement_index = EXCLUDED.excitement_index,
			updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`

	start := time.Now()
	err := r.db.Pool.QueryRow(
		ctx, query,
		game.GameID, game.Season, game.Week, game.SeasonType, game.StartDate, game.Completed, game.NeutralSite,
		game.ConferenceGame, game.Attendance, game.VenueID, game.Status, game.Period, game.Clock,
		game.HomeTeamID, game.HomeTeam, game.HomeConference, game.HomePoints, game.HomeLineScores,
		game.AwayTeamID, game.AwayTeam, game.AwayConference, game.AwayPoints, game.AwayLineScores,
		game.ExcitementIndex,
	).Scan(&game.ID, &game.Status, &game.CreatedAt, &game.UpdatedAt)
	observe("upsert", "games", start, err)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// GetByGameID retrieves a game by its CFBD id
func (r *GameRepository) GetByGameID(ctx context.Context, gameID int) (*models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games WHERE game_id = $1`

	game, err := scanGame(r.db.Pool.QueryRow(ctx, query, gameID))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("%w: game_id=%d", ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// ListBySeasonWeek retrieves games for a season and week ordered by kickoff
func (r *GameRepository) ListBySeasonWeek(ctx context.Context, season, week int) ([]*models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games WHERE season = $1 AND week = $2 ORDER BY start_date, game_id`
	return r.list(ctx, query, season, week)
}

// ListActive retrieves all games currently in progress
func (r *GameRepository) ListActive(ctx context.Context) ([]*models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games WHERE status = 'in_progress' ORDER BY start_date`
	games, err := r.list(ctx, query)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("count", len(games)).Msg("Retrieved active games")
	return games, nil
}

func (r *GameRepository) list(ctx context.Context, query string, args ...any) ([]*models.Game, error) {
	start := time.Now()
	rows, err := r.db.Pool.Query(ctx, query, args...)
	observe("select", "games", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// UpdateScore applies a scoreboard update to an ingested game.
// Unknown games return ErrGameNotFound.
func (r *GameRepository) UpdateScore(ctx context.Context, u *models.ScoreUpdate) error {
	query := `
		UPDATE games SET
			status = $1,
			period = $2,
			clock = $3,
			home_points = COALESCE($4, home_points),
			away_points = COALESCE($5, away_points),
			home_line_scores = COALESCE($6, home_line_scores),
			away_line_scores = COALESCE($7, away_line_scores),
			completed = completed OR $1 = 'completed',
			updated_at = NOW()
		WHERE game_id = $8
	`

	start := time.Now()
	result, err := r.db.Pool.Exec(
		ctx, query,
		u.Status, u.Period, u.Clock, u.HomePoints, u.AwayPoints,
		u.HomeLineScores, u.AwayLineScores, u.GameID,
	)
	observe("update", "games", start, err)
	if err != nil {
		return fmt.Errorf("failed to update game score: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: game_id=%d", ErrGameNotFound, u.GameID)
	}

	return nil
}

// Count returns the total number of games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM games`

	var count int
	err := r.db.Pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}

	return count, nil
}
