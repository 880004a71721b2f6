// Package ingest copies CFBD data into the database.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cfbd_v1/ingestion/internal/client"
	"cfbd_v1/ingestion/internal/metrics"
	"cfbd_v1/ingestion/internal/models"
	"cfbd_v1/ingestion/internal/repository"

	"github.com/rs/zerolog/log"
)

// TeamStore persists teams
type TeamStore interface {
	Upsert(ctx context.Context, team *models.Team) error
	Count(ctx context.Context) (int, error)
}

// VenueStore persists venues
type VenueStore interface {
	Upsert(ctx context.Context, venue *models.Venue) error
	Count(ctx context.Context) (int, error)
}

// ConferenceStore persists conferences
type ConferenceStore interface {
	Upsert(ctx context.Context, conf *models.Conference) error
}

// GameStore persists games and live scores
type GameStore interface {
	Upsert(ctx context.Context, game *models.Game) error
	UpdateScore(ctx context.Context, u *models.ScoreUpdate) error
	Count(ctx context.Context) (int, error)
}

// RatingStore persists team ratings
type RatingStore interface {
	StoreBatch(ctx context.Context, ratings []*models.TeamRating) (int, error)
	Count(ctx context.Context) (int, error)
}

// SnapshotStore archives raw payloads
type SnapshotStore interface {
	Save(ctx context.Context, s *models.Snapshot) error
}

// Stores groups the persistence the syncer writes to
type Stores struct {
	Teams       TeamStore
	Venues      VenueStore
	Conferences ConferenceStore
	Games       GameStore
	Ratings     RatingStore
	Snapshots   SnapshotStore
}

// StoresFrom wires the database repositories
func StoresFrom(db *repository.Database) Stores {
	return Stores{
		Teams:       db.Teams,
		Venues:      db.Venues,
		Conferences: db.Conferences,
		Games:       db.Games,
		Ratings:     db.Ratings,
		Snapshots:   db.Snapshots,
	}
}

// Syncer fetches through the API client and stores through the repositories
type Syncer struct {
	client      *client.Client
	stores      Stores
	concurrency int
}

// NewSyncer creates a syncer. concurrency bounds how many seasons Backfill runs at once.
func NewSyncer(c *client.Client, stores Stores, concurrency int) *Syncer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Syncer{client: c, stores: stores, concurrency: concurrency}
}

// SyncConferences refreshes the conference list
func (s *Syncer) SyncConferences(ctx context.Context) (int, error) {
	return s.run(ctx, "conferences", func(ctx context.Context) (int, error) {
		resp, err := s.client.Conferences(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch conferences: %w", err)
		}

		return eachItem(ctx, s, resp, "conference", func(ctx context.Context, in *models.ConferenceInput, _ json.RawMessage) error {
			return s.stores.Conferences.Upsert(ctx, in.ToConference())
		})
	})
}

// SyncVenues refreshes every venue
func (s *Syncer) SyncVenues(ctx context.Context) (int, error) {
	return s.run(ctx, "venues", func(ctx context.Context) (int, error) {
		resp, err := s.client.Venues(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch venues: %w", err)
		}

		return eachItem(ctx, s, resp, "venue", func(ctx context.Context, in *models.VenueInput, _ json.RawMessage) error {
			return s.stores.Venues.Upsert(ctx, in.ToVenue())
		})
	})
}

// SyncTeams refreshes every team
func (s *Syncer) SyncTeams(ctx context.Context) (int, error) {
	return s.run(ctx, "teams", func(ctx context.Context) (int, error) {
		resp, err := s.client.Teams(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch teams: %w", err)
		}

		return eachItem(ctx, s, resp, "team", func(ctx context.Context, in *models.TeamInput, _ json.RawMessage) error {
			return s.stores.Teams.Upsert(ctx, in.ToTeam())
		})
	})
}

// SyncGames refreshes the regular and postseason schedule of a season
func (s *Syncer) SyncGames(ctx context.Context, season int) (int, error) {
	return s.run(ctx, "games", func(ctx context.Context) (int, error) {
		resp, err := s.client.Games(ctx, &client.GamesParams{Year: season, SeasonType: client.SeasonBoth})
		if err != nil {
			return 0, fmt.Errorf("failed to fetch games for %d: %w", season, err)
		}

		return eachItem(ctx, s, resp, "game", func(ctx context.Context, in *models.GameInput, _ json.RawMessage) error {
			return s.stores.Games.Upsert(ctx, in.ToGame())
		})
	})
}

// SyncRatings refreshes the SP+, SRS, Elo and FPI ratings of a season.
// Each system is fetched and stored on its own; the first failure is returned
// after every system has been tried.
func (s *Syncer) SyncRatings(ctx context.Context, season int) (int, error) {
	return s.run(ctx, "ratings", func(ctx context.Context) (int, error) {
		systems := []struct {
			name  string
			fetch func(ctx context.Context) ([]*models.TeamRating, error)
		}{
			{models.SystemSP, func(ctx context.Context) ([]*models.TeamRating, error) {
				resp, err := s.client.SPRatings(ctx, &client.RatingsParams{Year: season})
				if err != nil {
					return nil, err
				}
				return collect(ctx, s, resp, "sp rating", func(in *models.SPRatingInput, raw json.RawMessage) *models.TeamRating {
					if in.IsNationalAverage() {
						return nil
					}
					return in.ToTeamRating(raw)
				})
			}},
			{models.SystemSRS, func(ctx context.Context) ([]*models.TeamRating, error) {
				resp, err := s.client.SRSRatings(ctx, &client.RatingsParams{Year: season})
				if err != nil {
					return nil, err
				}
				return collect(ctx, s, resp, "srs rating", func(in *models.SRSRatingInput, raw json.RawMessage) *models.TeamRating {
					return in.ToTeamRating(raw)
				})
			}},
			{models.SystemElo, func(ctx context.Context) ([]*models.TeamRating, error) {
				resp, err := s.client.EloRatings(ctx, &client.EloRatingsParams{Year: season})
				if err != nil {
					return nil, err
				}
				return collect(ctx, s, resp, "elo rating", func(in *models.EloRatingInput, raw json.RawMessage) *models.TeamRating {
					return in.ToTeamRating(0, raw)
				})
			}},
			{models.SystemFPI, func(ctx context.Context) ([]*models.TeamRating, error) {
				resp, err := s.client.FPIRatings(ctx, &client.FPIRatingsParams{Year: season})
				if err != nil {
					return nil, err
				}
				return collect(ctx, s, resp, "fpi rating", func(in *models.FPIRatingInput, raw json.RawMessage) *models.TeamRating {
					return in.ToTeamRating(raw)
				})
			}},
		}

		var firstErr error
		total := 0
		for _, sys := range systems {
			ratings, err := sys.fetch(ctx)
			if err == nil {
				var stored int
				stored, err = s.stores.Ratings.StoreBatch(ctx, ratings)
				total += stored
			}
			if err != nil {
				log.Error().Err(err).Str("system", sys.name).Int("season", season).Msg("Rating sync failed")
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to sync %s ratings for %d: %w", sys.name, season, err)
				}
			}
		}
		return total, firstErr
	})
}

// SyncScoreboard applies live scores to games already in the database.
// Games the database does not know yet are skipped until the next schedule sync.
func (s *Syncer) SyncScoreboard(ctx context.Context) (int, error) {
	return s.run(ctx, "scoreboard", func(ctx context.Context) (int, error) {
		resp, err := s.client.Scoreboard(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch scoreboard: %w", err)
		}

		var items []models.ScoreboardGameInput
		if err := resp.Decode(&items); err != nil {
			return 0, err
		}

		updated, live, unknown := 0, 0, 0
		for i := range items {
			u := items[i].ToScoreUpdate()
			if u.IsActive() {
				live++
			}

			err := s.stores.Games.UpdateScore(ctx, u)
			if errors.Is(err, repository.ErrGameNotFound) {
				unknown++
				continue
			}
			if err != nil {
				log.Error().Err(err).Int("game_id", u.GameID).Msg("Failed to update score")
				continue
			}
			updated++
		}

		metrics.UpdateLiveGames(live)
		log.Debug().
			Int("games", len(items)).
			Int("live", live).
			Int("updated", updated).
			Int("unknown", unknown).
			Msg("Scoreboard applied")

		return updated, nil
	})
}

// RefreshStatic refreshes conferences, venues and teams, then the row count gauges.
// Every step runs; the first failure is returned.
func (s *Syncer) RefreshStatic(ctx context.Context) error {
	log.Info().Msg("Refreshing static data...")

	var firstErr error
	for _, step := range []func(context.Context) (int, error){s.SyncConferences, s.SyncVenues, s.SyncTeams} {
		if _, err := step(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.UpdateCounts(ctx)

	if firstErr != nil {
		return firstErr
	}
	log.Info().Msg("Static data refresh complete")
	return nil
}

// SyncSeason refreshes the games and ratings of one season
func (s *Syncer) SyncSeason(ctx context.Context, season int) error {
	if _, err := s.SyncGames(ctx, season); err != nil {
		return err
	}
	if _, err := s.SyncRatings(ctx, season); err != nil {
		return err
	}
	return nil
}

// UpdateCounts publishes the stored row counts as gauges
func (s *Syncer) UpdateCounts(ctx context.Context) {
	count := func(name string, fn func(context.Context) (int, error)) int64 {
		n, err := fn(ctx)
		if err != nil {
			log.Warn().Err(err).Str("table", name).Msg("Failed to count rows")
			return 0
		}
		return int64(n)
	}

	metrics.UpdateIngestionStats(
		count("teams", s.stores.Teams.Count),
		count("venues", s.stores.Venues.Count),
		count("games", s.stores.Games.Count),
		count("ratings", s.stores.Ratings.Count),
	)
}

// run times a sync step and records its outcome
func (s *Syncer) run(ctx context.Context, name string, fn func(ctx context.Context) (int, error)) (int, error) {
	start := time.Now()
	n, err := fn(ctx)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordSync(name, "error", duration.Seconds())
		metrics.RecordError("ingest", name)
		log.Error().Err(err).Str("step", name).Dur("duration", duration).Msg("Sync failed")
		return n, err
	}

	metrics.RecordSync(name, "success", duration.Seconds())
	log.Info().Str("step", name).Int("count", n).Dur("duration", duration).Msg("Sync complete")
	return n, nil
}

// archive keeps the raw payload of a response. Failures are logged only.
func (s *Syncer) archive(ctx context.Context, resp *client.Response, rows int) {
	if s.stores.Snapshots == nil {
		return
	}
	snap := &models.Snapshot{
		Endpoint: resp.Endpoint,
		Query:    resp.Query.Encode(),
		Payload:  resp.Body,
		RowCount: rows,
	}
	if err := s.stores.Snapshots.Save(ctx, snap); err != nil {
		log.Warn().Err(err).Str("endpoint", resp.Endpoint).Msg("Failed to archive snapshot")
	}
}

// items splits a JSON array payload into its elements and archives the payload
func items(ctx context.Context, s *Syncer, resp *client.Response) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := resp.Decode(&raw); err != nil {
		return nil, err
	}
	s.archive(ctx, resp, len(raw))
	return raw, nil
}

// eachItem decodes every element of resp into T and stores it.
// An element that fails to decode or store is logged and skipped.
func eachItem[T any](ctx context.Context, s *Syncer, resp *client.Response, kind string, store func(ctx context.Context, in *T, raw json.RawMessage) error) (int, error) {
	raw, err := items(ctx, s, resp)
	if err != nil {
		return 0, err
	}

	saved := 0
	for i, r := range raw {
		var in T
		if err := json.Unmarshal(r, &in); err != nil {
			log.Warn().Err(err).Str("kind", kind).Int("index", i).Msg("Failed to decode item")
			continue
		}
		if err := store(ctx, &in, r); err != nil {
			log.Error().Err(err).Str("kind", kind).Int("index", i).Msg("Failed to save item")
			continue
		}
		saved++
	}

	log.Debug().Str("kind", kind).Int("fetched", len(raw)).Int("saved", saved).Msg("Items saved")
	return saved, nil
}

// collect decodes every element of resp into T and converts it. A nil conversion drops the element.
func collect[T any](ctx context.Context, s *Syncer, resp *client.Response, kind string, convert func(in *T, raw json.RawMessage) *models.TeamRating) ([]*models.TeamRating, error) {
	raw, err := items(ctx, s, resp)
	if err != nil {
		return nil, err
	}

	out := make([]*models.TeamRating, 0, len(raw))
	for i, r := range raw {
		var in T
		if err := json.Unmarshal(r, &in); err != nil {
			log.Warn().Err(err).Str("kind", kind).Int("index", i).Msg("Failed to decode item")
			continue
		}
		if rating := convert(&in, r); rating != nil {
			out = append(out, rating)
		}
	}
	return out, nil
}
