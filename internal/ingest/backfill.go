package ingest

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// SeasonError records a season that failed to backfill
type SeasonError struct {
	Season int
	Err    error
}

func (e SeasonError) Error() string {
	return fmt.Sprintf("season %d: %v", e.Season, e.Err)
}

// BackfillResult summarizes a multi-season backfill
type BackfillResult struct {
	Requested  int
	Successful []int
	Failed     []SeasonError
}

// Backfill syncs games and ratings for every season in [from, to] with at most
// the syncer's concurrency running at once. Static data is refreshed first.
// A failed season does not stop the others.
func (s *Syncer) Backfill(ctx context.Context, from, to int) (*BackfillResult, error) {
	if from > to {
		from, to = to, from
	}

	start := time.Now()
	result := &BackfillResult{Requested: to - from + 1}

	log.Info().
		Int("from", from).
		Int("to", to).
		Int("concurrency", s.concurrency).
		Msg("Starting backfill")

	if err := s.RefreshStatic(ctx); err != nil {
		log.Warn().Err(err).Msg("Static refresh failed, continuing with seasons")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var mu sync.Mutex
	for season := from; season <= to; season++ {
		season := season
		g.Go(func() error {
			err := s.SyncSeason(gctx, season)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, SeasonError{Season: season, Err: err})
				return nil
			}
			result.Successful = append(result.Successful, season)
			return nil
		})
	}
	g.Wait()

	slices.Sort(result.Successful)
	slices.SortFunc(result.Failed, func(a, b SeasonError) int { return a.Season - b.Season })

	s.UpdateCounts(ctx)

	log.Info().
		Int("requested", result.Requested).
		Int("successful", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Dur("duration", time.Since(start)).
		Msg("Backfill complete")

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("backfill interrupted: %w", err)
	}
	return result, nil
}
