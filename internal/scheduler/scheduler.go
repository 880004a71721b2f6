package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cfbd_v1/ingestion/internal/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Syncer is the ingestion work the scheduler drives
type Syncer interface {
	RefreshStatic(ctx context.Context) error
	SyncSeason(ctx context.Context, season int) error
	SyncScoreboard(ctx context.Context) (int, error)
}

// Config controls when jobs run
type Config struct {
	// NightlyCron is a five field cron spec for the full refresh
	NightlyCron string
	// PollInterval is how often the scoreboard is polled
	PollInterval time.Duration
	// Season returns the season the nightly refresh syncs
	Season func() int
}

// Scheduler manages background tasks for data ingestion:
// a nightly refresh of static data plus the current season, and
// frequent scoreboard polls for live scores.
type Scheduler struct {
	cfg      Config
	syncer   Syncer
	cron     *cron.Cron
	ticker   *time.Ticker
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg Config, syncer Syncer) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		syncer:   syncer,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start schedules the nightly refresh and starts scoreboard polling
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if s.cfg.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	if _, err := s.cron.AddFunc(s.cfg.NightlyCron, func() {
		log.Info().Msg("Running nightly refresh...")
		if err := s.RunNightly(ctx); err != nil {
			log.Error().Err(err).Msg("Nightly refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly refresh: %w", err)
	}

	s.cron.Start()
	s.started = time.Now()
	log.Info().
		Str("schedule", s.cfg.NightlyCron).
		Msg("Nightly refresh scheduled")

	s.ticker = time.NewTicker(s.cfg.PollInterval)
	log.Info().
		Dur("interval", s.cfg.PollInterval).
		Msg("Scoreboard polling started")

	s.wg.Add(1)
	go s.pollScoreboard(ctx)

	return nil
}

// Stop stops both jobs and waits for the poller to exit. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		log.Info().Msg("Stopping scheduler...")

		if s.cron != nil {
			<-s.cron.Stop().Done()
		}

		if s.ticker != nil {
			s.ticker.Stop()
		}

		close(s.stopChan)
		s.wg.Wait()
		log.Info().Msg("Scheduler stopped")
	})
}

// RunNightly refreshes static data, then the current season's games and ratings
func (s *Scheduler) RunNightly(ctx context.Context) error {
	start := time.Now()

	staticErr := s.syncer.RefreshStatic(ctx)
	if staticErr != nil {
		log.Error().Err(staticErr).Msg("Static refresh failed")
	}

	season := s.cfg.Season()
	if err := s.syncer.SyncSeason(ctx, season); err != nil {
		return fmt.Errorf("failed to sync season %d: %w", season, err)
	}

	log.Info().
		Int("season", season).
		Dur("duration", time.Since(start)).
		Msg("Nightly refresh complete")

	return staticErr
}

// pollScoreboard applies live scores on every tick
func (s *Scheduler) pollScoreboard(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Context cancelled, stopping scoreboard polling")
			return
		case <-s.stopChan:
			log.Info().Msg("Stop signal received, stopping scoreboard polling")
			return
		case <-s.ticker.C:
			start := time.Now()
			if _, err := s.syncer.SyncScoreboard(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to poll scoreboard")
			}
			metrics.RecordWorkerIteration(time.Since(start).Seconds())
			metrics.SystemUptime.Set(time.Since(s.started).Seconds())
		}
	}
}
