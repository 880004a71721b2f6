package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSyncer struct {
	static     atomic.Int32
	seasons    atomic.Int32
	lastSeason atomic.Int32
	polls      atomic.Int32
	staticErr  error
}

func (f *fakeSyncer) RefreshStatic(context.Context) error {
	f.static.Add(1)
	return f.staticErr
}

func (f *fakeSyncer) SyncSeason(_ context.Context, season int) error {
	f.seasons.Add(1)
	f.lastSeason.Store(int32(season))
	return nil
}

func (f *fakeSyncer) SyncScoreboard(context.Context) (int, error) {
	f.polls.Add(1)
	return 0, nil
}

func testConfig() Config {
	return Config{
		NightlyCron:  "0 2 * * *",
		PollInterval: 10 * time.Millisecond,
		Season:       func() int { return 2024 },
	}
}

func TestScheduler_PollsScoreboard(t *testing.T) {
	syncer := &fakeSyncer{}
	s := NewScheduler(testConfig(), syncer)

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return syncer.polls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	polls := syncer.polls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, polls, syncer.polls.Load(), "no polls after Stop")
	assert.Zero(t, syncer.seasons.Load(), "nightly job should not have run")
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	syncer := &fakeSyncer{}
	s := NewScheduler(testConfig(), syncer)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}

func TestScheduler_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.NightlyCron = "not a cron spec"
	assert.Error(t, NewScheduler(cfg, &fakeSyncer{}).Start(context.Background()))

	cfg = testConfig()
	cfg.PollInterval = 0
	assert.Error(t, NewScheduler(cfg, &fakeSyncer{}).Start(context.Background()))
}

func TestScheduler_RunNightly(t *testing.T) {
	syncer := &fakeSyncer{staticErr: errors.New("teams down")}
	s := NewScheduler(testConfig(), syncer)

	err := s.RunNightly(context.Background())
	require.Error(t, err, "static failure is reported")
	assert.Equal(t, int32(1), syncer.static.Load())
	assert.Equal(t, int32(1), syncer.seasons.Load(), "season sync still runs after a static failure")
	assert.Equal(t, int32(2024), syncer.lastSeason.Load())
}
