//go:build integration

package repository

import (
	"database/sql"
	"testing"
	"time"

	"cfbd_v1/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame(id int) *models.Game {
	return &models.Game{
		GameID:     id,
		Season:     2024,
		Week:       10,
		SeasonType: "regular",
		StartDate:  time.Date(2024, 11, 2, 19, 30, 0, 0, time.UTC),
		Status:     models.StatusScheduled,
		HomeTeamID: sql.NullInt32{Int32: 333, Valid: true},
		HomeTeam:   "Alabama",
		AwayTeamID: sql.NullInt32{Int32: 2390, Valid: true},
		AwayTeam:   "LSU",
	}
}

func TestGameRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	game := testGame(401628400)
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert game")

	retrieved, err := db.Games.GetByGameID(ctx, game.GameID)
	require.NoError(t, err, "Should retrieve game")
	assert.Equal(t, "Alabama", retrieved.HomeTeam)
	assert.True(t, retrieved.IsScheduled())
	assert.False(t, retrieved.HomePoints.Valid)

	game.Completed = true
	game.Status = models.StatusCompleted
	game.HomePoints = sql.NullInt32{Int32: 42, Valid: true}
	game.AwayPoints = sql.NullInt32{Int32: 13, Valid: true}
	game.HomeLineScores = []int32{14, 14, 7, 7}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should update game")

	updated, err := db.Games.GetByGameID(ctx, game.GameID)
	require.NoError(t, err)
	assert.True(t, updated.IsFinal())
	assert.Equal(t, int32(42), updated.HomePoints.Int32)
	assert.Equal(t, []int32{14, 14, 7, 7}, updated.HomeLineScores)
}

func TestGameRepository_UpdateScore(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	game := testGame(401628401)
	require.NoError(t, db.Games.Upsert(ctx, game))

	err := db.Games.UpdateScore(ctx, &models.ScoreUpdate{
		GameID:     game.GameID,
		Status:     models.StatusInProgress,
		Period:     sql.NullInt32{Int32: 2, Valid: true},
		Clock:      sql.NullString{String: "04:11", Valid: true},
		HomePoints: sql.NullInt32{Int32: 10, Valid: true},
		AwayPoints: sql.NullInt32{Int32: 3, Valid: true},
	})
	require.NoError(t, err)

	active, err := db.Games.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "04:11", active[0].Clock.String)

	// A nightly refresh must not reset a live game to scheduled
	require.NoError(t, db.Games.Upsert(ctx, testGame(401628401)))
	live, err := db.Games.GetByGameID(ctx, game.GameID)
	require.NoError(t, err)
	assert.True(t, live.IsActive())
	assert.Equal(t, int32(10), live.HomePoints.Int32)

	err = db.Games.UpdateScore(ctx, &models.ScoreUpdate{GameID: 1, Status: models.StatusInProgress})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameRepository_ListBySeasonWeek(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	early := testGame(2)
	early.StartDate = early.StartDate.Add(-3 * time.Hour)
	other := testGame(3)
	other.Week = 11

	for _, g := range []*models.Game{testGame(1), early, other} {
		require.NoError(t, db.Games.Upsert(ctx, g))
	}

	games, err := db.Games.ListBySeasonWeek(ctx, 2024, 10)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, 2, games[0].GameID, "Games should be ordered by kickoff")

	count, err := db.Games.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
