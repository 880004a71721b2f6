//go:build integration

package repository

import (
	"database/sql"
	"testing"

	"cfbd_v1/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	team := &models.Team{
		TeamID:       333,
		School:       "Alabama",
		Mascot:       sql.NullString{String: "Crimson Tide", Valid: true},
		Abbreviation: sql.NullString{String: "ALA", Valid: true},
		Conference:   sql.NullString{String: "SEC", Valid: true},
		VenueID:      sql.NullInt32{Int32: 3657, Valid: true},
	}

	err := db.Teams.Upsert(ctx, team)
	require.NoError(t, err, "Should successfully insert team")
	assert.NotZero(t, team.ID)

	retrieved, err := db.Teams.GetByTeamID(ctx, team.TeamID)
	require.NoError(t, err, "Should retrieve inserted team")
	assert.Equal(t, "Alabama", retrieved.School)
	assert.Equal(t, int32(3657), retrieved.VenueID.Int32)

	team.Mascot = sql.NullString{String: "Big Al", Valid: true}
	err = db.Teams.Upsert(ctx, team)
	require.NoError(t, err, "Should successfully update team")

	updated, err := db.Teams.GetByTeamID(ctx, team.TeamID)
	require.NoError(t, err, "Should retrieve updated team")
	assert.Equal(t, "Big Al", updated.Mascot.String, "Mascot should be updated")

	count, err := db.Teams.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "Upsert should not duplicate the team")
}

func TestTeamRepository_GetBySchool(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	require.NoError(t, db.Teams.Upsert(ctx, &models.Team{TeamID: 228, School: "Clemson"}))

	retrieved, err := db.Teams.GetBySchool(ctx, "clemson")
	require.NoError(t, err, "Lookup should ignore case")
	assert.Equal(t, 228, retrieved.TeamID)

	_, err = db.Teams.GetBySchool(ctx, "Nowhere")
	assert.Error(t, err)
}

func TestTeamRepository_List(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	teams := []*models.Team{
		{TeamID: 194, School: "Ohio State", Conference: sql.NullString{String: "Big Ten", Valid: true}},
		{TeamID: 130, School: "Michigan", Conference: sql.NullString{String: "Big Ten", Valid: true}},
		{TeamID: 61, School: "Georgia", Conference: sql.NullString{String: "SEC", Valid: true}},
	}
	for _, team := range teams {
		require.NoError(t, db.Teams.Upsert(ctx, team))
	}

	all, err := db.Teams.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Georgia", all[0].School, "Teams should be ordered by school")

	bigTen, err := db.Teams.ListByConference(ctx, "Big Ten")
	require.NoError(t, err)
	assert.Len(t, bigTen, 2)
}
